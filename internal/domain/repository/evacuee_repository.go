package repository

import "github.com/javierdrios/Socorro-api/internal/domain/entity"

// EvacueeRepository define el puerto de persistencia para evacuados.
type EvacueeRepository interface {
	Create(evacuee *entity.Evacuee) error
	GetByID(id int64) (*entity.Evacuee, error)
	Update(evacuee *entity.Evacuee) error
	ListByShelter(shelterID int64, limit, offset int) ([]*entity.Evacuee, error)
	List(limit, offset int) ([]*entity.Evacuee, error)
	Delete(id int64) error
}
