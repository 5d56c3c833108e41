package repository

import "github.com/javierdrios/Socorro-api/internal/domain/entity"

// DisasterRepository define el puerto de persistencia para desastres.
type DisasterRepository interface {
	Create(disaster *entity.Disaster) error
	GetByID(id int64) (*entity.Disaster, error)
	Update(disaster *entity.Disaster) error
	List(limit, offset int) ([]*entity.Disaster, error)
	Delete(id int64) error
}
