package repository

import "github.com/javierdrios/Socorro-api/internal/domain/entity"

// ShelterRepository define el puerto de persistencia para albergues.
type ShelterRepository interface {
	Create(shelter *entity.Shelter) error
	GetByID(id int64) (*entity.Shelter, error)
	Update(shelter *entity.Shelter) error
	List(limit, offset int) ([]*entity.Shelter, error)
	ListByDisaster(disasterID int64, limit, offset int) ([]*entity.Shelter, error)
	// ListAfter página por llave ascendente (id > afterID).
	ListAfter(afterID int64, limit int) ([]*entity.Shelter, error)
	Delete(id int64) error
}
