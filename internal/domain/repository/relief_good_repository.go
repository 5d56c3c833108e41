package repository

import "github.com/javierdrios/Socorro-api/internal/domain/entity"

// ReliefGoodRepository define el puerto de persistencia para bienes de ayuda.
type ReliefGoodRepository interface {
	Create(good *entity.ReliefGood) error
	GetByID(id int64) (*entity.ReliefGood, error)
	Update(good *entity.ReliefGood) error
	List(limit, offset int) ([]*entity.ReliefGood, error)
	ListByCategory(categoryID int64, limit, offset int) ([]*entity.ReliefGood, error)
	// ListAfter página por llave ascendente (id > afterID).
	ListAfter(afterID int64, limit int) ([]*entity.ReliefGood, error)
	Delete(id int64) error
}
