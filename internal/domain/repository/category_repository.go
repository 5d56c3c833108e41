package repository

import "github.com/javierdrios/Socorro-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id int64) (*entity.Category, error)
	Update(category *entity.Category) error
	List(limit, offset int) ([]*entity.Category, error)
	// ListAfter página por llave ascendente (id > afterID), para barridos
	// completos consistentes como el pull de sincronización.
	ListAfter(afterID int64, limit int) ([]*entity.Category, error)
	Delete(id int64) error
}
