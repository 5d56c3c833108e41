package repository

import "github.com/javierdrios/Socorro-api/internal/domain/entity"

// AllocationRepository define el puerto de persistencia para asignaciones.
// Las asignaciones son inmutables: no hay Update ni Delete.
type AllocationRepository interface {
	Create(allocation *entity.Allocation) error
	GetByID(id int64) (*entity.Allocation, error)
	// GetByIDForUpdate bloquea la asignación para serializar las
	// distribuciones concurrentes contra su cantidad.
	GetByIDForUpdate(id int64) (*entity.Allocation, error)
	ExistsByStock(stockID int64) (bool, error)
	List(limit, offset int) ([]*entity.Allocation, error)
	ListByShelter(shelterID int64, limit, offset int) ([]*entity.Allocation, error)
}
