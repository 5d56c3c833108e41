package repository

import "github.com/javierdrios/Socorro-api/internal/domain/entity"

// DistributionRepository define el puerto de persistencia para distribuciones.
type DistributionRepository interface {
	Create(distribution *entity.Distribution) error
	// SumByAllocation devuelve la cantidad acumulada ya distribuida contra una
	// asignación (0 si no hay distribuciones).
	SumByAllocation(allocationID int64) (int64, error)
	ListByAllocation(allocationID int64, limit, offset int) ([]*entity.Distribution, error)
	ListByEvacuee(evacueeID int64, limit, offset int) ([]*entity.Distribution, error)
}
