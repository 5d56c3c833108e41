package allocation

import (
	"context"

	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La cadena asignación→distribución exige que
// sus tres efectos (decrementar origen, incrementar destino, insertar el
// registro inmutable) se confirmen juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		allocRepo repository.AllocationRepository,
		distRepo repository.DistributionRepository,
	) error) error
}
