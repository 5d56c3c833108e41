package stock

import (
	"context"

	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de stock:
// si fn devuelve error no queda ningún efecto parcial visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		allocRepo repository.AllocationRepository,
	) error) error
}
