package budget

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/javierdrios/Socorro-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el
// repositorio de presupuestos atado a esa tx. El chequeo de suficiencia lee
// la suma comprometida con la fila del presupuesto bloqueada, de modo que dos
// compras concurrentes no puedan pasar ambas contra una suma desactualizada.
type TxRunner interface {
	Run(ctx context.Context, fn func(budgetRepo repository.BudgetRepository) error) error
}

// BalanceCache cachea saldos de presupuesto con invalidación explícita: cada
// operación mutadora invalida la clave afectada (nada de estado global
// ambiente). La implementación vive en infraestructura (Redis).
type BalanceCache interface {
	Get(ctx context.Context, budgetID int64) (decimal.Decimal, bool)
	Set(ctx context.Context, budgetID int64, available decimal.Decimal)
	Invalidate(ctx context.Context, budgetID int64)
}
