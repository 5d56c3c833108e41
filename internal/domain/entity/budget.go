package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del presupuesto. Solo draft y approved aceptan nuevos gastos.
const (
	BudgetStatusDraft    = "draft"
	BudgetStatusApproved = "approved"
	BudgetStatusClosed   = "closed"
)

// Budget representa una bolsa presupuestal por unidad administrativa y año.
// La suma de sus items nunca puede superar TotalAmount (verificado en la
// misma transacción que inserta el item, no de forma eventual).
type Budget struct {
	ID          int64
	Name        string
	AdminUnit   string
	Year        int
	TotalAmount decimal.Decimal
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AcceptsItems indica si el presupuesto admite nuevos gastos según su estado.
func (b *Budget) AcceptsItems() bool {
	return b.Status == BudgetStatusDraft || b.Status == BudgetStatusApproved
}
