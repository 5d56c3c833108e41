package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetItem representa un gasto individual cargado contra un presupuesto.
type BudgetItem struct {
	ID          int64
	BudgetID    int64
	Category    string
	Description string
	Amount      decimal.Decimal
	CreatedAt   time.Time
}
