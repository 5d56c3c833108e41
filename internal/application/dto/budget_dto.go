package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBudgetRequest alta de un presupuesto anual por unidad administrativa.
type CreateBudgetRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	AdminUnit   string          `json:"admin_unit" validate:"required,max=200"`
	Year        int             `json:"year" validate:"required,gte=2000,lte=2100"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// AddBudgetItemRequest carga un gasto contra el presupuesto.
type AddBudgetItemRequest struct {
	Category    string          `json:"category" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Amount      decimal.Decimal `json:"amount"`
}

// SetBudgetStatusRequest transición de estado (draft, approved, closed).
type SetBudgetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft approved closed"`
}

// BudgetResponse presupuesto con su saldo derivado.
type BudgetResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	AdminUnit   string          `json:"admin_unit"`
	Year        int             `json:"year"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BudgetItemResponse un gasto individual.
type BudgetItemResponse struct {
	ID          int64           `json:"id"`
	BudgetID    int64           `json:"budget_id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BudgetBalanceResponse saldo disponible de un presupuesto.
type BudgetBalanceResponse struct {
	BudgetID    int64           `json:"budget_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Spent       decimal.Decimal `json:"spent"`
	Available   decimal.Decimal `json:"available"`
}
