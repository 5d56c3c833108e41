package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockRequest alta de stock (ingreso inicial o reabastecimiento).
// DisasterID y ShelterID nulos ubican el stock en la bodega central.
type CreateStockRequest struct {
	GoodID      int64           `json:"good_id" validate:"required,gt=0"`
	DisasterID  *int64          `json:"disaster_id" validate:"omitempty,gt=0"`
	ShelterID   *int64          `json:"shelter_id" validate:"omitempty,gt=0"`
	Quantity    int64           `json:"quantity" validate:"min=0"`
	MaxCapacity int64           `json:"max_capacity" validate:"required,gt=0"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// AdjustStockRequest ajuste de cantidad por delta (positivo o negativo).
type AdjustStockRequest struct {
	Delta int64 `json:"delta" validate:"required"`
}

// SetStockActiveRequest activa o desactiva un stock.
type SetStockActiveRequest struct {
	Active bool `json:"active"`
}

// StockResponse stock con sus campos derivados (porcentaje y estado se
// recalculan en cada lectura, nunca se almacenan).
type StockResponse struct {
	ID          int64           `json:"id"`
	GoodID      int64           `json:"good_id"`
	DisasterID  *int64          `json:"disaster_id,omitempty"`
	ShelterID   *int64          `json:"shelter_id,omitempty"`
	Quantity    int64           `json:"quantity"`
	MaxCapacity int64           `json:"max_capacity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Active      bool            `json:"active"`
	PercentFull float64         `json:"percent_full"`
	Status      string          `json:"status"`
	LastUpdated time.Time       `json:"last_updated"`
	CreatedAt   time.Time       `json:"created_at"`
}

// StockListResponse listado paginado de stocks.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
