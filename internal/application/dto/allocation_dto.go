package dto

import "time"

// AllocateRequest asigna una cantidad de un stock central a un albergue.
type AllocateRequest struct {
	StockID   int64 `json:"stock_id" validate:"required,gt=0"`
	ShelterID int64 `json:"shelter_id" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"required,gt=0"`
}

// DistributeRequest entrega una cantidad de una asignación a un evacuado.
type DistributeRequest struct {
	EvacueeID int64 `json:"evacuee_id" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"required,gt=0"`
}

// AllocationResponse una asignación registrada (inmutable).
type AllocationResponse struct {
	ID        int64     `json:"id"`
	StockID   int64     `json:"stock_id"`
	ShelterID int64     `json:"shelter_id"`
	Quantity  int64     `json:"quantity"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// DistributionResponse una distribución registrada.
type DistributionResponse struct {
	ID           int64     `json:"id"`
	AllocationID int64     `json:"allocation_id"`
	EvacueeID    int64     `json:"evacuee_id"`
	Quantity     int64     `json:"quantity"`
	UserID       int64     `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}
