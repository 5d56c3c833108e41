package entity

import "time"

// Distribution registra la entrega de una cantidad de una Allocation a un
// evacuado individual. La suma de distribuciones de una misma asignación
// nunca supera la cantidad asignada.
type Distribution struct {
	ID           int64
	AllocationID int64
	EvacueeID    int64
	Quantity     int64
	UserID       int64
	CreatedAt    time.Time
}
