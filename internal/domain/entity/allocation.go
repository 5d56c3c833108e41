package entity

import "time"

// Allocation registra el traslado de una cantidad fija de un Stock central
// hacia un albergue. Inmutable una vez creada: solo la consumen las
// distribuciones posteriores.
type Allocation struct {
	ID        int64
	StockID   int64
	ShelterID int64
	Quantity  int64
	UserID    int64
	CreatedAt time.Time
}
