package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la existencia de un tipo de bien de ayuda en una ubicación
// (bodega central si DisasterID y ShelterID son nil, desastre o albergue).
// Quantity es un conteo entero; nunca negativo ni mayor a MaxCapacity.
type Stock struct {
	ID          int64
	GoodID      int64
	DisasterID  *int64
	ShelterID   *int64
	Quantity    int64
	MaxCapacity int64
	UnitCost    decimal.Decimal
	Active      bool
	LastUpdated time.Time
	CreatedAt   time.Time
}

// IsCentral indica si el stock pertenece a la bodega central (sin ubicación).
func (s *Stock) IsCentral() bool {
	return s.DisasterID == nil && s.ShelterID == nil
}
