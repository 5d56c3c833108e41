package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReliefGood representa un tipo de bien de ayuda humanitaria (kit de aseo,
// mercado, frazada). Tabla de referencia consumida por los stocks.
type ReliefGood struct {
	ID         int64
	CategoryID int64
	Name       string
	Unit       string // unidad de medida: kit, caja, unidad
	UnitCost   decimal.Decimal
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
