package stock

// Estados derivados del nivel de llenado de un stock. Se recalculan en cada
// lectura a partir de Quantity/MaxCapacity; nunca se almacenan.
const (
	StatusEmpty  = "empty"
	StatusLow    = "low"
	StatusMedium = "medium"
	StatusHigh   = "high"
)

// PercentFull devuelve el porcentaje de llenado (0-100) de un stock.
// Capacidad no positiva se trata como 0% para no dividir por cero.
func PercentFull(quantity, maxCapacity int64) float64 {
	if maxCapacity <= 0 || quantity <= 0 {
		return 0
	}
	return float64(quantity) * 100 / float64(maxCapacity)
}

// StatusFor clasifica el stock según su porcentaje de llenado:
// <=0 empty; <=25% low; <75% medium; resto high.
func StatusFor(quantity, maxCapacity int64) string {
	if quantity <= 0 {
		return StatusEmpty
	}
	pct := PercentFull(quantity, maxCapacity)
	switch {
	case pct <= 25:
		return StatusLow
	case pct < 75:
		return StatusMedium
	default:
		return StatusHigh
	}
}
