package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/javierdrios/Socorro-api/internal/domain/stock"
)

// Los umbrales son parte del contrato con el tablero de control:
// <=0 empty; <=25% low; <75% medium; resto high.
func TestStatusFor_Umbrales(t *testing.T) {
	cases := []struct {
		name     string
		quantity int64
		capacity int64
		want     string
	}{
		{"cantidad cero es empty", 0, 1000, stock.StatusEmpty},
		{"cantidad negativa es empty", -5, 1000, stock.StatusEmpty},
		{"1% es low", 10, 1000, stock.StatusLow},
		{"25% exacto es low", 250, 1000, stock.StatusLow},
		{"justo sobre 25% es medium", 251, 1000, stock.StatusMedium},
		{"50% es medium", 500, 1000, stock.StatusMedium},
		{"74.9% es medium", 749, 1000, stock.StatusMedium},
		{"75% exacto es high", 750, 1000, stock.StatusHigh},
		{"100% es high", 1000, 1000, stock.StatusHigh},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stock.StatusFor(tc.quantity, tc.capacity))
		})
	}
}

func TestPercentFull(t *testing.T) {
	assert.InDelta(t, 10.0, stock.PercentFull(100, 1000), 0.001)
	assert.InDelta(t, 100.0, stock.PercentFull(1000, 1000), 0.001)

	// Capacidad cero o negativa no debe dividir por cero
	assert.Zero(t, stock.PercentFull(100, 0))
	assert.Zero(t, stock.PercentFull(100, -1))
	assert.Zero(t, stock.PercentFull(-1, 100))
}
