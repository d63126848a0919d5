package alerting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Abasto-api/internal/domain/alerting"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestDaysUntilStockout valida la proyección de agotamiento que alimenta las
// alertas de stock bajo: Días = floor(CantidadActual / PromedioSalidaDiaria).
//
// La división usa decimal para no arrastrar error binario; el truncamiento
// (IntPart) equivale a floor porque ambos operandos son no negativos.
// ──────────────────────────────────────────────────────────────────────────────

func TestDaysUntilStockout_DivisionExacta(t *testing.T) {
	days := alerting.DaysUntilStockout(10, decimal.NewFromInt(2))
	assert.Equal(t, 5, days, "10 unidades a 2/día deben agotarse en 5 días")
}

func TestDaysUntilStockout_TruncaHaciaAbajo(t *testing.T) {
	days := alerting.DaysUntilStockout(5, decimal.NewFromInt(2))
	assert.Equal(t, 2, days, "5 unidades a 2/día: 2.5 se trunca a 2")
}

func TestDaysUntilStockout_PromedioFraccionario(t *testing.T) {
	avg := decimal.RequireFromString("1.5")
	days := alerting.DaysUntilStockout(4, avg)
	assert.Equal(t, 2, days, "4 unidades a 1.5/día: 2.66 se trunca a 2")
}

func TestDaysUntilStockout_CantidadCero(t *testing.T) {
	days := alerting.DaysUntilStockout(0, decimal.NewFromInt(3))
	assert.Equal(t, 0, days, "sin unidades la posición ya está agotada")
}

func TestDaysUntilStockout_PromedioCeroDevuelveCentinela(t *testing.T) {
	days := alerting.DaysUntilStockout(7, decimal.Zero)
	assert.Equal(t, alerting.StockoutHorizonSentinel, days,
		"sin salidas recientes no hay proyección: se devuelve 999")
}

func TestDaysUntilStockout_PromedioNegativoDevuelveCentinela(t *testing.T) {
	days := alerting.DaysUntilStockout(7, decimal.NewFromInt(-2))
	assert.Equal(t, alerting.StockoutHorizonSentinel, days)
}

func TestDeficit(t *testing.T) {
	assert.Equal(t, int64(7), alerting.Deficit(3, 10), "faltan 7 unidades para el umbral")
	assert.Equal(t, int64(0), alerting.Deficit(12, 10), "sobre el umbral no hay déficit")
}
