package alerting

import "github.com/shopspring/decimal"

// StockoutHorizonSentinel se devuelve cuando no se puede proyectar el agotamiento
// (sin salidas recientes o promedio no positivo).
const StockoutHorizonSentinel = 999

// DaysUntilStockout proyecta en cuántos días se agota una posición (servicio de dominio).
// Días = floor(CantidadActual / PromedioSalidaDiaria)
func DaysUntilStockout(quantity int64, avgDailyOutflow decimal.Decimal) int {
	if quantity < 0 {
		return 0
	}
	if avgDailyOutflow.LessThanOrEqual(decimal.Zero) {
		return StockoutHorizonSentinel
	}
	return int(decimal.NewFromInt(quantity).Div(avgDailyOutflow).IntPart())
}

// Deficit calcula cuántas unidades faltan para alcanzar el umbral del tipo.
func Deficit(quantity int64, threshold int) int64 {
	d := int64(threshold) - quantity
	if d < 0 {
		return 0
	}
	return d
}
