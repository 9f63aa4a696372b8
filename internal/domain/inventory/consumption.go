package inventory

import "github.com/shopspring/decimal"

const (
	// SalesWindowDays ventana de ventas usada para calcular la tasa diaria.
	SalesWindowDays = 30
	// StockoutSentinel valor "prácticamente infinito" cuando no hay consumo.
	StockoutSentinel = 999
)

// DailySalesRate = unidades vendidas en la ventana / días de la ventana (4 decimales).
func DailySalesRate(soldUnits, windowDays int) decimal.Decimal {
	if soldUnits <= 0 || windowDays <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(soldUnits)).
		Div(decimal.NewFromInt(int64(windowDays))).
		Round(4)
}

// DaysUntilStockout proyecta los días hasta agotar el stock.
//
// Si manualRate > 0 se usa directamente: ceil(stock / tasa).
// Si no, la tasa sale de soldUnits en SalesWindowDays y se evalúa como
// ceil(stock * ventana / vendidas) con enteros, para no arrastrar el redondeo de la tasa.
// Sin consumo devuelve StockoutSentinel. Nunca devuelve negativos.
func DaysUntilStockout(currentStock int, manualRate *decimal.Decimal, soldUnits int) (days int, rate decimal.Decimal) {
	if manualRate != nil && manualRate.GreaterThan(decimal.Zero) {
		d := decimal.NewFromInt(int64(currentStock)).Div(*manualRate).Ceil().IntPart()
		return clampDays(int(d)), *manualRate
	}
	if soldUnits <= 0 {
		return StockoutSentinel, decimal.Zero
	}
	num := currentStock * SalesWindowDays
	d := (num + soldUnits - 1) / soldUnits
	return clampDays(d), DailySalesRate(soldUnits, SalesWindowDays)
}

func clampDays(d int) int {
	if d < 0 {
		return 0
	}
	return d
}
