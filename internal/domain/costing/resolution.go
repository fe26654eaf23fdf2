package costing

import "github.com/shopspring/decimal"

// Modo de resolución de costo de una venta.
const (
	ModeFIFO   = "fifo"   // consumo con trazabilidad de lotes
	ModeLegacy = "legacy" // costo promedio histórico, sin lotes
)

// CostResolution es el resultado del resolutor de costos para un ítem de
// venta: variante FIFO (con extracciones por lote) o legacy (solo costo
// promedio). En ambos modos UnitCostAvg y TotalCost son no nulos, para que
// los reportes de margen/COGS se mantengan consistentes.
type CostResolution struct {
	Mode        string
	Draws       []LotDraw // vacío en modo legacy
	UnitCostAvg decimal.Decimal
	TotalCost   decimal.Decimal
}

// FIFOResolution construye la variante FIFO a partir de las extracciones.
// UnitCostAvg es el promedio ponderado de los costos unitarios realmente
// extraídos.
func FIFOResolution(draws []LotDraw, quantity decimal.Decimal) CostResolution {
	total := decimal.Zero
	for _, d := range draws {
		total = total.Add(d.TotalCost)
	}
	avg := decimal.Zero
	if !quantity.IsZero() {
		avg = total.Div(quantity)
	}
	return CostResolution{Mode: ModeFIFO, Draws: draws, UnitCostAvg: avg, TotalCost: total}
}

// LegacyResolution construye la variante legacy con el costo promedio dado.
func LegacyResolution(avgCost, quantity decimal.Decimal) CostResolution {
	return CostResolution{
		Mode:        ModeLegacy,
		UnitCostAvg: avgCost,
		TotalCost:   avgCost.Mul(quantity),
	}
}
