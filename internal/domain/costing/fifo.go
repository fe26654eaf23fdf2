package costing

import (
	"github.com/shopspring/decimal"

	"github.com/jcastano/gestion-comercial/internal/domain"
	"github.com/jcastano/gestion-comercial/internal/domain/entity"
)

// LotDraw es una extracción planificada sobre un lote concreto.
type LotDraw struct {
	LotID     string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	TotalCost decimal.Decimal
}

// PlanConsumption planifica el consumo FIFO de quantity sobre los lotes
// recibidos, que deben venir ordenados del más antiguo al más reciente.
// Extrae de forma voraz de QuantityAvailable hasta agotar la cantidad
// pedida. Si el disponible total no alcanza retorna ErrInsufficientStock
// sin plan parcial. No muta los lotes: aplicar los decrementos es
// responsabilidad del caller, dentro de la misma transacción.
func PlanConsumption(lots []*entity.StockLot, quantity decimal.Decimal) ([]LotDraw, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	remaining := quantity
	var draws []LotDraw
	for _, lot := range lots {
		if remaining.IsZero() {
			break
		}
		if !lot.QuantityAvailable.GreaterThan(decimal.Zero) {
			continue
		}
		drawQty := decimal.Min(remaining, lot.QuantityAvailable)
		draws = append(draws, LotDraw{
			LotID:     lot.ID,
			Quantity:  drawQty,
			UnitCost:  lot.UnitCost,
			TotalCost: drawQty.Mul(lot.UnitCost),
		})
		remaining = remaining.Sub(drawQty)
	}
	if !remaining.IsZero() {
		return nil, domain.ErrInsufficientStock
	}
	return draws, nil
}

// CoverageAvailable indica si los lotes cubren por completo la cantidad
// pedida (para clasificación, sin consumir nada).
func CoverageAvailable(lots []*entity.StockLot, quantity decimal.Decimal) bool {
	total := decimal.Zero
	for _, lot := range lots {
		total = total.Add(lot.QuantityAvailable)
	}
	return total.GreaterThanOrEqual(quantity)
}
