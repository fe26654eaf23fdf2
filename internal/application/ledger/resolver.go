package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastano/gestion-comercial/internal/domain"
	"github.com/jcastano/gestion-comercial/internal/domain/costing"
	"github.com/jcastano/gestion-comercial/internal/domain/entity"
	"github.com/jcastano/gestion-comercial/internal/domain/repository"
)

// ResolveSaleCost resuelve el costo reconocido de un ítem de venta y
// registra su movimiento de salida.
//
// Si el producto tiene lotes que cubren por completo la cantidad pedida,
// consume FIFO (modo fifo). Si no hay lotes o el disponible no alcanza,
// cae al costo promedio legacy y lo registra igual como costo reconocido:
// las ventas legacy también deben llevar costo no nulo para que los
// reportes de margen/COGS se mantengan consistentes.
//
// Con forceFIFO la venta exige trazabilidad completa: sin cobertura de
// lotes retorna ErrInsufficientStock y la edición entera se aborta (es el
// camino del flag de migración a FIFO).
func ResolveSaleCost(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	product *entity.Product,
	quantity decimal.Decimal,
	documentTag string,
	now time.Time,
	forceFIFO bool,
) (costing.CostResolution, *entity.StockMovement, error) {
	mov, draws, err := Consume(lotRepo, movRepo, product.ID, quantity, documentTag, now)
	if err == nil {
		return costing.FIFOResolution(draws, quantity), mov, nil
	}
	if !errors.Is(err, domain.ErrInsufficientStock) {
		return costing.CostResolution{}, nil, err
	}
	if forceFIFO {
		return costing.CostResolution{}, nil, domain.ErrInsufficientStock
	}

	// Respaldo legacy: promedio histórico del producto o, si nunca se
	// calculó, el costo de su última compra.
	avg := product.AverageCost
	if avg.IsZero() {
		last, err := movRepo.LastPurchaseUnitCost(product.ID)
		if err != nil {
			return costing.CostResolution{}, nil, err
		}
		if last != nil {
			avg = *last
		}
	}
	res := costing.LegacyResolution(avg, quantity)
	legacyMov := &entity.StockMovement{
		ID:                  uuid.New().String(),
		ProductID:           product.ID,
		Kind:                entity.MovementKindOut,
		Quantity:            quantity,
		DocumentTag:         documentTag,
		UnitCostRecognized:  &res.UnitCostAvg,
		TotalCostRecognized: &res.TotalCost,
		CreatedAt:           now,
	}
	if err := movRepo.Create(legacyMov); err != nil {
		return costing.CostResolution{}, nil, err
	}
	return res, legacyMov, nil
}
