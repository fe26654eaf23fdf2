package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jcastano/gestion-comercial/internal/domain/costing"
	"github.com/jcastano/gestion-comercial/internal/domain/entity"
	"github.com/jcastano/gestion-comercial/internal/domain/repository"
)

// ClassifyOrder deriva la clasificación contable de un pedido, solo
// lectura y sin efectos:
//
//   - fifo: toda salida registrada tiene trazabilidad de lotes completa
//     (la suma de sus filas de consumo iguala la cantidad del movimiento).
//   - eligible: aún no hay movimientos y todos los ítems tienen cobertura
//     de lotes suficiente hoy; una edición lo subiría a fifo.
//   - legacy: cualquier otro caso.
//
// La clasificación es consultiva: los callers la usan para decidir si un
// pedido legacy amerita migración (flag de reproceso forzado).
func ClassifyOrder(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	order *entity.Order,
	items []*entity.OrderItem,
) (string, error) {
	movs, err := movRepo.ListByDocumentTag(entity.OrderDocumentTag(order.ID))
	if err != nil {
		return "", err
	}

	if len(movs) == 0 {
		if order.Kind == entity.OrderKindPurchase {
			return entity.OrderAccountingEligible, nil
		}
		for _, item := range items {
			lots, err := lotRepo.ListByProductFIFO(item.ProductID)
			if err != nil {
				return "", err
			}
			if !costing.CoverageAvailable(lots, item.Quantity) {
				return entity.OrderAccountingLegacy, nil
			}
		}
		return entity.OrderAccountingEligible, nil
	}

	for _, mov := range movs {
		if mov.Kind != entity.MovementKindOut {
			continue
		}
		consumptions, err := movRepo.ListConsumptionsByMovement(mov.ID)
		if err != nil {
			return "", err
		}
		covered := decimal.Zero
		for _, c := range consumptions {
			covered = covered.Add(c.QuantityConsumed)
		}
		if !covered.Equal(mov.Quantity) {
			return entity.OrderAccountingLegacy, nil
		}
	}
	return entity.OrderAccountingFIFO, nil
}
