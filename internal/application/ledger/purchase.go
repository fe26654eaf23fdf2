package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastano/gestion-comercial/internal/domain/entity"
	"github.com/jcastano/gestion-comercial/internal/domain/repository"
)

// EnterPurchase registra una línea de compra: crea el movimiento IN y su
// lote (exactamente uno por movimiento de entrada). unitCost ya incluye la
// porción de flete prorrateada a la línea; es el costo con el que el lote
// surtirá ventas FIFO futuras.
func EnterPurchase(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	productID string,
	quantity, unitCost decimal.Decimal,
	documentTag string,
	now time.Time,
) (*entity.StockMovement, *entity.StockLot, error) {
	totalCost := quantity.Mul(unitCost)
	mov := &entity.StockMovement{
		ID:                  uuid.New().String(),
		ProductID:           productID,
		Kind:                entity.MovementKindIn,
		Quantity:            quantity,
		DocumentTag:         documentTag,
		UnitCostRecognized:  &unitCost,
		TotalCostRecognized: &totalCost,
		CreatedAt:           now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, nil, err
	}
	lot := &entity.StockLot{
		ID:                    uuid.New().String(),
		ProductID:             productID,
		CreatedFromMovementID: mov.ID,
		QuantityInitial:       quantity,
		QuantityAvailable:     quantity,
		UnitCost:              unitCost,
		CreatedAt:             now,
	}
	if err := lotRepo.Create(lot); err != nil {
		return nil, nil, err
	}
	return mov, lot, nil
}
