// Package ledger agrupa las operaciones del libro de lotes que corren
// dentro de la transacción del caller: consumo FIFO, restauración, alta de
// lotes por compra, resolución de costo y clasificación contable. Todas
// reciben repositorios atados a la tx; ninguna abre transacciones propias.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastano/gestion-comercial/internal/domain/costing"
	"github.com/jcastano/gestion-comercial/internal/domain/entity"
	"github.com/jcastano/gestion-comercial/internal/domain/repository"
)

// Consume registra una salida FIFO estricta: selecciona los lotes del
// producto del más antiguo al más reciente (con bloqueo de fila), extrae de
// forma voraz y persiste el movimiento OUT con sus filas de consumo.
// Cada extracción decrementa QuantityAvailable de inmediato, dentro de la
// misma tx, para que consumos concurrentes no sobresuscriban un lote.
// Si el disponible total no alcanza retorna ErrInsufficientStock sin
// escribir nada (el rollback de la tx garantiza cero consumo parcial).
func Consume(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	productID string,
	quantity decimal.Decimal,
	documentTag string,
	now time.Time,
) (*entity.StockMovement, []costing.LotDraw, error) {
	lots, err := lotRepo.ListByProductFIFOForUpdate(productID)
	if err != nil {
		return nil, nil, err
	}
	draws, err := costing.PlanConsumption(lots, quantity)
	if err != nil {
		return nil, nil, err
	}

	for _, d := range draws {
		if err := lotRepo.AdjustAvailability(d.LotID, d.Quantity.Neg()); err != nil {
			return nil, nil, err
		}
	}

	res := costing.FIFOResolution(draws, quantity)
	mov := &entity.StockMovement{
		ID:                  uuid.New().String(),
		ProductID:           productID,
		Kind:                entity.MovementKindOut,
		Quantity:            quantity,
		DocumentTag:         documentTag,
		UnitCostRecognized:  &res.UnitCostAvg,
		TotalCostRecognized: &res.TotalCost,
		CreatedAt:           now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, nil, err
	}
	for _, d := range draws {
		c := &entity.LotConsumption{
			MovementID:       mov.ID,
			LotID:            d.LotID,
			QuantityConsumed: d.Quantity,
			UnitCost:         d.UnitCost,
			TotalCost:        d.TotalCost,
		}
		if err := movRepo.CreateConsumption(c); err != nil {
			return nil, nil, err
		}
	}
	return mov, draws, nil
}
