package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastano/gestion-comercial/internal/application/ledger"
	"github.com/jcastano/gestion-comercial/internal/domain"
	"github.com/jcastano/gestion-comercial/internal/domain/costing"
	"github.com/jcastano/gestion-comercial/internal/domain/entity"
	"github.com/jcastano/gestion-comercial/internal/domain/repository"
)

// Estados del reproceso de un pedido. Cada transición corre dentro de la
// misma transacción; un fallo en cualquier paso revierte la edición entera.
const (
	stateLoaded             = "LOADED"
	stateHeaderUpdated      = "HEADER_UPDATED"
	stateItemsRestored      = "ITEMS_RESTORED"
	stateMovementsPurged    = "MOVEMENTS_PURGED"
	stateItemsRebuilt       = "ITEMS_REBUILT"
	stateMovementsRebuilt   = "MOVEMENTS_REBUILT"
	stateTotalsRecomputed   = "TOTALS_RECOMPUTED"
	stateScheduleReconciled = "SCHEDULE_RECONCILED"
)

// reprocessContext lleva el estado de un reproceso: repositorios atados a
// la tx, el pedido bloqueado, los ítems nuevos ya validados y el plan de
// cuotas. Ningún estado compartido cruza los límites de paso fuera de este
// struct.
type reprocessContext struct {
	orderRepo repository.OrderRepository
	lotRepo   repository.StockLotRepository
	movRepo   repository.StockMovementRepository
	instRepo  repository.InstallmentRepository

	order        *entity.Order
	productsByID map[string]*entity.Product
	items        []ItemInput
	forceFIFO    bool
	explicitDue  []time.Time
	now          time.Time
	state        string
}

// applyHeader aplica el patch de cabecera incondicionalmente (paso 1).
func (rc *reprocessContext) applyHeader(patch HeaderPatch) error {
	if patch.PartnerID != nil {
		rc.order.PartnerID = *patch.PartnerID
	}
	if patch.FreightTotal != nil {
		if patch.FreightTotal.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		rc.order.FreightTotal = *patch.FreightTotal
	}
	if patch.InstallmentCount != nil {
		if *patch.InstallmentCount < 0 {
			return domain.ErrInvalidInput
		}
		rc.order.InstallmentCount = *patch.InstallmentCount
	}
	if patch.FirstDueDate != nil {
		rc.order.FirstDueDate = patch.FirstDueDate
	}
	if patch.Notes != nil {
		rc.order.Notes = *patch.Notes
	}
	rc.order.UpdatedAt = rc.now
	if err := rc.orderRepo.Update(rc.order); err != nil {
		return err
	}
	rc.state = stateHeaderUpdated
	return nil
}

// restoreAndPurge ejecuta los pasos 2–4: restaura los consumos de las
// salidas (ventas) o verifica que ningún lote de la compra haya sido
// consumido, y después borra movimientos e ítems previos.
//
// El orden importa: restaurar antes de borrar, en la misma tx, es lo que
// hace imposible restaurar dos veces el mismo movimiento.
func (rc *reprocessContext) restoreAndPurge() error {
	tag := entity.OrderDocumentTag(rc.order.ID)

	switch rc.order.Kind {
	case entity.OrderKindSale:
		movs, err := rc.movRepo.ListByDocumentTag(tag)
		if err != nil {
			return err
		}
		for _, mov := range movs {
			if mov.Kind != entity.MovementKindOut {
				continue
			}
			if err := ledger.Restore(rc.lotRepo, rc.movRepo, mov.ID); err != nil {
				return err
			}
		}
	case entity.OrderKindPurchase:
		// Editar cantidades de compra con ventas ya surtidas desde sus
		// lotes corrompería la historia de costos: se aborta completo.
		lots, err := rc.lotRepo.ListByDocumentTag(tag)
		if err != nil {
			return err
		}
		for _, lot := range lots {
			if !lot.FullyAvailable() {
				return domain.ErrLockedByConsumption
			}
		}
	default:
		return domain.ErrInvalidInput
	}
	rc.state = stateItemsRestored

	// Borra movimientos previos; la BD cascada filas de consumo y, en
	// compras, los lotes originados (seguro: arriba se garantizó que no
	// tienen consumo).
	if err := rc.movRepo.DeleteByDocumentTag(tag); err != nil {
		return err
	}
	rc.state = stateMovementsPurged

	return rc.orderRepo.DeleteItems(rc.order.ID)
}

// rebuildItems ejecuta el paso 5: reinserta los ítems. Las ventas pasan
// por el resolutor de costos (FIFO o legacy) generando salidas y filas de
// consumo nuevas; las compras crean lotes y entradas con el flete
// prorrateado incluido en el costo unitario.
func (rc *reprocessContext) rebuildItems() error {
	tag := entity.OrderDocumentTag(rc.order.ID)

	var freightShares []decimal.Decimal
	if rc.order.Kind == entity.OrderKindPurchase {
		quantities := make([]decimal.Decimal, len(rc.items))
		for i, item := range rc.items {
			quantities[i] = item.Quantity
		}
		shares, err := costing.AllocateFreight(rc.order.FreightTotal, quantities)
		if err != nil {
			return err
		}
		freightShares = shares
	}

	for i, item := range rc.items {
		lineTotal := item.Quantity.Mul(item.UnitPrice.Sub(item.UnitDiscount))
		row := &entity.OrderItem{
			ID:           uuid.New().String(),
			OrderID:      rc.order.ID,
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			UnitDiscount: item.UnitDiscount,
			LineTotal:    lineTotal,
		}

		switch rc.order.Kind {
		case entity.OrderKindSale:
			product := rc.productsByID[item.ProductID]
			res, _, err := ledger.ResolveSaleCost(
				rc.lotRepo, rc.movRepo, product, item.Quantity, tag, rc.now, rc.forceFIFO,
			)
			if err != nil {
				return err
			}
			unitCost := res.UnitCostAvg
			totalCost := res.TotalCost
			row.UnitCostRecognized = &unitCost
			row.TotalCostRecognized = &totalCost
		case entity.OrderKindPurchase:
			// Costo del lote: precio neto de la línea más su porción de
			// flete, por unidad.
			lotUnitCost := lineTotal.Add(freightShares[i]).Div(item.Quantity)
			if _, _, err := ledger.EnterPurchase(
				rc.lotRepo, rc.movRepo, item.ProductID, item.Quantity, lotUnitCost, tag, rc.now,
			); err != nil {
				return err
			}
		}

		if err := rc.orderRepo.CreateItem(row); err != nil {
			return err
		}
	}
	rc.state = stateItemsRebuilt
	rc.state = stateMovementsRebuilt
	return nil
}

// recomputeTotals ejecuta el paso 6: recalcula bruto, descuento y neto
// desde los ítems recién insertados y persiste la cabecera.
func (rc *reprocessContext) recomputeTotals() error {
	gross := decimal.Zero
	discount := decimal.Zero
	for _, item := range rc.items {
		gross = gross.Add(item.Quantity.Mul(item.UnitPrice))
		discount = discount.Add(item.Quantity.Mul(item.UnitDiscount))
	}
	rc.order.TotalGross = gross
	rc.order.TotalDiscount = discount
	rc.order.TotalNet = gross.Sub(discount)
	rc.order.UpdatedAt = rc.now
	if err := rc.orderRepo.Update(rc.order); err != nil {
		return err
	}
	rc.state = stateTotalsRecomputed
	return nil
}

// reconcileSchedule ejecuta el paso 7: regenera el plan de cuotas desde el
// total con flete, salvo que alguna cuota ya esté pagada — en ese caso es
// un no-op para no alterar un plan con pagos conciliados. El guard es
// deliberadamente conservador: cualquier pago congela el plan completo.
func (rc *reprocessContext) reconcileSchedule() error {
	paid, err := rc.instRepo.AnyPaid(rc.order.ID)
	if err != nil {
		return err
	}
	if paid {
		rc.state = stateScheduleReconciled
		return nil
	}

	if err := rc.instRepo.DeleteByOrder(rc.order.ID); err != nil {
		return err
	}
	count := rc.order.InstallmentCount
	if count <= 0 {
		// Pedido de contado: sin plan.
		rc.state = stateScheduleReconciled
		return nil
	}

	totalWithFreight := rc.order.TotalNet.Add(rc.order.FreightTotal)
	amount, err := costing.InstallmentAmount(totalWithFreight, count)
	if err != nil {
		return err
	}
	firstDue := rc.now.AddDate(0, 1, 0)
	if rc.order.FirstDueDate != nil {
		firstDue = *rc.order.FirstDueDate
	}
	dates, err := costing.InstallmentDueDates(firstDue, count, rc.explicitDue)
	if err != nil {
		return err
	}
	for i, due := range dates {
		inst := &entity.Installment{
			OrderID:  rc.order.ID,
			Sequence: i + 1,
			DueDate:  due,
			Amount:   amount,
		}
		if err := rc.instRepo.Create(inst); err != nil {
			return err
		}
	}
	rc.state = stateScheduleReconciled
	return nil
}
