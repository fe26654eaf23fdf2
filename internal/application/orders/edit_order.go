package orders

import (
	"context"
	"time"

	"github.com/jcastano/gestion-comercial/internal/domain"
	"github.com/jcastano/gestion-comercial/internal/domain/entity"
	"github.com/jcastano/gestion-comercial/internal/domain/repository"
)

// EditOrder ejecuta la máquina de estados del reproceso sobre un pedido
// existente, todo dentro de una transacción con la fila del pedido
// bloqueada (serializa ediciones concurrentes del mismo pedido):
//
//  1. Aplica el patch de cabecera incondicionalmente.
//  2. Si viene lista de ítems nueva (o el flag de migración a FIFO):
//     ventas restauran los consumos de sus salidas; compras verifican que
//     ningún lote propio haya sido consumido (si no, aborta con
//     ErrLockedByConsumption).
//  3. Borra los movimientos etiquetados al pedido (cascada de consumos y
//     lotes de compra) y los ítems previos.
//  4. Reinserta los ítems: ventas vía resolutor de costos, compras con
//     lotes nuevos y flete prorrateado.
//  5. Recalcula totales y concilia el plan de cuotas.
//
// Una edición que no trae ítems ni migración es un cambio puro de
// cabecera: los pasos 2–4 se saltan y el libro de stock no se toca.
func (uc *UseCase) EditOrder(ctx context.Context, input EditOrderInput) error {
	if input.OrderID == "" {
		return domain.ErrInvalidInput
	}
	if input.Header.PartnerID != nil {
		if err := uc.validatePartner(*input.Header.PartnerID); err != nil {
			return err
		}
	}

	reprocessItems := input.Items != nil || input.MigrateToFIFO

	var productsByID map[string]*entity.Product
	var err error
	if input.Items != nil {
		productsByID, err = uc.validateItems(input.Items)
		if err != nil {
			return err
		}
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		instRepo repository.InstallmentRepository,
		_ repository.ProductRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}

		rc := &reprocessContext{
			orderRepo:    orderRepo,
			lotRepo:      lotRepo,
			movRepo:      movRepo,
			instRepo:     instRepo,
			order:        order,
			productsByID: productsByID,
			items:        input.Items,
			forceFIFO:    input.MigrateToFIFO,
			now:          now,
			state:        stateLoaded,
		}
		if input.Installments != nil {
			rc.order.InstallmentCount = input.Installments.Count
			if input.Installments.FirstDueDate != nil {
				rc.order.FirstDueDate = input.Installments.FirstDueDate
			}
			rc.explicitDue = input.Installments.DueDates
		}

		if err := rc.applyHeader(input.Header); err != nil {
			return err
		}

		if reprocessItems {
			// Migración sin lista nueva: se reprocesan los ítems actuales.
			if rc.items == nil {
				current, err := orderRepo.ListItems(order.ID)
				if err != nil {
					return err
				}
				if len(current) == 0 {
					return domain.ErrInvalidInput
				}
				rc.items = make([]ItemInput, len(current))
				for i, it := range current {
					rc.items[i] = ItemInput{
						ProductID:    it.ProductID,
						Quantity:     it.Quantity,
						UnitPrice:    it.UnitPrice,
						UnitDiscount: it.UnitDiscount,
					}
				}
				rc.productsByID, err = uc.validateItems(rc.items)
				if err != nil {
					return err
				}
			}

			if err := rc.restoreAndPurge(); err != nil {
				return err
			}
			if err := rc.rebuildItems(); err != nil {
				return err
			}
			if err := rc.recomputeTotals(); err != nil {
				return err
			}
		}

		return rc.reconcileSchedule()
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("order_id", input.OrderID).
		Bool("items_reprocessed", reprocessItems).
		Bool("migrate_to_fifo", input.MigrateToFIFO).
		Msg("pedido editado")
	return nil
}
