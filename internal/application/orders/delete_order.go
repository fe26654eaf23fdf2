package orders

import (
	"context"

	"github.com/jcastano/gestion-comercial/internal/application/ledger"
	"github.com/jcastano/gestion-comercial/internal/domain"
	"github.com/jcastano/gestion-comercial/internal/domain/entity"
	"github.com/jcastano/gestion-comercial/internal/domain/repository"
)

// DeleteOrder purga movimientos, ítems, cuotas y cabecera de un pedido.
// El borrado restaura el stock de forma simétrica a la edición: las ventas
// devuelven a los lotes lo consumido antes de purgar, y una compra cuyos
// lotes ya surtieron ventas no puede borrarse (ErrLockedByConsumption — el
// caller debe crear un pedido correctivo). Un pedido con cuotas pagadas
// tampoco se borra, para proteger historia conciliada.
func (uc *UseCase) DeleteOrder(ctx context.Context, orderID string) error {
	if orderID == "" {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		instRepo repository.InstallmentRepository,
		_ repository.ProductRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}

		paid, err := instRepo.AnyPaid(orderID)
		if err != nil {
			return err
		}
		if paid {
			return domain.ErrConflict
		}

		tag := entity.OrderDocumentTag(orderID)
		switch order.Kind {
		case entity.OrderKindSale:
			movs, err := movRepo.ListByDocumentTag(tag)
			if err != nil {
				return err
			}
			for _, mov := range movs {
				if mov.Kind != entity.MovementKindOut {
					continue
				}
				if err := ledger.Restore(lotRepo, movRepo, mov.ID); err != nil {
					return err
				}
			}
		case entity.OrderKindPurchase:
			lots, err := lotRepo.ListByDocumentTag(tag)
			if err != nil {
				return err
			}
			for _, lot := range lots {
				if !lot.FullyAvailable() {
					return domain.ErrLockedByConsumption
				}
			}
		}

		if err := movRepo.DeleteByDocumentTag(tag); err != nil {
			return err
		}
		if err := orderRepo.DeleteItems(orderID); err != nil {
			return err
		}
		if err := instRepo.DeleteByOrder(orderID); err != nil {
			return err
		}
		return orderRepo.Delete(orderID)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("order_id", orderID).Msg("pedido eliminado")
	return nil
}
