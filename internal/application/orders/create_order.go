package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastano/gestion-comercial/internal/domain"
	"github.com/jcastano/gestion-comercial/internal/domain/entity"
	"github.com/jcastano/gestion-comercial/internal/domain/repository"
)

// CreateOrder crea un pedido nuevo: inserta la cabecera y corre los pasos
// de reconstrucción (ítems + movimientos, totales, plan de cuotas) en una
// sola transacción. No hay nada que restaurar ni purgar en un pedido
// recién creado.
func (uc *UseCase) CreateOrder(ctx context.Context, input CreateOrderInput) (*entity.Order, error) {
	if input.Kind != entity.OrderKindSale && input.Kind != entity.OrderKindPurchase {
		return nil, domain.ErrInvalidInput
	}
	if input.FreightTotal.LessThan(decimal.Zero) || input.Installments.Count < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validatePartner(input.PartnerID); err != nil {
		return nil, err
	}
	productsByID, err := uc.validateItems(input.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.Order{
		ID:               uuid.New().String(),
		Kind:             input.Kind,
		PartnerID:        input.PartnerID,
		FreightTotal:     input.FreightTotal,
		InstallmentCount: input.Installments.Count,
		FirstDueDate:     input.Installments.FirstDueDate,
		Notes:            input.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		instRepo repository.InstallmentRepository,
		_ repository.ProductRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		rc := &reprocessContext{
			orderRepo:    orderRepo,
			lotRepo:      lotRepo,
			movRepo:      movRepo,
			instRepo:     instRepo,
			order:        order,
			productsByID: productsByID,
			items:        input.Items,
			explicitDue:  input.Installments.DueDates,
			now:          now,
			state:        stateLoaded,
		}
		if err := rc.rebuildItems(); err != nil {
			return err
		}
		if err := rc.recomputeTotals(); err != nil {
			return err
		}
		return rc.reconcileSchedule()
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("kind", order.Kind).
		Str("total_net", order.TotalNet.String()).
		Msg("pedido creado")
	return order, nil
}
