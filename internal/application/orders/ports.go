package orders

import (
	"context"

	"github.com/jcastano/gestion-comercial/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La transacción es la unidad de atomicidad
// y de fallo de todo reproceso de pedido: cualquier error revierte la
// edición completa al estado previo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		instRepo repository.InstallmentRepository,
		productRepo repository.ProductRepository,
	) error) error
}
