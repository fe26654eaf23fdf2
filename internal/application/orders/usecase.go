package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastano/gestion-comercial/internal/application/ledger"
	"github.com/jcastano/gestion-comercial/internal/domain"
	"github.com/jcastano/gestion-comercial/internal/domain/entity"
	"github.com/jcastano/gestion-comercial/internal/domain/repository"
	"github.com/jcastano/gestion-comercial/pkg/logger"
)

// UseCase orquesta el ciclo de vida de pedidos: creación, edición
// (reproceso restaurar-y-reconstruir), borrado, pago de cuotas y lecturas
// de clasificación/stock. Toda mutación corre dentro de una transacción
// del TxRunner; las lecturas usan los repositorios atados al pool.
type UseCase struct {
	txRunner    TxRunner
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	partnerRepo repository.PartnerRepository
	lotRepo     repository.StockLotRepository
	movRepo     repository.StockMovementRepository
	instRepo    repository.InstallmentRepository
	log         *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	partnerRepo repository.PartnerRepository,
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	instRepo repository.InstallmentRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		partnerRepo: partnerRepo,
		lotRepo:     lotRepo,
		movRepo:     movRepo,
		instRepo:    instRepo,
		log:         log,
	}
}

// validateItems valida los ítems antes de cualquier mutación y resuelve
// los productos referenciados. Precio unitario en cero toma el precio de
// catálogo del producto.
func (uc *UseCase) validateItems(items []ItemInput) (map[string]*entity.Product, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	productsByID := make(map[string]*entity.Product)
	for i := range items {
		item := &items[i]
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.LessThan(decimal.Zero) || item.UnitDiscount.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.IsZero() {
			item.UnitPrice = product.Price
		}
		productsByID[item.ProductID] = product
	}
	return productsByID, nil
}

// validatePartner verifica que el tercero exista y esté activo.
func (uc *UseCase) validatePartner(partnerID string) error {
	if partnerID == "" {
		return domain.ErrInvalidInput
	}
	partner, err := uc.partnerRepo.GetByID(partnerID)
	if err != nil {
		return err
	}
	if partner == nil {
		return domain.ErrInvalidInput
	}
	if !partner.Active {
		return domain.ErrInactivePartner
	}
	return nil
}

// OrderView es la vista de lectura de un pedido, para reportes y UI.
type OrderView struct {
	Order        *entity.Order
	Items        []*entity.OrderItem
	Installments []*entity.Installment
	Accounting   string // fifo | eligible | legacy
}

// GetOrder arma la vista completa del pedido con su clasificación contable.
func (uc *UseCase) GetOrder(ctx context.Context, orderID string) (*OrderView, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.ListItems(orderID)
	if err != nil {
		return nil, err
	}
	installments, err := uc.instRepo.ListByOrder(orderID)
	if err != nil {
		return nil, err
	}
	accounting, err := ledger.ClassifyOrder(uc.lotRepo, uc.movRepo, order, items)
	if err != nil {
		return nil, err
	}
	return &OrderView{
		Order:        order,
		Items:        items,
		Installments: installments,
		Accounting:   accounting,
	}, nil
}

// ClassifyOrder expone solo la clasificación contable (fifo/eligible/legacy).
func (uc *UseCase) ClassifyOrder(ctx context.Context, orderID string) (string, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return "", err
	}
	if order == nil {
		return "", domain.ErrNotFound
	}
	items, err := uc.orderRepo.ListItems(orderID)
	if err != nil {
		return "", err
	}
	return ledger.ClassifyOrder(uc.lotRepo, uc.movRepo, order, items)
}

// ListInstallments devuelve el plan de cuotas del pedido.
func (uc *UseCase) ListInstallments(ctx context.Context, orderID string) ([]*entity.Installment, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return uc.instRepo.ListByOrder(orderID)
}

// PayInstallment marca una cuota como pagada. A partir del primer pago el
// plan completo queda inmutable frente a reprocesos.
func (uc *UseCase) PayInstallment(ctx context.Context, orderID string, sequence int, paidAt time.Time) error {
	inst, err := uc.instRepo.Get(orderID, sequence)
	if err != nil {
		return err
	}
	if inst == nil {
		return domain.ErrNotFound
	}
	if inst.Paid() {
		return domain.ErrInstallmentPaid
	}
	return uc.instRepo.MarkPaid(orderID, sequence, paidAt)
}

// ProductStock es la disponibilidad por lote de un producto.
type ProductStock struct {
	ProductID      string
	TotalAvailable decimal.Decimal
	Lots           []*entity.StockLot
}

// GetProductStock devuelve la disponibilidad total y por lote (FIFO).
func (uc *UseCase) GetProductStock(ctx context.Context, productID string) (*ProductStock, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	lots, err := uc.lotRepo.ListByProductFIFO(productID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, lot := range lots {
		total = total.Add(lot.QuantityAvailable)
	}
	return &ProductStock{ProductID: productID, TotalAvailable: total, Lots: lots}, nil
}
