package orders_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastano/gestion-comercial/internal/application/orders"
	"github.com/jcastano/gestion-comercial/internal/domain/entity"
	"github.com/jcastano/gestion-comercial/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para los tests del caso de uso. Emulan el
// comportamiento relevante de la capa postgres: orden FIFO por fecha de
// creación, borrado por etiqueta con cascada (consumos y lotes de compra) y
// el chequeo de rango de AdjustAvailability.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products     map[string]*entity.Product
	partners     map[string]*entity.Partner
	orders       map[string]*entity.Order
	items        map[string][]*entity.OrderItem
	lots         []*entity.StockLot
	movements    []*entity.StockMovement
	consumptions []*entity.LotConsumption
	installments map[string][]*entity.Installment
}

func newMemStore() *memStore {
	return &memStore{
		products:     make(map[string]*entity.Product),
		partners:     make(map[string]*entity.Partner),
		orders:       make(map[string]*entity.Order),
		items:        make(map[string][]*entity.OrderItem),
		installments: make(map[string][]*entity.Installment),
	}
}

func (s *memStore) lotByID(id string) *entity.StockLot {
	for _, lot := range s.lots {
		if lot.ID == id {
			return lot
		}
	}
	return nil
}

func (s *memStore) movementIDsByTag(tag string) map[string]bool {
	ids := make(map[string]bool)
	for _, m := range s.movements {
		if m.DocumentTag == tag {
			ids[m.ID] = true
		}
	}
	return ids
}

// ── productos / terceros ──────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		out = append(out, p)
	}
	return out, nil
}

type memPartnerRepo struct{ s *memStore }

func (r *memPartnerRepo) Create(p *entity.Partner) error {
	r.s.partners[p.ID] = p
	return nil
}

func (r *memPartnerRepo) GetByID(id string) (*entity.Partner, error) {
	return r.s.partners[id], nil
}

func (r *memPartnerRepo) List(limit, offset int) ([]*entity.Partner, error) {
	var out []*entity.Partner
	for _, p := range r.s.partners {
		out = append(out, p)
	}
	return out, nil
}

// ── pedidos ───────────────────────────────────────────────────────────────────

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(o *entity.Order) error {
	r.s.orders[o.ID] = o
	return nil
}

func (r *memOrderRepo) Update(o *entity.Order) error {
	if _, ok := r.s.orders[o.ID]; !ok {
		return fmt.Errorf("pedido %s no existe", o.ID)
	}
	r.s.orders[o.ID] = o
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	return r.s.orders[id], nil
}

func (r *memOrderRepo) GetByIDForUpdate(id string) (*entity.Order, error) {
	return r.s.orders[id], nil
}

func (r *memOrderRepo) Delete(id string) error {
	delete(r.s.orders, id)
	return nil
}

func (r *memOrderRepo) CreateItem(item *entity.OrderItem) error {
	r.s.items[item.OrderID] = append(r.s.items[item.OrderID], item)
	return nil
}

func (r *memOrderRepo) ListItems(orderID string) ([]*entity.OrderItem, error) {
	return r.s.items[orderID], nil
}

func (r *memOrderRepo) DeleteItems(orderID string) error {
	delete(r.s.items, orderID)
	return nil
}

// ── lotes ─────────────────────────────────────────────────────────────────────

type memLotRepo struct{ s *memStore }

func (r *memLotRepo) Create(lot *entity.StockLot) error {
	r.s.lots = append(r.s.lots, lot)
	return nil
}

func (r *memLotRepo) GetByID(id string) (*entity.StockLot, error) {
	return r.s.lotByID(id), nil
}

func (r *memLotRepo) ListByProductFIFO(productID string) ([]*entity.StockLot, error) {
	var out []*entity.StockLot
	for _, lot := range r.s.lots {
		if lot.ProductID == productID {
			out = append(out, lot)
		}
	}
	return out, nil
}

func (r *memLotRepo) ListByProductFIFOForUpdate(productID string) ([]*entity.StockLot, error) {
	return r.ListByProductFIFO(productID)
}

func (r *memLotRepo) ListByDocumentTag(tag string) ([]*entity.StockLot, error) {
	ids := r.s.movementIDsByTag(tag)
	var out []*entity.StockLot
	for _, lot := range r.s.lots {
		if ids[lot.CreatedFromMovementID] {
			out = append(out, lot)
		}
	}
	return out, nil
}

func (r *memLotRepo) AdjustAvailability(lotID string, delta decimal.Decimal) error {
	lot := r.s.lotByID(lotID)
	if lot == nil {
		return fmt.Errorf("lote %s no existe", lotID)
	}
	next := lot.QuantityAvailable.Add(delta)
	if next.LessThan(decimal.Zero) || next.GreaterThan(lot.QuantityInitial) {
		return fmt.Errorf("ajuste de lote %s fuera de rango", lotID)
	}
	lot.QuantityAvailable = next
	return nil
}

// ── movimientos ───────────────────────────────────────────────────────────────

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}

func (r *memMovementRepo) CreateConsumption(c *entity.LotConsumption) error {
	r.s.consumptions = append(r.s.consumptions, c)
	return nil
}

func (r *memMovementRepo) ListByDocumentTag(tag string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.DocumentTag == tag {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListConsumptionsByMovement(movementID string) ([]*entity.LotConsumption, error) {
	var out []*entity.LotConsumption
	for _, c := range r.s.consumptions {
		if c.MovementID == movementID {
			out = append(out, c)
		}
	}
	return out, nil
}

// DeleteByDocumentTag emula la cascada de la BD: borra los movimientos de
// la etiqueta, sus filas de consumo y los lotes creados desde ellos.
func (r *memMovementRepo) DeleteByDocumentTag(tag string) error {
	ids := r.s.movementIDsByTag(tag)

	var movs []*entity.StockMovement
	for _, m := range r.s.movements {
		if !ids[m.ID] {
			movs = append(movs, m)
		}
	}
	r.s.movements = movs

	var cons []*entity.LotConsumption
	for _, c := range r.s.consumptions {
		if !ids[c.MovementID] {
			cons = append(cons, c)
		}
	}
	r.s.consumptions = cons

	var lots []*entity.StockLot
	for _, lot := range r.s.lots {
		if !ids[lot.CreatedFromMovementID] {
			lots = append(lots, lot)
		}
	}
	r.s.lots = lots
	return nil
}

func (r *memMovementRepo) LastPurchaseUnitCost(productID string) (*decimal.Decimal, error) {
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if m.ProductID == productID && m.Kind == entity.MovementKindIn {
			return m.UnitCostRecognized, nil
		}
	}
	return nil, nil
}

// ── cuotas ────────────────────────────────────────────────────────────────────

type memInstallmentRepo struct{ s *memStore }

func (r *memInstallmentRepo) Create(i *entity.Installment) error {
	r.s.installments[i.OrderID] = append(r.s.installments[i.OrderID], i)
	return nil
}

func (r *memInstallmentRepo) Get(orderID string, sequence int) (*entity.Installment, error) {
	for _, inst := range r.s.installments[orderID] {
		if inst.Sequence == sequence {
			return inst, nil
		}
	}
	return nil, nil
}

func (r *memInstallmentRepo) ListByOrder(orderID string) ([]*entity.Installment, error) {
	return r.s.installments[orderID], nil
}

func (r *memInstallmentRepo) DeleteByOrder(orderID string) error {
	delete(r.s.installments, orderID)
	return nil
}

func (r *memInstallmentRepo) AnyPaid(orderID string) (bool, error) {
	for _, inst := range r.s.installments[orderID] {
		if inst.Paid() {
			return true, nil
		}
	}
	return false, nil
}

func (r *memInstallmentRepo) MarkPaid(orderID string, sequence int, paidAt time.Time) error {
	inst, _ := r.Get(orderID, sequence)
	if inst == nil {
		return fmt.Errorf("cuota %d del pedido %s no existe", sequence, orderID)
	}
	inst.PaidAt = &paidAt
	return nil
}

// ── tx runner ─────────────────────────────────────────────────────────────────

// memTxRunner ejecuta la función directamente sobre los repositorios en
// memoria. No simula rollback: los tests que esperan error no inspeccionan
// estado intermedio salvo el que se muta antes del fallo.
type memTxRunner struct{ s *memStore }

func (t *memTxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	instRepo repository.InstallmentRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(
		&memOrderRepo{t.s},
		&memLotRepo{t.s},
		&memMovementRepo{t.s},
		&memInstallmentRepo{t.s},
		&memProductRepo{t.s},
	)
}

var _ orders.TxRunner = (*memTxRunner)(nil)
