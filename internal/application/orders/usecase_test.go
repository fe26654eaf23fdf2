package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/gestion-comercial/internal/application/orders"
	"github.com/jcastano/gestion-comercial/internal/domain"
	"github.com/jcastano/gestion-comercial/internal/domain/entity"
	"github.com/jcastano/gestion-comercial/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de escenario
// ──────────────────────────────────────────────────────────────────────────────

const (
	testPartnerID = "partner-1"
	testProductA  = "prod-a"
	testProductB  = "prod-b"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func newEnv(t *testing.T) (*memStore, *orders.UseCase) {
	t.Helper()
	s := newMemStore()
	uc := orders.NewUseCase(
		&memTxRunner{s},
		&memOrderRepo{s},
		&memProductRepo{s},
		&memPartnerRepo{s},
		&memLotRepo{s},
		&memMovementRepo{s},
		&memInstallmentRepo{s},
		logger.Nop(),
	)
	seedPartner(s, testPartnerID, true)
	seedProduct(s, testProductA, 100, 0)
	seedProduct(s, testProductB, 50, 0)
	return s, uc
}

func seedPartner(s *memStore, id string, active bool) {
	s.partners[id] = &entity.Partner{
		ID: id, Kind: entity.PartnerKindBoth, Name: "Tercero " + id, Active: active,
	}
}

func seedProduct(s *memStore, id string, price, avgCost float64) {
	s.products[id] = &entity.Product{
		ID: id, SKU: "SKU-" + id, Name: "Producto " + id,
		Price:       dec(price),
		AverageCost: dec(avgCost),
	}
}

// createPurchase da de alta una compra que crea lotes para productID.
func createPurchase(t *testing.T, uc *orders.UseCase, productID string, qty, unitPrice, freight float64) *entity.Order {
	t.Helper()
	order, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind:      entity.OrderKindPurchase,
		PartnerID: testPartnerID,
		Items: []orders.ItemInput{
			{ProductID: productID, Quantity: dec(qty), UnitPrice: dec(unitPrice)},
		},
		FreightTotal: dec(freight),
	})
	require.NoError(t, err)
	return order
}

func availableOf(t *testing.T, s *memStore, productID string) decimal.Decimal {
	t.Helper()
	total := decimal.Zero
	for _, lot := range s.lots {
		if lot.ProductID == productID {
			total = total.Add(lot.QuantityAvailable)
		}
	}
	return total
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrder — compras
// ──────────────────────────────────────────────────────────────────────────────

// Una compra crea un movimiento IN y un lote por línea, con el flete
// prorrateado por cantidad incluido en el costo unitario del lote.
func TestCreateOrder_CompraCreaLotesConFlete(t *testing.T) {
	s, uc := newEnv(t)

	order, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind:      entity.OrderKindPurchase,
		PartnerID: testPartnerID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(1), UnitPrice: dec(100)},
			{ProductID: testProductB, Quantity: dec(2), UnitPrice: dec(50)},
		},
		FreightTotal: dec(10),
		Installments: orders.InstallmentPlan{Count: 3},
	})
	require.NoError(t, err)

	require.Len(t, s.lots, 2, "un lote por línea de compra")
	require.Len(t, s.movements, 2, "un movimiento IN por línea")

	// Flete 10 sobre cantidades [1, 2]: porciones 3.33 y 6.67.
	// Lote A: (100 + 3.33) / 1 = 103.33; lote B: (100 + 6.67) / 2 = 53.335.
	assert.True(t, s.lots[0].UnitCost.Equal(dec(103.33)),
		"costo del lote A, flete incluido: %s", s.lots[0].UnitCost)
	assert.True(t, s.lots[1].UnitCost.Equal(dec(106.67).Div(dec(2))),
		"costo del lote B, flete incluido: %s", s.lots[1].UnitCost)

	assert.True(t, order.TotalGross.Equal(dec(200)))
	assert.True(t, order.TotalNet.Equal(dec(200)))

	// Cuotas: (200 + 10) / 3 = 70.00 cada una.
	insts := s.installments[order.ID]
	require.Len(t, insts, 3)
	for i, inst := range insts {
		assert.Equal(t, i+1, inst.Sequence)
		assert.True(t, inst.Amount.Equal(dec(70)))
	}
}

// Compra de contado (count 0): no se genera plan de cuotas.
func TestCreateOrder_SinCuotas(t *testing.T) {
	s, uc := newEnv(t)

	order := createPurchase(t, uc, testProductA, 5, 10, 0)
	assert.Empty(t, s.installments[order.ID])
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrder — ventas
// ──────────────────────────────────────────────────────────────────────────────

// Una venta con lotes suficientes consume FIFO: decrementa el disponible,
// registra filas de consumo y reconoce el costo ponderado real.
func TestCreateOrder_VentaConsumeFIFO(t *testing.T) {
	s, uc := newEnv(t)
	createPurchase(t, uc, testProductA, 10, 5, 0)
	createPurchase(t, uc, testProductA, 10, 8, 0)

	sale, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind:      entity.OrderKindSale,
		PartnerID: testPartnerID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(14), UnitPrice: dec(20)},
		},
	})
	require.NoError(t, err)

	assert.True(t, availableOf(t, s, testProductA).Equal(dec(6)), "20 - 14 = 6 disponibles")
	assert.True(t, s.lots[0].QuantityAvailable.IsZero(), "el lote más antiguo se agota primero")
	assert.True(t, s.lots[1].QuantityAvailable.Equal(dec(6)))

	items := s.items[sale.ID]
	require.Len(t, items, 1)
	require.NotNil(t, items[0].TotalCostRecognized)
	assert.True(t, items[0].TotalCostRecognized.Equal(dec(82)), "10×5 + 4×8 = 82")

	accounting, err := uc.ClassifyOrder(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderAccountingFIFO, accounting)
}

// Sin lotes, la venta cae al costo promedio del producto (modo legacy) y
// aun así reconoce un costo no nulo en el ítem y el movimiento.
func TestCreateOrder_VentaSinLotesCaeALegacy(t *testing.T) {
	s, uc := newEnv(t)
	seedProduct(s, testProductA, 100, 7.5)

	sale, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind:      entity.OrderKindSale,
		PartnerID: testPartnerID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(4), UnitPrice: dec(100)},
		},
	})
	require.NoError(t, err)

	items := s.items[sale.ID]
	require.Len(t, items, 1)
	require.NotNil(t, items[0].UnitCostRecognized)
	assert.True(t, items[0].UnitCostRecognized.Equal(dec(7.5)))
	assert.True(t, items[0].TotalCostRecognized.Equal(dec(30)))
	assert.Empty(t, s.consumptions, "legacy no toca lotes")

	accounting, err := uc.ClassifyOrder(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderAccountingLegacy, accounting)
}

// Sin promedio histórico, el respaldo legacy usa el costo de la última
// compra del producto.
func TestCreateOrder_LegacyUsaUltimaCompra(t *testing.T) {
	s, uc := newEnv(t)
	// La compra crea un lote, pero la venta pide más de lo disponible:
	// sin cobertura completa cae a legacy, con el costo de esa compra.
	createPurchase(t, uc, testProductA, 2, 9, 0)

	sale, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind:      entity.OrderKindSale,
		PartnerID: testPartnerID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(5), UnitPrice: dec(20)},
		},
	})
	require.NoError(t, err)

	items := s.items[sale.ID]
	require.NotNil(t, items[0].UnitCostRecognized)
	assert.True(t, items[0].UnitCostRecognized.Equal(dec(9)),
		"el costo legacy viene de la última compra")
	assert.True(t, availableOf(t, s, testProductA).Equal(dec(2)),
		"legacy no consume los lotes existentes")
}

// Precio unitario en cero toma el precio de catálogo del producto.
func TestCreateOrder_PrecioCeroTomaCatalogo(t *testing.T) {
	s, uc := newEnv(t)
	seedProduct(s, testProductA, 100, 5)

	sale, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind:      entity.OrderKindSale,
		PartnerID: testPartnerID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(2)},
		},
	})
	require.NoError(t, err)
	assert.True(t, sale.TotalGross.Equal(dec(200)), "2 × precio de catálogo 100")
}

func TestCreateOrder_EntradasInvalidas(t *testing.T) {
	_, uc := newEnv(t)
	ctx := context.Background()

	_, err := uc.CreateOrder(ctx, orders.CreateOrderInput{
		Kind: "TRANSFER", PartnerID: testPartnerID,
		Items: []orders.ItemInput{{ProductID: testProductA, Quantity: dec(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo de pedido desconocido")

	_, err = uc.CreateOrder(ctx, orders.CreateOrderInput{
		Kind: entity.OrderKindSale, PartnerID: testPartnerID,
		Items:        []orders.ItemInput{{ProductID: testProductA, Quantity: dec(1)}},
		FreightTotal: dec(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "flete negativo")

	_, err = uc.CreateOrder(ctx, orders.CreateOrderInput{
		Kind: entity.OrderKindSale, PartnerID: testPartnerID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin ítems")
}

func TestCreateOrder_TerceroInactivo(t *testing.T) {
	s, uc := newEnv(t)
	seedPartner(s, "inactivo", false)

	_, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind: entity.OrderKindSale, PartnerID: "inactivo",
		Items: []orders.ItemInput{{ProductID: testProductA, Quantity: dec(1), UnitPrice: dec(10)}},
	})
	assert.ErrorIs(t, err, domain.ErrInactivePartner)
}

// ──────────────────────────────────────────────────────────────────────────────
// EditOrder — reproceso restaurar-y-reconstruir
// ──────────────────────────────────────────────────────────────────────────────

// Editar una venta restaura primero lo consumido y reconstruye después:
// el disponible final refleja solo el consumo nuevo, sin doble descuento.
func TestEditOrder_VentaRestauraYReconstruye(t *testing.T) {
	s, uc := newEnv(t)
	createPurchase(t, uc, testProductA, 20, 5, 0)

	sale, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind:      entity.OrderKindSale,
		PartnerID: testPartnerID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(14), UnitPrice: dec(20)},
		},
	})
	require.NoError(t, err)
	require.True(t, availableOf(t, s, testProductA).Equal(dec(6)))

	err = uc.EditOrder(context.Background(), orders.EditOrderInput{
		OrderID: sale.ID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(5), UnitPrice: dec(20)},
		},
	})
	require.NoError(t, err)

	assert.True(t, availableOf(t, s, testProductA).Equal(dec(15)),
		"20 - 5 = 15: el consumo anterior se restauró por completo")

	items := s.items[sale.ID]
	require.Len(t, items, 1)
	assert.True(t, items[0].Quantity.Equal(dec(5)))

	order := s.orders[sale.ID]
	assert.True(t, order.TotalNet.Equal(dec(100)), "5 × 20 = 100")
}

// Reprocesar con los mismos ítems es idempotente en stock y totales.
func TestEditOrder_ReprocesoIdempotente(t *testing.T) {
	s, uc := newEnv(t)
	createPurchase(t, uc, testProductA, 20, 5, 0)

	items := []orders.ItemInput{
		{ProductID: testProductA, Quantity: dec(8), UnitPrice: dec(20)},
	}
	sale, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind: entity.OrderKindSale, PartnerID: testPartnerID, Items: items,
	})
	require.NoError(t, err)
	totalBefore := s.orders[sale.ID].TotalNet

	for i := 0; i < 3; i++ {
		err = uc.EditOrder(context.Background(), orders.EditOrderInput{OrderID: sale.ID, Items: items})
		require.NoError(t, err)
	}

	assert.True(t, availableOf(t, s, testProductA).Equal(dec(12)), "20 - 8, sin importar cuántos reprocesos")
	assert.True(t, s.orders[sale.ID].TotalNet.Equal(totalBefore))
	assert.Len(t, s.items[sale.ID], 1)
}

// Una edición sin ítems es un cambio puro de cabecera: el libro de stock
// no se toca (mismos movimientos, mismo disponible).
func TestEditOrder_SoloCabeceraNoTocaStock(t *testing.T) {
	s, uc := newEnv(t)
	createPurchase(t, uc, testProductA, 20, 5, 0)

	sale, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind:      entity.OrderKindSale,
		PartnerID: testPartnerID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(4), UnitPrice: dec(20)},
		},
	})
	require.NoError(t, err)

	movsBefore := len(s.movements)
	saleMovID := s.movements[movsBefore-1].ID
	notes := "entregar en bodega norte"

	err = uc.EditOrder(context.Background(), orders.EditOrderInput{
		OrderID: sale.ID,
		Header:  orders.HeaderPatch{Notes: &notes},
	})
	require.NoError(t, err)

	assert.Len(t, s.movements, movsBefore, "ningún movimiento nuevo ni borrado")
	assert.Equal(t, saleMovID, s.movements[movsBefore-1].ID, "la salida original sigue intacta")
	assert.True(t, availableOf(t, s, testProductA).Equal(dec(16)))
	assert.Equal(t, notes, s.orders[sale.ID].Notes)
}

// Editar los ítems de una compra cuyos lotes ya surtieron ventas se
// aborta: reconstruir esos lotes corrompería la historia de costos.
func TestEditOrder_CompraBloqueadaPorConsumo(t *testing.T) {
	s, uc := newEnv(t)
	purchase := createPurchase(t, uc, testProductA, 10, 5, 0)

	_, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind:      entity.OrderKindSale,
		PartnerID: testPartnerID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(3), UnitPrice: dec(20)},
		},
	})
	require.NoError(t, err)

	err = uc.EditOrder(context.Background(), orders.EditOrderInput{
		OrderID: purchase.ID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(50), UnitPrice: dec(5)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrLockedByConsumption)

	require.Len(t, s.lots, 1)
	assert.True(t, s.lots[0].QuantityAvailable.Equal(dec(7)),
		"el lote queda exactamente como estaba")
}

// Compra sin consumo aguas abajo sí se puede reprocesar: los lotes viejos
// se reemplazan por los nuevos.
func TestEditOrder_CompraSinConsumoSeReprocesa(t *testing.T) {
	s, uc := newEnv(t)
	purchase := createPurchase(t, uc, testProductA, 10, 5, 0)

	err := uc.EditOrder(context.Background(), orders.EditOrderInput{
		OrderID: purchase.ID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(25), UnitPrice: dec(4)},
		},
	})
	require.NoError(t, err)

	require.Len(t, s.lots, 1, "el lote anterior se purgó con su movimiento")
	assert.True(t, s.lots[0].QuantityInitial.Equal(dec(25)))
	assert.True(t, s.lots[0].UnitCost.Equal(dec(4)))
}

func TestEditOrder_PedidoInexistente(t *testing.T) {
	_, uc := newEnv(t)
	err := uc.EditOrder(context.Background(), orders.EditOrderInput{OrderID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Migración a FIFO
// ──────────────────────────────────────────────────────────────────────────────

// Una venta legacy se migra a FIFO reprocesando sus ítems actuales contra
// los lotes que existan al momento de la migración.
func TestEditOrder_MigracionLegacyAFIFO(t *testing.T) {
	s, uc := newEnv(t)
	seedProduct(s, testProductA, 100, 6)

	// Venta sin lotes: nace legacy.
	sale, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind:      entity.OrderKindSale,
		PartnerID: testPartnerID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(5), UnitPrice: dec(100)},
		},
	})
	require.NoError(t, err)
	accounting, _ := uc.ClassifyOrder(context.Background(), sale.ID)
	require.Equal(t, entity.OrderAccountingLegacy, accounting)

	// Llegan lotes y se migra.
	createPurchase(t, uc, testProductA, 10, 5, 0)
	err = uc.EditOrder(context.Background(), orders.EditOrderInput{
		OrderID:       sale.ID,
		MigrateToFIFO: true,
	})
	require.NoError(t, err)

	accounting, err = uc.ClassifyOrder(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderAccountingFIFO, accounting)
	assert.True(t, availableOf(t, s, testProductA).Equal(dec(5)), "la migración consumió 5 del lote")

	items := s.items[sale.ID]
	require.Len(t, items, 1)
	require.NotNil(t, items[0].UnitCostRecognized)
	assert.True(t, items[0].UnitCostRecognized.Equal(dec(5)),
		"tras migrar, el costo reconocido sale de los lotes, no del promedio")
}

// La migración exige cobertura total: sin lotes suficientes aborta con
// stock insuficiente en lugar de caer a legacy.
func TestEditOrder_MigracionSinCoberturaAborta(t *testing.T) {
	s, uc := newEnv(t)
	seedProduct(s, testProductA, 100, 6)

	sale, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind:      entity.OrderKindSale,
		PartnerID: testPartnerID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(5), UnitPrice: dec(100)},
		},
	})
	require.NoError(t, err)
	createPurchase(t, uc, testProductA, 2, 5, 0)

	err = uc.EditOrder(context.Background(), orders.EditOrderInput{
		OrderID:       sale.ID,
		MigrateToFIFO: true,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Plan de cuotas
// ──────────────────────────────────────────────────────────────────────────────

// Cambiar el flete en cabecera reconstruye el plan con el nuevo total.
func TestEditOrder_CambioDeFleteReconstruyeCuotas(t *testing.T) {
	s, uc := newEnv(t)

	order, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind:      entity.OrderKindPurchase,
		PartnerID: testPartnerID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(2), UnitPrice: dec(100)},
		},
		Installments: orders.InstallmentPlan{Count: 2},
	})
	require.NoError(t, err)
	require.True(t, s.installments[order.ID][0].Amount.Equal(dec(100)), "(200+0)/2")

	freight := dec(20)
	err = uc.EditOrder(context.Background(), orders.EditOrderInput{
		OrderID: order.ID,
		Header:  orders.HeaderPatch{FreightTotal: &freight},
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(2), UnitPrice: dec(100)},
		},
	})
	require.NoError(t, err)

	insts := s.installments[order.ID]
	require.Len(t, insts, 2)
	assert.True(t, insts[0].Amount.Equal(dec(110)), "(200+20)/2 = 110")
}

// Cualquier cuota pagada congela el plan completo: el reproceso recalcula
// totales pero deja las cuotas intactas.
func TestEditOrder_CuotaPagadaCongelaPlan(t *testing.T) {
	s, uc := newEnv(t)

	order, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind:      entity.OrderKindPurchase,
		PartnerID: testPartnerID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(2), UnitPrice: dec(100)},
		},
		Installments: orders.InstallmentPlan{Count: 2},
	})
	require.NoError(t, err)

	require.NoError(t, uc.PayInstallment(context.Background(), order.ID, 1, time.Now()))

	freight := dec(50)
	err = uc.EditOrder(context.Background(), orders.EditOrderInput{
		OrderID: order.ID,
		Header:  orders.HeaderPatch{FreightTotal: &freight},
	})
	require.NoError(t, err)

	insts := s.installments[order.ID]
	require.Len(t, insts, 2, "el plan no se regeneró")
	assert.True(t, insts[0].Amount.Equal(dec(100)), "el monto original se conserva")
	assert.NotNil(t, insts[0].PaidAt)
	assert.True(t, s.orders[order.ID].FreightTotal.Equal(dec(50)),
		"la cabecera sí se actualizó")
}

func TestPayInstallment(t *testing.T) {
	_, uc := newEnv(t)

	order, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind:      entity.OrderKindPurchase,
		PartnerID: testPartnerID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(1), UnitPrice: dec(100)},
		},
		Installments: orders.InstallmentPlan{Count: 2},
	})
	require.NoError(t, err)

	require.NoError(t, uc.PayInstallment(context.Background(), order.ID, 1, time.Now()))

	err = uc.PayInstallment(context.Background(), order.ID, 1, time.Now())
	assert.ErrorIs(t, err, domain.ErrInstallmentPaid, "pagar dos veces la misma cuota")

	err = uc.PayInstallment(context.Background(), order.ID, 99, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound, "cuota inexistente")
}

// Con fechas explícitas el plan las usa tal cual, truncadas al count.
func TestCreateOrder_CuotasConFechasExplicitas(t *testing.T) {
	s, uc := newEnv(t)
	due := []time.Time{
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.April, 5, 0, 0, 0, 0, time.UTC),
	}

	order, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind:      entity.OrderKindPurchase,
		PartnerID: testPartnerID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(1), UnitPrice: dec(100)},
		},
		Installments: orders.InstallmentPlan{Count: 2, DueDates: due},
	})
	require.NoError(t, err)

	insts := s.installments[order.ID]
	require.Len(t, insts, 2)
	assert.Equal(t, due[0], insts[0].DueDate)
	assert.Equal(t, due[1], insts[1].DueDate)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteOrder
// ──────────────────────────────────────────────────────────────────────────────

// Borrar una venta restaura el stock consumido y purga todo rastro del
// pedido: movimientos, ítems, cuotas y cabecera.
func TestDeleteOrder_VentaRestauraStock(t *testing.T) {
	s, uc := newEnv(t)
	createPurchase(t, uc, testProductA, 10, 5, 0)

	sale, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind:      entity.OrderKindSale,
		PartnerID: testPartnerID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(6), UnitPrice: dec(20)},
		},
		Installments: orders.InstallmentPlan{Count: 2},
	})
	require.NoError(t, err)
	require.True(t, availableOf(t, s, testProductA).Equal(dec(4)))

	require.NoError(t, uc.DeleteOrder(context.Background(), sale.ID))

	assert.True(t, availableOf(t, s, testProductA).Equal(dec(10)), "todo lo consumido volvió al lote")
	assert.Nil(t, s.orders[sale.ID])
	assert.Empty(t, s.items[sale.ID])
	assert.Empty(t, s.installments[sale.ID])
	for _, m := range s.movements {
		assert.NotEqual(t, entity.OrderDocumentTag(sale.ID), m.DocumentTag)
	}
}

// Una compra cuyos lotes ya surtieron ventas no puede borrarse.
func TestDeleteOrder_CompraConConsumoBloqueada(t *testing.T) {
	s, uc := newEnv(t)
	purchase := createPurchase(t, uc, testProductA, 10, 5, 0)
	_, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind:      entity.OrderKindSale,
		PartnerID: testPartnerID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(1), UnitPrice: dec(20)},
		},
	})
	require.NoError(t, err)

	err = uc.DeleteOrder(context.Background(), purchase.ID)
	assert.ErrorIs(t, err, domain.ErrLockedByConsumption)
	assert.NotNil(t, s.orders[purchase.ID], "el pedido sigue existiendo")
}

// Un pedido con cuotas pagadas no se borra: la historia conciliada manda.
func TestDeleteOrder_ConCuotaPagadaRechazado(t *testing.T) {
	_, uc := newEnv(t)
	order, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind:      entity.OrderKindPurchase,
		PartnerID: testPartnerID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(1), UnitPrice: dec(100)},
		},
		Installments: orders.InstallmentPlan{Count: 1},
	})
	require.NoError(t, err)
	require.NoError(t, uc.PayInstallment(context.Background(), order.ID, 1, time.Now()))

	err = uc.DeleteOrder(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrder_VistaCompleta(t *testing.T) {
	_, uc := newEnv(t)
	order, err := uc.CreateOrder(context.Background(), orders.CreateOrderInput{
		Kind:      entity.OrderKindPurchase,
		PartnerID: testPartnerID,
		Items: []orders.ItemInput{
			{ProductID: testProductA, Quantity: dec(3), UnitPrice: dec(10)},
		},
		Installments: orders.InstallmentPlan{Count: 2},
	})
	require.NoError(t, err)

	view, err := uc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, view.Order.ID)
	assert.Len(t, view.Items, 1)
	assert.Len(t, view.Installments, 2)
	assert.Equal(t, entity.OrderAccountingFIFO, view.Accounting,
		"la compra creó su entrada: clasifica fifo")

	_, err = uc.GetOrder(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un pedido sin movimientos (importado de un sistema anterior) clasifica
// eligible si hay cobertura de lotes, legacy si no.
func TestClassifyOrder_PedidoImportadoSinMovimientos(t *testing.T) {
	s, uc := newEnv(t)
	createPurchase(t, uc, testProductA, 10, 5, 0)

	imported := &entity.Order{ID: "import-1", Kind: entity.OrderKindSale, PartnerID: testPartnerID}
	s.orders[imported.ID] = imported
	s.items[imported.ID] = []*entity.OrderItem{
		{ID: "it-1", OrderID: imported.ID, ProductID: testProductA, Quantity: dec(8), UnitPrice: dec(20)},
	}

	accounting, err := uc.ClassifyOrder(context.Background(), imported.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderAccountingEligible, accounting, "8 ≤ 10 disponibles")

	s.items[imported.ID][0].Quantity = dec(11)
	accounting, err = uc.ClassifyOrder(context.Background(), imported.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderAccountingLegacy, accounting, "11 > 10 disponibles")
}

func TestGetProductStock(t *testing.T) {
	_, uc := newEnv(t)
	createPurchase(t, uc, testProductA, 10, 5, 0)
	createPurchase(t, uc, testProductA, 4, 6, 0)

	stock, err := uc.GetProductStock(context.Background(), testProductA)
	require.NoError(t, err)
	assert.True(t, stock.TotalAvailable.Equal(dec(14)))
	assert.Len(t, stock.Lots, 2)

	_, err = uc.GetProductStock(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
