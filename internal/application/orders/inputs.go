package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemInput es una línea de pedido de entrada (venta o compra).
type ItemInput struct {
	ProductID    string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	UnitDiscount decimal.Decimal
}

// InstallmentPlan describe el plan de cuotas pedido: número de cuotas y
// primer vencimiento, o una lista explícita de vencimientos que se usa tal
// cual (truncada a Count).
type InstallmentPlan struct {
	Count        int
	FirstDueDate *time.Time
	DueDates     []time.Time
}

// CreateOrderInput entrada para crear un pedido nuevo.
type CreateOrderInput struct {
	Kind         string
	PartnerID    string
	Items        []ItemInput
	FreightTotal decimal.Decimal
	Installments InstallmentPlan
	Notes        string
}

// HeaderPatch son los campos de cabecera a actualizar en una edición.
// Los punteros nil significan "no tocar".
type HeaderPatch struct {
	PartnerID        *string
	FreightTotal     *decimal.Decimal
	InstallmentCount *int
	FirstDueDate     *time.Time
	Notes            *string
}

// EditOrderInput entrada para editar un pedido. Items nil significa que la
// lista de ítems no se toca (edición pura de cabecera: el libro de stock
// no se modifica). MigrateToFIFO fuerza el reproceso de ítems aunque la
// lista no venga, exigiendo trazabilidad FIFO completa.
type EditOrderInput struct {
	OrderID       string
	Header        HeaderPatch
	Items         []ItemInput
	MigrateToFIFO bool
	Installments  *InstallmentPlan
}
