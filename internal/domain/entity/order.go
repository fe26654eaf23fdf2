package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pedido.
const (
	OrderKindSale     = "SALE"     // venta: consume lotes (FIFO)
	OrderKindPurchase = "PURCHASE" // compra: crea lotes
)

// Clasificación contable de un pedido (solo lectura, derivada).
const (
	OrderAccountingFIFO     = "fifo"     // toda salida con trazabilidad de lotes completa
	OrderAccountingEligible = "eligible" // sin movimientos aún y con cobertura de lotes suficiente
	OrderAccountingLegacy   = "legacy"   // al menos una salida a costo promedio (sin lotes)
)

// Order representa la cabecera de un pedido de venta o compra.
// Los totales se recalculan desde los ítems en cada reproceso.
type Order struct {
	ID               string
	Kind             string
	PartnerID        string
	FreightTotal     decimal.Decimal
	InstallmentCount int
	FirstDueDate     *time.Time
	TotalGross       decimal.Decimal
	TotalDiscount    decimal.Decimal
	TotalNet         decimal.Decimal
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OrderItem representa una línea de pedido. En ventas, UnitCostRecognized y
// TotalCostRecognized los llena el resolutor de costos (FIFO o legacy);
// en compras quedan nulos porque el costo es el propio precio de compra.
type OrderItem struct {
	ID                  string
	OrderID             string
	ProductID           string
	Quantity            decimal.Decimal
	UnitPrice           decimal.Decimal
	UnitDiscount        decimal.Decimal
	LineTotal           decimal.Decimal
	UnitCostRecognized  *decimal.Decimal
	TotalCostRecognized *decimal.Decimal
}
