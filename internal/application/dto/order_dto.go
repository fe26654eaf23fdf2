package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de pedido en requests. Precio unitario en cero
// toma el precio de catálogo del producto.
type OrderItemRequest struct {
	ProductID    string          `json:"product_id" validate:"required,uuid"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	UnitDiscount decimal.Decimal `json:"unit_discount"`
}

// InstallmentPlanRequest plan de cuotas pedido: número y primer
// vencimiento, o lista explícita de vencimientos (se usa tal cual,
// truncada a Count).
type InstallmentPlanRequest struct {
	Count        int         `json:"count" validate:"min=0,max=120"`
	FirstDueDate *time.Time  `json:"first_due_date,omitempty"`
	DueDates     []time.Time `json:"due_dates,omitempty"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Kind         string                 `json:"kind" validate:"required,oneof=SALE PURCHASE"`
	PartnerID    string                 `json:"partner_id" validate:"required,uuid"`
	Items        []OrderItemRequest     `json:"items" validate:"required,min=1,dive"`
	FreightTotal decimal.Decimal        `json:"freight_total"`
	Installments InstallmentPlanRequest `json:"installments"`
	Notes        string                 `json:"notes"`
}

// EditOrderRequest body para PUT /api/orders/:id. Punteros nil = no tocar;
// Items nil = edición pura de cabecera (no toca el libro de stock).
type EditOrderRequest struct {
	PartnerID        *string                 `json:"partner_id,omitempty" validate:"omitempty,uuid"`
	FreightTotal     *decimal.Decimal        `json:"freight_total,omitempty"`
	InstallmentCount *int                    `json:"installment_count,omitempty"`
	FirstDueDate     *time.Time              `json:"first_due_date,omitempty"`
	Notes            *string                 `json:"notes,omitempty"`
	Items            []OrderItemRequest      `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	MigrateToFIFO    bool                    `json:"migrate_to_fifo,omitempty"`
	Installments     *InstallmentPlanRequest `json:"installments,omitempty"`
}

// PayInstallmentRequest body para marcar una cuota pagada. PaidAt vacío
// usa la hora del servidor.
type PayInstallmentRequest struct {
	PaidAt *time.Time `json:"paid_at,omitempty"`
}

// InstallmentResponse una cuota del plan.
type InstallmentResponse struct {
	Sequence int             `json:"sequence"`
	DueDate  time.Time       `json:"due_date"`
	Amount   decimal.Decimal `json:"amount"`
	PaidAt   *time.Time      `json:"paid_at,omitempty"`
}

// OrderItemResponse una línea del pedido.
type OrderItemResponse struct {
	ID                  string           `json:"id"`
	ProductID           string           `json:"product_id"`
	Quantity            decimal.Decimal  `json:"quantity"`
	UnitPrice           decimal.Decimal  `json:"unit_price"`
	UnitDiscount        decimal.Decimal  `json:"unit_discount"`
	LineTotal           decimal.Decimal  `json:"line_total"`
	UnitCostRecognized  *decimal.Decimal `json:"unit_cost_recognized,omitempty"`
	TotalCostRecognized *decimal.Decimal `json:"total_cost_recognized,omitempty"`
}

// OrderResponse vista completa del pedido.
type OrderResponse struct {
	ID               string                `json:"id"`
	Kind             string                `json:"kind"`
	PartnerID        string                `json:"partner_id"`
	FreightTotal     decimal.Decimal       `json:"freight_total"`
	InstallmentCount int                   `json:"installment_count"`
	FirstDueDate     *time.Time            `json:"first_due_date,omitempty"`
	TotalGross       decimal.Decimal       `json:"total_gross"`
	TotalDiscount    decimal.Decimal       `json:"total_discount"`
	TotalNet         decimal.Decimal       `json:"total_net"`
	Notes            string                `json:"notes,omitempty"`
	Accounting       string                `json:"accounting"` // fifo | eligible | legacy
	Items            []OrderItemResponse   `json:"items"`
	Installments     []InstallmentResponse `json:"installments"`
}

// StockLotResponse disponibilidad de un lote.
type StockLotResponse struct {
	LotID             string          `json:"lot_id"`
	QuantityInitial   decimal.Decimal `json:"quantity_initial"`
	QuantityAvailable decimal.Decimal `json:"quantity_available"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ProductStockResponse disponibilidad total y por lote (orden FIFO).
type ProductStockResponse struct {
	ProductID      string             `json:"product_id"`
	TotalAvailable decimal.Decimal    `json:"total_available"`
	Lots           []StockLotResponse `json:"lots"`
}
