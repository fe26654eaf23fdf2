package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta mínima de producto en catálogo.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,max=64"`
	Name        string          `json:"name" validate:"required,max=255"`
	Price       decimal.Decimal `json:"price"`
	AverageCost decimal.Decimal `json:"average_cost"`
}

type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	AverageCost decimal.Decimal `json:"average_cost"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreatePartnerRequest alta de tercero (cliente, proveedor o ambos).
type CreatePartnerRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	TaxID string `json:"tax_id" validate:"max=32"`
	Kind  string `json:"kind" validate:"required,oneof=CLIENT SUPPLIER BOTH"`
	Email string `json:"email" validate:"omitempty,email"`
}

type PartnerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id,omitempty"`
	Kind      string    `json:"kind"`
	Email     string    `json:"email,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
