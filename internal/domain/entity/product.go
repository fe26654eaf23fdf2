package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// AverageCost es el costo promedio ponderado histórico; se usa como
// respaldo (modo legacy) cuando el producto no tiene historial de lotes.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta de catálogo
	AverageCost decimal.Decimal // costo promedio histórico (puede ser 0)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
