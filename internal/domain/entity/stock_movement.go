package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de stock.
const (
	MovementKindIn  = "IN"  // entrada (compra)
	MovementKindOut = "OUT" // salida (venta)
)

// OrderDocumentTag devuelve la etiqueta de documento que liga un conjunto
// de movimientos a un pedido ("ORDER:<id>"). Borrar por etiqueta es el
// prerrequisito del reproceso de un pedido.
func OrderDocumentTag(orderID string) string {
	return fmt.Sprintf("ORDER:%s", orderID)
}

// StockMovement es una entrada del diario de movimientos (append-only).
// UnitCostRecognized/TotalCostRecognized es el costo reconocido del
// movimiento para reportes de margen/COGS; nunca es nulo en salidas,
// incluso en modo legacy.
type StockMovement struct {
	ID                  string
	ProductID           string
	Kind                string
	Quantity            decimal.Decimal
	DocumentTag         string
	UnitCostRecognized  *decimal.Decimal
	TotalCostRecognized *decimal.Decimal
	CreatedAt           time.Time
}

// LotConsumption liga un movimiento de salida con los lotes que lo
// surtieron. Una salida puede abarcar varios lotes (FIFO); la suma de
// QuantityConsumed de sus filas es igual a la cantidad del movimiento.
type LotConsumption struct {
	MovementID       string
	LotID            string
	QuantityConsumed decimal.Decimal
	UnitCost         decimal.Decimal
	TotalCost        decimal.Decimal
}
