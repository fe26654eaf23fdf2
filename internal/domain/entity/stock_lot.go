package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLot representa un lote de stock creado por una compra. Se crea
// exactamente una vez por movimiento de entrada y nunca se reconstruye:
// solo QuantityAvailable se ajusta por consumo/restauración. Un lote con
// QuantityAvailable < QuantityInitial es historia inmutable (ya fue
// consumido parcialmente).
type StockLot struct {
	ID                    string
	ProductID             string
	CreatedFromMovementID string
	QuantityInitial       decimal.Decimal
	QuantityAvailable     decimal.Decimal
	UnitCost              decimal.Decimal // costo unitario de compra, flete prorrateado incluido
	CreatedAt             time.Time
}

// FullyAvailable indica que el lote no ha sido consumido por ninguna venta.
func (l *StockLot) FullyAvailable() bool {
	return l.QuantityAvailable.Equal(l.QuantityInitial)
}
