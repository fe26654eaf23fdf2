package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jcastano/gestion-comercial/internal/domain/entity"
)

// StockLotRepository define el puerto para los lotes de stock.
// Los lotes nunca se reconstruyen: solo se crea uno por compra y se ajusta
// QuantityAvailable por consumo/restauración, siempre dentro de una tx.
type StockLotRepository interface {
	Create(lot *entity.StockLot) error
	GetByID(id string) (*entity.StockLot, error)
	// ListByProductFIFO devuelve los lotes del producto ordenados por fecha
	// de creación ascendente (el más antiguo primero — FIFO estricto).
	ListByProductFIFO(productID string) ([]*entity.StockLot, error)
	// ListByProductFIFOForUpdate hace lo mismo bloqueando las filas
	// (SELECT FOR UPDATE) para que consumos concurrentes no sobresuscriban.
	ListByProductFIFOForUpdate(productID string) ([]*entity.StockLot, error)
	// ListByDocumentTag devuelve los lotes creados por los movimientos de un
	// documento (para el chequeo de bloqueo por consumo en edición de compras).
	ListByDocumentTag(tag string) ([]*entity.StockLot, error)
	// AdjustAvailability suma delta (positivo o negativo) a QuantityAvailable.
	AdjustAvailability(lotID string, delta decimal.Decimal) error
}
