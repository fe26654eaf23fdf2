package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jcastano/gestion-comercial/internal/domain/entity"
)

// StockMovementRepository define el puerto para el diario de movimientos y
// sus filas de consumo de lote. El borrado por etiqueta de documento es el
// prerrequisito del reproceso de un pedido; la BD cascada las filas de
// consumo y, en compras, los lotes originados.
type StockMovementRepository interface {
	Create(m *entity.StockMovement) error
	CreateConsumption(c *entity.LotConsumption) error
	ListByDocumentTag(tag string) ([]*entity.StockMovement, error)
	ListConsumptionsByMovement(movementID string) ([]*entity.LotConsumption, error)
	DeleteByDocumentTag(tag string) error
	// LastPurchaseUnitCost devuelve el costo unitario de la entrada más
	// reciente del producto, o nil si nunca se ha comprado (respaldo legacy).
	LastPurchaseUnitCost(productID string) (*decimal.Decimal, error)
}
