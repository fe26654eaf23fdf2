package repository

import "github.com/jcastano/gestion-comercial/internal/domain/entity"

// OrderRepository define el puerto de persistencia para pedidos e ítems.
// Los ítems se reconstruyen completos en cada reproceso (borrar + reinsertar).
type OrderRepository interface {
	Create(o *entity.Order) error
	Update(o *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// GetByIDForUpdate bloquea la fila del pedido (SELECT FOR UPDATE) para
	// serializar ediciones concurrentes del mismo pedido.
	GetByIDForUpdate(id string) (*entity.Order, error)
	Delete(id string) error
	CreateItem(item *entity.OrderItem) error
	ListItems(orderID string) ([]*entity.OrderItem, error)
	DeleteItems(orderID string) error
}
