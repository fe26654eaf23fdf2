package repository

import "github.com/jcastano/gestion-comercial/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos.
// El motor lo usa para verificar existencia, precio de catálogo y costo
// promedio legacy.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
}
