package repository

import "github.com/jcastano/gestion-comercial/internal/domain/entity"

// PartnerRepository define el puerto de persistencia para terceros
// (clientes/proveedores). El motor solo consulta existencia y estado activo.
type PartnerRepository interface {
	Create(p *entity.Partner) error
	GetByID(id string) (*entity.Partner, error)
	List(limit, offset int) ([]*entity.Partner, error)
}
