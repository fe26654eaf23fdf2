package entity

import "time"

// Tipos de tercero (cliente, proveedor o ambos).
const (
	PartnerKindClient   = "CLIENT"
	PartnerKindSupplier = "SUPPLIER"
	PartnerKindBoth     = "BOTH"
)

// Partner representa un tercero de la empresa: cliente en ventas,
// proveedor en compras. El motor solo consulta existencia y estado activo.
type Partner struct {
	ID        string
	Kind      string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
