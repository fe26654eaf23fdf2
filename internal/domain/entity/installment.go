package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment representa una cuota (letra/pagaré) del plan de pagos de un
// pedido. Cuando cualquier cuota del pedido tiene PaidAt no nulo, el plan
// completo se vuelve inmutable: no se regenera para proteger pagos
// conciliados.
type Installment struct {
	OrderID  string
	Sequence int
	DueDate  time.Time
	Amount   decimal.Decimal
	PaidAt   *time.Time
}

// Paid indica si la cuota ya fue pagada.
func (i *Installment) Paid() bool {
	return i.PaidAt != nil
}
