package repository

import (
	"time"

	"github.com/jcastano/gestion-comercial/internal/domain/entity"
)

// InstallmentRepository define el puerto para el plan de cuotas de un pedido.
type InstallmentRepository interface {
	Create(i *entity.Installment) error
	Get(orderID string, sequence int) (*entity.Installment, error)
	ListByOrder(orderID string) ([]*entity.Installment, error)
	DeleteByOrder(orderID string) error
	// AnyPaid indica si alguna cuota del pedido ya fue pagada; en ese caso
	// el plan completo es inmutable.
	AnyPaid(orderID string) (bool, error)
	MarkPaid(orderID string, sequence int, paidAt time.Time) error
}
