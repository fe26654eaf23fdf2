package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jcastano/gestion-comercial/internal/domain/entity"
	"github.com/jcastano/gestion-comercial/internal/domain/repository"
)

var _ repository.InstallmentRepository = (*InstallmentRepo)(nil)

// InstallmentRepo implementación sobre PostgreSQL (usable con pool o tx).
type InstallmentRepo struct {
	q Querier
}

// NewInstallmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInstallmentRepository(q Querier) *InstallmentRepo {
	return &InstallmentRepo{q: q}
}

// Create persiste una cuota del plan.
func (r *InstallmentRepo) Create(i *entity.Installment) error {
	query := `
		INSERT INTO installments (order_id, sequence, due_date, amount, paid_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		i.OrderID, i.Sequence, i.DueDate, i.Amount, i.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("create installment: %w", err)
	}
	return nil
}

// Get obtiene una cuota por pedido y secuencia; nil si no existe.
func (r *InstallmentRepo) Get(orderID string, sequence int) (*entity.Installment, error) {
	query := `
		SELECT order_id, sequence, due_date, amount, paid_at
		FROM installments WHERE order_id = $1 AND sequence = $2`
	var i entity.Installment
	err := r.q.QueryRow(context.Background(), query, orderID, sequence).Scan(
		&i.OrderID, &i.Sequence, &i.DueDate, &i.Amount, &i.PaidAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get installment: %w", err)
	}
	return &i, nil
}

// ListByOrder lista el plan de cuotas en orden de secuencia.
func (r *InstallmentRepo) ListByOrder(orderID string) ([]*entity.Installment, error) {
	query := `
		SELECT order_id, sequence, due_date, amount, paid_at
		FROM installments WHERE order_id = $1
		ORDER BY sequence`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list installments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Installment
	for rows.Next() {
		var i entity.Installment
		if err := rows.Scan(&i.OrderID, &i.Sequence, &i.DueDate, &i.Amount, &i.PaidAt); err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// DeleteByOrder borra el plan completo del pedido.
func (r *InstallmentRepo) DeleteByOrder(orderID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM installments WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete installments: %w", err)
	}
	return nil
}

// AnyPaid indica si alguna cuota del pedido tiene paid_at no nulo.
func (r *InstallmentRepo) AnyPaid(orderID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM installments WHERE order_id = $1 AND paid_at IS NOT NULL)`
	var paid bool
	if err := r.q.QueryRow(context.Background(), query, orderID).Scan(&paid); err != nil {
		return false, fmt.Errorf("any installment paid: %w", err)
	}
	return paid, nil
}

// MarkPaid marca una cuota como pagada.
func (r *InstallmentRepo) MarkPaid(orderID string, sequence int, paidAt time.Time) error {
	query := `UPDATE installments SET paid_at = $3 WHERE order_id = $1 AND sequence = $2`
	tag, err := r.q.Exec(context.Background(), query, orderID, sequence, paidAt)
	if err != nil {
		return fmt.Errorf("mark installment paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark installment paid: cuota %s/%d inexistente", orderID, sequence)
	}
	return nil
}
