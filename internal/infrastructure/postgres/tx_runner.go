package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcastano/gestion-comercial/internal/application/orders"
	"github.com/jcastano/gestion-comercial/internal/domain/repository"
)

// Ensure TxRunner implements orders.TxRunner.
var _ orders.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Es la
// única entrada al trabajo transaccional del motor: los repositorios se
// construyen contra la tx, así ningún paso del reproceso puede escapar de
// ella.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	instRepo repository.InstallmentRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewOrderRepository(tx)
	lotRepo := NewStockLotRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	instRepo := NewInstallmentRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(orderRepo, lotRepo, movRepo, instRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
