package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jcastano/gestion-comercial/internal/domain/entity"
	"github.com/jcastano/gestion-comercial/internal/domain/repository"
)

var _ repository.StockLotRepository = (*StockLotRepo)(nil)

// StockLotRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockLotRepo struct {
	q Querier
}

// NewStockLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLotRepository(q Querier) *StockLotRepo {
	return &StockLotRepo{q: q}
}

const lotColumns = `id, product_id, created_from_movement_id, quantity_initial, quantity_available, unit_cost, created_at`

func scanLot(row pgx.Row) (*entity.StockLot, error) {
	var l entity.StockLot
	err := row.Scan(&l.ID, &l.ProductID, &l.CreatedFromMovementID,
		&l.QuantityInitial, &l.QuantityAvailable, &l.UnitCost, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persiste un lote nuevo (uno por movimiento de entrada).
func (r *StockLotRepo) Create(lot *entity.StockLot) error {
	query := `
		INSERT INTO stock_lots (id, product_id, created_from_movement_id, quantity_initial, quantity_available, unit_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.ProductID, lot.CreatedFromMovementID,
		lot.QuantityInitial, lot.QuantityAvailable, lot.UnitCost, lot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID; nil si no existe.
func (r *StockLotRepo) GetByID(id string) (*entity.StockLot, error) {
	query := `SELECT ` + lotColumns + ` FROM stock_lots WHERE id = $1`
	lot, err := scanLot(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock lot: %w", err)
	}
	return lot, nil
}

// ListByProductFIFO devuelve los lotes del producto del más antiguo al más
// reciente (FIFO estricto).
func (r *StockLotRepo) ListByProductFIFO(productID string) ([]*entity.StockLot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM stock_lots WHERE product_id = $1
		ORDER BY created_at, id`
	return r.listLots(query, productID)
}

// ListByProductFIFOForUpdate hace lo mismo bloqueando las filas
// (SELECT FOR UPDATE) para evitar sobresuscripción por consumos concurrentes:
// la segunda transacción bloquea hasta el commit de la primera u observa la
// cantidad ya reducida.
func (r *StockLotRepo) ListByProductFIFOForUpdate(productID string) ([]*entity.StockLot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM stock_lots WHERE product_id = $1
		ORDER BY created_at, id
		FOR UPDATE`
	return r.listLots(query, productID)
}

// ListByDocumentTag devuelve los lotes creados por los movimientos de un
// documento (vía created_from_movement_id).
func (r *StockLotRepo) ListByDocumentTag(tag string) ([]*entity.StockLot, error) {
	query := `
		SELECT l.id, l.product_id, l.created_from_movement_id, l.quantity_initial, l.quantity_available, l.unit_cost, l.created_at
		FROM stock_lots l
		JOIN stock_movements m ON m.id = l.created_from_movement_id
		WHERE m.document_tag = $1
		ORDER BY l.created_at, l.id`
	return r.listLots(query, tag)
}

// AdjustAvailability suma delta a quantity_available validando en BD que el
// resultado quede en [0, quantity_initial].
func (r *StockLotRepo) AdjustAvailability(lotID string, delta decimal.Decimal) error {
	query := `
		UPDATE stock_lots
		SET quantity_available = quantity_available + $2
		WHERE id = $1
		  AND quantity_available + $2 >= 0
		  AND quantity_available + $2 <= quantity_initial`
	tag, err := r.q.Exec(context.Background(), query, lotID, delta)
	if err != nil {
		return fmt.Errorf("adjust lot availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("adjust lot availability: lote %s fuera de rango o inexistente", lotID)
	}
	return nil
}

func (r *StockLotRepo) listLots(query string, arg any) ([]*entity.StockLot, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list stock lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock lot: %w", err)
		}
		list = append(list, lot)
	}
	return list, rows.Err()
}
