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

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento del diario.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, kind, quantity, document_tag, unit_cost_recognized, total_cost_recognized, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.Kind, m.Quantity, m.DocumentTag,
		m.UnitCostRecognized, m.TotalCostRecognized, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// CreateConsumption persiste una fila de consumo de lote para una salida.
func (r *StockMovementRepo) CreateConsumption(c *entity.LotConsumption) error {
	query := `
		INSERT INTO lot_consumptions (movement_id, lot_id, quantity_consumed, unit_cost, total_cost)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		c.MovementID, c.LotID, c.QuantityConsumed, c.UnitCost, c.TotalCost,
	)
	if err != nil {
		return fmt.Errorf("create lot consumption: %w", err)
	}
	return nil
}

// ListByDocumentTag lista los movimientos etiquetados a un documento.
func (r *StockMovementRepo) ListByDocumentTag(tag string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, kind, quantity, document_tag, unit_cost_recognized, total_cost_recognized, created_at
		FROM stock_movements WHERE document_tag = $1
		ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, tag)
	if err != nil {
		return nil, fmt.Errorf("list movements by tag: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.DocumentTag,
			&m.UnitCostRecognized, &m.TotalCostRecognized, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListConsumptionsByMovement lista las filas de consumo de una salida.
func (r *StockMovementRepo) ListConsumptionsByMovement(movementID string) ([]*entity.LotConsumption, error) {
	query := `
		SELECT movement_id, lot_id, quantity_consumed, unit_cost, total_cost
		FROM lot_consumptions WHERE movement_id = $1
		ORDER BY lot_id`
	rows, err := r.q.Query(context.Background(), query, movementID)
	if err != nil {
		return nil, fmt.Errorf("list consumptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.LotConsumption
	for rows.Next() {
		var c entity.LotConsumption
		if err := rows.Scan(&c.MovementID, &c.LotID, &c.QuantityConsumed,
			&c.UnitCost, &c.TotalCost); err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// DeleteByDocumentTag borra los movimientos de un documento. Las filas de
// consumo y los lotes originados caen en cascada por FK.
func (r *StockMovementRepo) DeleteByDocumentTag(tag string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_movements WHERE document_tag = $1`, tag)
	if err != nil {
		return fmt.Errorf("delete movements by tag: %w", err)
	}
	return nil
}

// LastPurchaseUnitCost devuelve el costo unitario de la entrada más
// reciente del producto, o nil si nunca se ha comprado.
func (r *StockMovementRepo) LastPurchaseUnitCost(productID string) (*decimal.Decimal, error) {
	query := `
		SELECT unit_cost_recognized
		FROM stock_movements
		WHERE product_id = $1 AND kind = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1`
	var cost *decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, productID, entity.MovementKindIn).Scan(&cost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last purchase unit cost: %w", err)
	}
	return cost, nil
}
