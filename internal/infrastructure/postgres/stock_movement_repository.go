package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/entity"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo PostgreSQL implementation of the movement ledger
// (usable with pool or tx). Insert-only: no update or delete statements.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository builds the adapter. Pass pool or tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const stockMovementColumns = `id, product_id, warehouse_id, type,
	delta_on_hand, delta_reserved, before_on_hand, after_on_hand, before_reserved, after_reserved,
	source_doc_kind, source_doc_id, reference_no, occurred_at,
	shelf_number, pack_list, receiving_no, supplier, created_at`

// Create appends one ledger row.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + stockMovementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.WarehouseID, m.Type,
		m.DeltaOnHand, m.DeltaReserved, m.BeforeOnHand, m.AfterOnHand, m.BeforeReserved, m.AfterReserved,
		m.SourceDocKind, m.SourceDocID, nullIfEmpty(m.ReferenceNo), m.OccurredAt,
		nullIfEmpty(m.ShelfNumber), nullIfEmpty(m.PackList), nullIfEmpty(m.ReceivingNo), nullIfEmpty(m.Supplier),
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

func scanStockMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var refNo, shelf, pack, recvNo, supplier *string
	err := row.Scan(
		&m.ID, &m.ProductID, &m.WarehouseID, &m.Type,
		&m.DeltaOnHand, &m.DeltaReserved, &m.BeforeOnHand, &m.AfterOnHand, &m.BeforeReserved, &m.AfterReserved,
		&m.SourceDocKind, &m.SourceDocID, &refNo, &m.OccurredAt,
		&shelf, &pack, &recvNo, &supplier, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if refNo != nil {
		m.ReferenceNo = *refNo
	}
	if shelf != nil {
		m.ShelfNumber = *shelf
	}
	if pack != nil {
		m.PackList = *pack
	}
	if recvNo != nil {
		m.ReceivingNo = *recvNo
	}
	if supplier != nil {
		m.Supplier = *supplier
	}
	return &m, nil
}

// GetByID returns one ledger row.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanStockMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// ListBySourceDocument returns every movement written for one source
// document, oldest first. This is the receive-history query: shelf, pack and
// date display comes from here, not from a second denormalized record.
func (r *StockMovementRepo) ListBySourceDocument(kind, sourceDocID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + stockMovementColumns + `
		FROM stock_movements
		WHERE source_doc_kind = $1 AND source_doc_id = $2
		ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, kind, sourceDocID)
	if err != nil {
		return nil, fmt.Errorf("list movements by source document: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// List returns movements filtered by product/warehouse and time window.
func (r *StockMovementRepo) List(productID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + stockMovementColumns + `
		FROM stock_movements
		WHERE ($1 = '' OR product_id = $1)
		  AND ($2 = '' OR warehouse_id = $2)
		  AND ($3::timestamptz IS NULL OR occurred_at >= $3)
		  AND ($4::timestamptz IS NULL OR occurred_at <= $4)
		ORDER BY occurred_at DESC, created_at DESC
		LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(context.Background(), query, productID, warehouseID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for rows.Next() {
		m, err := scanStockMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
