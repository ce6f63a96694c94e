package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/application/reconcile"
)

var _ reconcile.TxRunner = (*TxRunner)(nil)

// TxRunner runs reconciliation callbacks inside one PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with repositories bound to that tx
// and commits on nil; any error rolls the whole unit of work back.
func (r *TxRunner) Run(ctx context.Context, fn func(repos reconcile.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := reconcile.TxRepos{
		Items:       NewInventoryItemRepository(tx),
		Movements:   NewStockMovementRepository(tx),
		Adjustments: NewStockAdjustmentRepository(tx),
		Orders:      NewPurchaseOrderRepository(tx),
		Invoices:    NewVendorInvoiceRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
