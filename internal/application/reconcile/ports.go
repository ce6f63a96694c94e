package reconcile

import (
	"context"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/repository"
)

// TxRepos bundles the tx-bound repositories one reconciliation can touch.
// Every write queued on them flushes in a single commit.
type TxRepos struct {
	Items       repository.InventoryItemRepository
	Movements   repository.StockMovementRepository
	Adjustments repository.StockAdjustmentRepository
	Orders      repository.PurchaseOrderRepository
	Invoices    repository.VendorInvoiceRepository
}

// TxRunner runs fn inside one database transaction, passing repositories
// bound to that transaction. Commit on nil, rollback otherwise. This is the
// atomicity boundary for the whole reconciliation engine.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// FileStore persists an uploaded attachment and returns its relative path.
// Disallowed extensions are rejected before any write.
type FileStore interface {
	Store(data []byte, extension string, allowed []string) (string, error)
	Remove(relativePath string) error
}

// Extension allow-lists for uploaded attachments.
var (
	AllowedInvoiceExtensions = []string{"pdf", "jpg", "jpeg", "png"}
	AllowedOrderExtensions   = []string{"xlsx", "xls", "csv", "pdf"}
)
