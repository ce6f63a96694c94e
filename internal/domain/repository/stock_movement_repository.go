package repository

import (
	"time"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/entity"
)

// StockMovementRepository is the persistence port for the append-only
// movement ledger (DIP). Rows are never updated or deleted.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// ListBySourceDocument returns every movement written for one source
	// document; serves receive-history display (shelf/pack/date) by query.
	ListBySourceDocument(kind, sourceDocID string) ([]*entity.StockMovement, error)
	List(productID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
