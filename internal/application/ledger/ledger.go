package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/entity"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/repository"
)

// MovementInput is one delta to apply against a (product, warehouse) pair.
// The contract is always delta-based: callers that work from an absolute
// target quantity compute target − current before calling.
type MovementInput struct {
	ProductID     string
	WarehouseID   string
	Type          string // entity.MovementType*
	DeltaOnHand   decimal.Decimal
	DeltaReserved decimal.Decimal
	SourceDocKind string // entity.DocKind*
	SourceDocID   string
	ReferenceNo   string
	OccurredAt    time.Time
	ShelfNumber   string
	PackList      string
	ReceivingNo   string
	Supplier      string
}

// Ledger is the single choke point for mutating on-hand/reserved quantities.
// It never commits: both writes are queued on the tx-bound repositories the
// caller hands in, so they flush with the caller's other writes.
type Ledger struct{}

func New() *Ledger {
	return &Ledger{}
}

// ApplyMovement reads the current item holding a row lock (missing reads as
// zero), computes the before/after snapshot, upserts the item and appends one
// movement row. The resulting on-hand is deliberately not checked for
// negativity; count corrections must be able to drive stock down to reality.
func (l *Ledger) ApplyMovement(
	items repository.InventoryItemRepository,
	movements repository.StockMovementRepository,
	in MovementInput,
) (*entity.StockMovement, error) {
	if in.ProductID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypeAdjustment, entity.MovementTypePurchaseReceive:
	default:
		return nil, domain.ErrInvalidInput
	}

	// Row lock serializes concurrent writers on the same pair (lost-update guard).
	item, err := items.GetForUpdate(in.ProductID, in.WarehouseID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	beforeOnHand := item.OnHand
	beforeReserved := item.Reserved

	item.OnHand = beforeOnHand.Add(in.DeltaOnHand)
	item.Reserved = beforeReserved.Add(in.DeltaReserved)
	if in.ShelfNumber != "" {
		item.ShelfNumber = in.ShelfNumber
	}
	item.UpdatedAt = now
	if err := items.Upsert(item); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      in.ProductID,
		WarehouseID:    in.WarehouseID,
		Type:           in.Type,
		DeltaOnHand:    in.DeltaOnHand,
		DeltaReserved:  in.DeltaReserved,
		BeforeOnHand:   beforeOnHand,
		AfterOnHand:    item.OnHand,
		BeforeReserved: beforeReserved,
		AfterReserved:  item.Reserved,
		SourceDocKind:  in.SourceDocKind,
		SourceDocID:    in.SourceDocID,
		ReferenceNo:    in.ReferenceNo,
		OccurredAt:     in.OccurredAt,
		ShelfNumber:    in.ShelfNumber,
		PackList:       in.PackList,
		ReceivingNo:    in.ReceivingNo,
		Supplier:       in.Supplier,
		CreatedAt:      now,
	}
	if err := movements.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}
