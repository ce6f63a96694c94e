package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement types.
const (
	MovementTypeAdjustment      = "adjustment"       // stock-count correction
	MovementTypePurchaseReceive = "purchase_receive" // goods received against a purchase order
)

// Source document kinds. Closed set: a movement's source reference is the
// tagged pair (kind, id), never a free-text label.
const (
	DocKindStockAdjustment = "stock_adjustment"
	DocKindPurchaseOrder   = "purchase_order"
)

// StockMovement is one immutable ledger row: a single quantity change with its
// before/after snapshot. Invariant: After = Before + Delta, on both axes.
type StockMovement struct {
	ID             string
	ProductID      string
	WarehouseID    string
	Type           string // adjustment, purchase_receive
	DeltaOnHand    decimal.Decimal
	DeltaReserved  decimal.Decimal
	BeforeOnHand   decimal.Decimal
	AfterOnHand    decimal.Decimal
	BeforeReserved decimal.Decimal
	AfterReserved  decimal.Decimal
	SourceDocKind  string // stock_adjustment, purchase_order
	SourceDocID    string
	ReferenceNo    string
	OccurredAt     time.Time
	ShelfNumber    string
	PackList       string
	ReceivingNo    string
	Supplier       string
	CreatedAt      time.Time
}
