package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder header. Master data as far as reconciliation is concerned:
// only the items' received counters are ever written here.
type PurchaseOrder struct {
	ID        string
	VendorID  string
	OrderNo   string
	Date      time.Time
	CreatedAt time.Time
}

// PurchaseOrderItem is one ordered line. OrderedQuantity is fixed at order
// time; ReceivedQuantity is a cumulative counter incremented by each
// reconciled receipt. It is not clamped against OrderedQuantity.
type PurchaseOrderItem struct {
	ID               string
	PurchaseOrderID  string
	ProductID        string
	OrderedQuantity  decimal.Decimal
	ReceivedQuantity decimal.Decimal
	UnitPrice        decimal.Decimal
}
