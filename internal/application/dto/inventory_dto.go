package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItemDTO current stock position for list endpoints.
type InventoryItemDTO struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	OnHand      decimal.Decimal `json:"on_hand"`
	Reserved    decimal.Decimal `json:"reserved"`
	Available   decimal.Decimal `json:"available"`
	ShelfNumber string          `json:"shelf_number,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StockMovementDTO one ledger row for history endpoints.
type StockMovementDTO struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	WarehouseID    string          `json:"warehouse_id"`
	Type           string          `json:"type"`
	DeltaOnHand    decimal.Decimal `json:"delta_on_hand"`
	DeltaReserved  decimal.Decimal `json:"delta_reserved"`
	BeforeOnHand   decimal.Decimal `json:"before_on_hand"`
	AfterOnHand    decimal.Decimal `json:"after_on_hand"`
	BeforeReserved decimal.Decimal `json:"before_reserved"`
	AfterReserved  decimal.Decimal `json:"after_reserved"`
	SourceDocKind  string          `json:"source_doc_kind"`
	SourceDocID    string          `json:"source_doc_id"`
	ReferenceNo    string          `json:"reference_no,omitempty"`
	OccurredAt     time.Time       `json:"occurred_at"`
	ShelfNumber    string          `json:"shelf_number,omitempty"`
	PackList       string          `json:"pack_list,omitempty"`
	ReceivingNo    string          `json:"receiving_no,omitempty"`
	Supplier       string          `json:"supplier,omitempty"`
}
