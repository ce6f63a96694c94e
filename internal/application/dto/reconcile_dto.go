package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentRow is one parsed spreadsheet line of a stock-count correction.
// Quantity is the absolute counted quantity, not a delta.
type AdjustmentRow struct {
	Row            int             `json:"row"` // 1-based position in the uploaded file
	ProductCode    string          `json:"product_code"`
	Quantity       decimal.Decimal `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Currency       string          `json:"currency"`
	WarehouseLabel string          `json:"warehouse_label"`
	ShelfNumber    string          `json:"shelf_number"`
	PackList       string          `json:"pack_list"`
	ReceivingNo    string          `json:"receiving_no"`
	Supplier       string          `json:"supplier"`
}

// AdjustmentInput is a full count-correction batch: header plus ordered rows.
type AdjustmentInput struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Rows        []AdjustmentRow `json:"rows"`
}

// AdjustmentResult reports the outcome of one adjustment batch.
type AdjustmentResult struct {
	AdjustmentID string       `json:"adjustment_id"`
	Processed    int          `json:"processed"`
	Skipped      int          `json:"skipped"`
	Warnings     []RowWarning `json:"warnings"`
}

// ReceiptLine is one invoice line asserted against an open purchase order.
type ReceiptLine struct {
	PurchaseOrderItemID string          `json:"purchase_order_item_id"`
	InvoiceQty          decimal.Decimal `json:"invoice_qty"`
	InvoiceUnitPrice    decimal.Decimal `json:"invoice_unit_price"`
	WarehouseID         string          `json:"warehouse_id,omitempty"`
	ShelfNumber         string          `json:"shelf_number,omitempty"`
	PackList            string          `json:"pack_list,omitempty"`
	ReceivingDate       *time.Time      `json:"receiving_date,omitempty"`
}

// ReceiptInput is one invoice reconciliation against a purchase order.
// Attachment, when present, is stored before the invoice is upserted.
type ReceiptInput struct {
	PurchaseOrderID string        `json:"purchase_order_id"`
	InvoiceNumber   string        `json:"invoice_number"`
	InvoiceDate     time.Time     `json:"invoice_date"`
	Description     string        `json:"description,omitempty"`
	Lines           []ReceiptLine `json:"lines"`
	Attachment      []byte        `json:"-"`
	AttachmentExt   string        `json:"-"`
}

// ReceiptResult reports the outcome of one invoice reconciliation.
type ReceiptResult struct {
	InvoiceID   string          `json:"invoice_id"`
	Processed   int             `json:"processed"`
	Skipped     int             `json:"skipped"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Warnings    []RowWarning    `json:"warnings"`
}
