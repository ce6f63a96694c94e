package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockAdjustment is the header of one stock-count correction batch
// (typically imported from a spreadsheet).
type StockAdjustment struct {
	ID          string
	Date        time.Time
	Description string
	CreatedAt   time.Time
}

// StockAdjustmentItem is one corrected line: the counted quantity next to the
// quantity the ledger held when the correction was applied. Expected to agree
// with the ledger delta written for the same row.
type StockAdjustmentItem struct {
	ID           string
	AdjustmentID string
	ProductID    string
	WarehouseID  string
	OldQuantity  decimal.Decimal
	NewQuantity  decimal.Decimal
	Price        decimal.Decimal
	Currency     string
	ShelfNumber  string
	PackList     string
	ReceivingNo  string
	Supplier     string
}
