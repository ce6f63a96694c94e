package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VendorInvoice records an invoice asserted by a vendor against received
// goods. Keyed by (VendorID, InvoiceNumber) and upserted: reconciling the
// same invoice number again updates amount/date/description in place.
// FilePath is overwritten only when a new attachment was stored; an existing
// path is never cleared.
type VendorInvoice struct {
	ID            string
	VendorID      string
	InvoiceNumber string
	Date          time.Time
	TotalAmount   decimal.Decimal
	Description   string
	FilePath      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
