package repository

import "github.com/Arikan-Bt/CWI-New-sub002/internal/domain/entity"

// VendorInvoiceRepository is the persistence port for vendor invoices (DIP).
type VendorInvoiceRepository interface {
	// GetByVendorAndNumber returns nil, nil when no invoice exists for the key.
	GetByVendorAndNumber(vendorID, invoiceNumber string) (*entity.VendorInvoice, error)
	Create(invoice *entity.VendorInvoice) error
	Update(invoice *entity.VendorInvoice) error
}
