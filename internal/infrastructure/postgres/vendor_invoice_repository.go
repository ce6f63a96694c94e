package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/entity"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/repository"
)

var _ repository.VendorInvoiceRepository = (*VendorInvoiceRepo)(nil)

// VendorInvoiceRepo PostgreSQL implementation (usable with pool or tx).
type VendorInvoiceRepo struct {
	q Querier
}

// NewVendorInvoiceRepository builds the adapter. Pass pool or tx (Querier).
func NewVendorInvoiceRepository(q Querier) *VendorInvoiceRepo {
	return &VendorInvoiceRepo{q: q}
}

const vendorInvoiceColumns = "id, vendor_id, invoice_number, date, total_amount, description, file_path, created_at, updated_at"

// GetByVendorAndNumber returns the invoice for the key, nil when absent.
func (r *VendorInvoiceRepo) GetByVendorAndNumber(vendorID, invoiceNumber string) (*entity.VendorInvoice, error) {
	query := `SELECT ` + vendorInvoiceColumns + ` FROM vendor_invoices WHERE vendor_id = $1 AND invoice_number = $2`
	var inv entity.VendorInvoice
	var desc, filePath *string
	err := r.q.QueryRow(context.Background(), query, vendorID, invoiceNumber).Scan(
		&inv.ID, &inv.VendorID, &inv.InvoiceNumber, &inv.Date, &inv.TotalAmount,
		&desc, &filePath, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor invoice: %w", err)
	}
	if desc != nil {
		inv.Description = *desc
	}
	if filePath != nil {
		inv.FilePath = *filePath
	}
	return &inv, nil
}

// Create persists a new invoice. (vendor_id, invoice_number) is unique.
func (r *VendorInvoiceRepo) Create(inv *entity.VendorInvoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	query := `
		INSERT INTO vendor_invoices (` + vendorInvoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.VendorID, inv.InvoiceNumber, inv.Date, inv.TotalAmount,
		nullIfEmpty(inv.Description), nullIfEmpty(inv.FilePath), inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: vendor invoice %s/%s", domain.ErrDuplicate, inv.VendorID, inv.InvoiceNumber)
		}
		return fmt.Errorf("create vendor invoice: %w", err)
	}
	return nil
}

// Update rewrites amount, date, description and (when set) file path.
func (r *VendorInvoiceRepo) Update(inv *entity.VendorInvoice) error {
	query := `
		UPDATE vendor_invoices
		SET date = $2, total_amount = $3, description = $4,
		    file_path = COALESCE($5, file_path), updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Date, inv.TotalAmount, nullIfEmpty(inv.Description),
		nullIfEmpty(inv.FilePath), inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vendor invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update vendor invoice: %s not found", inv.ID)
	}
	return nil
}
