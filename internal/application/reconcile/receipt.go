package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/application/dto"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/application/ledger"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/entity"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/repository"
)

// PurchaseReceiptReconciler consumes vendor invoice lines against an open
// purchase order: increments received counters, drives the ledger and upserts
// the vendor invoice, all in one commit. The movement ledger is the single
// source of truth for receive history; shelf/pack/date display is served by
// querying movements for the purchase order, not by a second denormalized
// record.
type PurchaseReceiptReconciler struct {
	txRunner  TxRunner
	ledger    *ledger.Ledger
	warehouse repository.WarehouseDirectory
	files     FileStore
	log       zerolog.Logger
}

func NewPurchaseReceiptReconciler(
	txRunner TxRunner,
	l *ledger.Ledger,
	warehouse repository.WarehouseDirectory,
	files FileStore,
	log zerolog.Logger,
) *PurchaseReceiptReconciler {
	return &PurchaseReceiptReconciler{
		txRunner:  txRunner,
		ledger:    l,
		warehouse: warehouse,
		files:     files,
		log:       log,
	}
}

// Reconcile applies one invoice against a purchase order. Unknown order or
// order-item ids abort the operation with nothing persisted. Lines with a
// non-positive quantity are skipped entirely: no movement, no inventory
// change, no received-counter increment.
//
// The attachment, when present, is written to durable storage before the
// transaction; if the commit fails the stored file is removed again.
func (r *PurchaseReceiptReconciler) Reconcile(ctx context.Context, in dto.ReceiptInput) (*dto.ReceiptResult, error) {
	if in.PurchaseOrderID == "" || in.InvoiceNumber == "" {
		return nil, domain.ErrInvalidInput
	}

	warehouses, err := ResolveWarehouses(ctx, r.warehouse, nil)
	if err != nil {
		return nil, err
	}

	filePath := ""
	if len(in.Attachment) > 0 {
		filePath, err = r.files.Store(in.Attachment, in.AttachmentExt, AllowedInvoiceExtensions)
		if err != nil {
			return nil, err
		}
	}

	result := &dto.ReceiptResult{TotalAmount: decimal.Zero, Warnings: []dto.RowWarning{}}

	err = r.txRunner.Run(ctx, func(repos TxRepos) error {
		order, err := repos.Orders.GetByID(in.PurchaseOrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: purchase order %s", domain.ErrReferenceNotFound, in.PurchaseOrderID)
		}

		occurredAt := in.InvoiceDate
		if occurredAt.IsZero() {
			occurredAt = time.Now()
		}

		for _, line := range in.Lines {
			if !line.InvoiceQty.GreaterThan(decimal.Zero) {
				result.Skipped++
				continue
			}

			poItem, err := repos.Orders.GetItem(line.PurchaseOrderItemID)
			if err != nil {
				return err
			}
			if poItem == nil || poItem.PurchaseOrderID != order.ID {
				return fmt.Errorf("%w: purchase order item %s", domain.ErrReferenceNotFound, line.PurchaseOrderItemID)
			}

			// Cumulative counter; not clamped against OrderedQuantity.
			poItem.ReceivedQuantity = poItem.ReceivedQuantity.Add(line.InvoiceQty)
			if err := repos.Orders.UpdateItemReceived(poItem); err != nil {
				return err
			}

			warehouseID := line.WarehouseID
			if warehouseID == "" {
				warehouseID = warehouses.DefaultID()
			}

			lineOccurredAt := occurredAt
			if line.ReceivingDate != nil {
				lineOccurredAt = *line.ReceivingDate
			}

			if _, err := r.ledger.ApplyMovement(repos.Items, repos.Movements, ledger.MovementInput{
				ProductID:     poItem.ProductID,
				WarehouseID:   warehouseID,
				Type:          entity.MovementTypePurchaseReceive,
				DeltaOnHand:   line.InvoiceQty,
				DeltaReserved: decimal.Zero,
				SourceDocKind: entity.DocKindPurchaseOrder,
				SourceDocID:   order.ID,
				ReferenceNo:   in.InvoiceNumber,
				OccurredAt:    lineOccurredAt,
				ShelfNumber:   line.ShelfNumber,
				PackList:      line.PackList,
			}); err != nil {
				return err
			}

			result.TotalAmount = result.TotalAmount.Add(line.InvoiceQty.Mul(line.InvoiceUnitPrice))
			result.Processed++
		}

		invoiceID, err := r.upsertInvoice(repos.Invoices, order.VendorID, in, result.TotalAmount, filePath)
		if err != nil {
			return err
		}
		result.InvoiceID = invoiceID
		return nil
	})
	if err != nil {
		// The file was written outside the unit of work; compensate.
		if filePath != "" {
			if rmErr := r.files.Remove(filePath); rmErr != nil {
				r.log.Warn().Err(rmErr).Str("path", filePath).Msg("orphaned invoice attachment")
			}
		}
		return nil, err
	}

	r.log.Info().
		Str("purchase_order_id", in.PurchaseOrderID).
		Str("invoice_number", in.InvoiceNumber).
		Int("processed", result.Processed).
		Int("skipped", result.Skipped).
		Str("total_amount", result.TotalAmount.String()).
		Msg("purchase receipt reconciled")
	return result, nil
}

// upsertInvoice creates the vendor invoice on first sight of the
// (vendor, invoiceNumber) key, otherwise updates amount/date/description in
// place. The file path is only overwritten when a new file was stored.
func (r *PurchaseReceiptReconciler) upsertInvoice(
	invoices repository.VendorInvoiceRepository,
	vendorID string,
	in dto.ReceiptInput,
	totalAmount decimal.Decimal,
	filePath string,
) (string, error) {
	existing, err := invoices.GetByVendorAndNumber(vendorID, in.InvoiceNumber)
	if err != nil {
		return "", err
	}
	now := time.Now()

	if existing == nil {
		inv := &entity.VendorInvoice{
			ID:            uuid.New().String(),
			VendorID:      vendorID,
			InvoiceNumber: in.InvoiceNumber,
			Date:          in.InvoiceDate,
			TotalAmount:   totalAmount,
			Description:   in.Description,
			FilePath:      filePath,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := invoices.Create(inv); err != nil {
			return "", err
		}
		return inv.ID, nil
	}

	existing.Date = in.InvoiceDate
	existing.TotalAmount = totalAmount
	existing.Description = in.Description
	if filePath != "" {
		existing.FilePath = filePath
	}
	existing.UpdatedAt = now
	if err := invoices.Update(existing); err != nil {
		return "", err
	}
	return existing.ID, nil
}
