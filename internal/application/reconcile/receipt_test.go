package reconcile_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/application/dto"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/application/ledger"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/application/reconcile"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/entity"
)

const (
	vendorID    = "vendor-1"
	orderID     = "po-1"
	orderItemID = "poi-1"
)

func seedOrder(db *memDB) {
	db.orders[orderID] = &entity.PurchaseOrder{
		ID:       orderID,
		VendorID: vendorID,
		OrderNo:  "PO-2026-001",
		Date:     time.Now(),
	}
	db.orderItems[orderItemID] = &entity.PurchaseOrderItem{
		ID:               orderItemID,
		PurchaseOrderID:  orderID,
		ProductID:        productABC,
		OrderedQuantity:  decimal.NewFromInt(100),
		ReceivedQuantity: decimal.NewFromInt(5),
		UnitPrice:        decimal.NewFromInt(4),
	}
}

func newReceiptFixture(db *memDB, files *memFileStore) *reconcile.PurchaseReceiptReconciler {
	directory := &memDirectory{defaultID: defaultWarehouseID}
	if files == nil {
		files = &memFileStore{}
	}
	return reconcile.NewPurchaseReceiptReconciler(
		&memTxRunner{db: db}, ledger.New(), directory, files, zerolog.Nop(),
	)
}

func TestReceipt_IncrementsReceivedAndOnHand(t *testing.T) {
	db := newMemDB()
	seedOrder(db)
	rec := newReceiptFixture(db, nil)

	result, err := rec.Reconcile(context.Background(), dto.ReceiptInput{
		PurchaseOrderID: orderID,
		InvoiceNumber:   "INV-77",
		InvoiceDate:     time.Now(),
		Lines: []dto.ReceiptLine{
			{PurchaseOrderItemID: orderItemID, InvoiceQty: decimal.NewFromInt(10), InvoiceUnitPrice: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)

	assert.True(t, db.orderItems[orderItemID].ReceivedQuantity.Equal(decimal.NewFromInt(15)),
		"5 already received + 10 invoiced")

	item := db.items[itemKey(productABC, defaultWarehouseID)]
	require.NotNil(t, item)
	assert.True(t, item.OnHand.Equal(decimal.NewFromInt(10)))

	require.Len(t, db.movements, 1, "exactly one PurchaseReceive movement")
	mov := db.movements[0]
	assert.Equal(t, entity.MovementTypePurchaseReceive, mov.Type)
	assert.Equal(t, entity.DocKindPurchaseOrder, mov.SourceDocKind)
	assert.Equal(t, orderID, mov.SourceDocID)
	assert.Equal(t, "INV-77", mov.ReferenceNo)
	assert.True(t, mov.AfterOnHand.Sub(mov.BeforeOnHand).Equal(mov.DeltaOnHand))
}

func TestReceipt_TwoLinesOneInvoiceRow(t *testing.T) {
	db := newMemDB()
	seedOrder(db)
	db.orderItems["poi-2"] = &entity.PurchaseOrderItem{
		ID:              "poi-2",
		PurchaseOrderID: orderID,
		ProductID:       "prod-def",
		OrderedQuantity: decimal.NewFromInt(50),
		UnitPrice:       decimal.NewFromInt(7),
	}
	rec := newReceiptFixture(db, nil)

	result, err := rec.Reconcile(context.Background(), dto.ReceiptInput{
		PurchaseOrderID: orderID,
		InvoiceNumber:   "INV-100",
		InvoiceDate:     time.Now(),
		Lines: []dto.ReceiptLine{
			{PurchaseOrderItemID: orderItemID, InvoiceQty: decimal.NewFromInt(10), InvoiceUnitPrice: decimal.NewFromInt(4)},
			{PurchaseOrderItemID: "poi-2", InvoiceQty: decimal.NewFromInt(3), InvoiceUnitPrice: decimal.NewFromInt(7)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)

	require.Len(t, db.invoices, 1, "one VendorInvoice row for the key")
	inv := db.invoices[invoiceKey(vendorID, "INV-100")]
	require.NotNil(t, inv)
	assert.True(t, inv.TotalAmount.Equal(decimal.NewFromInt(10*4+3*7)))
	assert.True(t, result.TotalAmount.Equal(inv.TotalAmount))
}

func TestReceipt_ZeroQuantityLineHasNoEffect(t *testing.T) {
	db := newMemDB()
	seedOrder(db)
	rec := newReceiptFixture(db, nil)

	result, err := rec.Reconcile(context.Background(), dto.ReceiptInput{
		PurchaseOrderID: orderID,
		InvoiceNumber:   "INV-0",
		InvoiceDate:     time.Now(),
		Lines: []dto.ReceiptLine{
			{PurchaseOrderItemID: orderItemID, InvoiceQty: decimal.Zero, InvoiceUnitPrice: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 1, result.Skipped)

	assert.True(t, db.orderItems[orderItemID].ReceivedQuantity.Equal(decimal.NewFromInt(5)), "counter untouched")
	assert.Empty(t, db.movements)
	assert.Empty(t, db.items)
	assert.True(t, result.TotalAmount.IsZero())
}

func TestReceipt_ReconcileTwiceUpsertsOneInvoice(t *testing.T) {
	db := newMemDB()
	seedOrder(db)
	rec := newReceiptFixture(db, nil)

	in := dto.ReceiptInput{
		PurchaseOrderID: orderID,
		InvoiceNumber:   "INV-77",
		InvoiceDate:     time.Now(),
		Lines: []dto.ReceiptLine{
			{PurchaseOrderItemID: orderItemID, InvoiceQty: decimal.NewFromInt(10), InvoiceUnitPrice: decimal.NewFromInt(4)},
		},
	}
	first, err := rec.Reconcile(context.Background(), in)
	require.NoError(t, err)
	second, err := rec.Reconcile(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, db.invoices, 1, "same (vendor, number) must update, not duplicate")
	assert.Equal(t, first.InvoiceID, second.InvoiceID)

	// The ledger, on the other hand, is append-only: two receipts, two rows.
	assert.Len(t, db.movements, 2)
	assert.True(t, db.orderItems[orderItemID].ReceivedQuantity.Equal(decimal.NewFromInt(25)))
}

func TestReceipt_UnknownOrderAborts(t *testing.T) {
	db := newMemDB()
	rec := newReceiptFixture(db, nil)

	_, err := rec.Reconcile(context.Background(), dto.ReceiptInput{
		PurchaseOrderID: "missing",
		InvoiceNumber:   "INV-1",
		Lines:           []dto.ReceiptLine{},
	})
	require.ErrorIs(t, err, domain.ErrReferenceNotFound)
	assert.Empty(t, db.invoices)
}

func TestReceipt_UnknownOrderItemAbortsWholeOperation(t *testing.T) {
	db := newMemDB()
	seedOrder(db)
	rec := newReceiptFixture(db, nil)

	_, err := rec.Reconcile(context.Background(), dto.ReceiptInput{
		PurchaseOrderID: orderID,
		InvoiceNumber:   "INV-77",
		InvoiceDate:     time.Now(),
		Lines: []dto.ReceiptLine{
			{PurchaseOrderItemID: orderItemID, InvoiceQty: decimal.NewFromInt(10), InvoiceUnitPrice: decimal.NewFromInt(4)},
			{PurchaseOrderItemID: "poi-unknown", InvoiceQty: decimal.NewFromInt(1), InvoiceUnitPrice: decimal.NewFromInt(1)},
		},
	})
	require.ErrorIs(t, err, domain.ErrReferenceNotFound)

	// First line's writes rolled back with the rest.
	assert.True(t, db.orderItems[orderItemID].ReceivedQuantity.Equal(decimal.NewFromInt(5)))
	assert.Empty(t, db.movements)
	assert.Empty(t, db.invoices)
}

func TestReceipt_LineWarehouseOverridesDefault(t *testing.T) {
	db := newMemDB()
	seedOrder(db)
	rec := newReceiptFixture(db, nil)

	_, err := rec.Reconcile(context.Background(), dto.ReceiptInput{
		PurchaseOrderID: orderID,
		InvoiceNumber:   "INV-77",
		InvoiceDate:     time.Now(),
		Lines: []dto.ReceiptLine{
			{PurchaseOrderItemID: orderItemID, InvoiceQty: decimal.NewFromInt(2), InvoiceUnitPrice: decimal.NewFromInt(4), WarehouseID: secondWarehouseID, ShelfNumber: "A-7"},
		},
	})
	require.NoError(t, err)

	item := db.items[itemKey(productABC, secondWarehouseID)]
	require.NotNil(t, item)
	assert.True(t, item.OnHand.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "A-7", item.ShelfNumber, "shelf number overwritten from the line")
	assert.Nil(t, db.items[itemKey(productABC, defaultWarehouseID)])
}

func TestReceipt_AttachmentStoredAndPathNeverCleared(t *testing.T) {
	db := newMemDB()
	seedOrder(db)
	files := &memFileStore{}
	rec := newReceiptFixture(db, files)

	in := dto.ReceiptInput{
		PurchaseOrderID: orderID,
		InvoiceNumber:   "INV-77",
		InvoiceDate:     time.Now(),
		Lines: []dto.ReceiptLine{
			{PurchaseOrderItemID: orderItemID, InvoiceQty: decimal.NewFromInt(1), InvoiceUnitPrice: decimal.NewFromInt(4)},
		},
		Attachment:    []byte("%PDF-1.4"),
		AttachmentExt: "pdf",
	}
	_, err := rec.Reconcile(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, files.stored, 1)

	inv := db.invoices[invoiceKey(vendorID, "INV-77")]
	require.NotNil(t, inv)
	assert.Equal(t, files.stored[0], inv.FilePath)

	// Second reconciliation without a file keeps the stored path.
	in.Attachment = nil
	in.AttachmentExt = ""
	_, err = rec.Reconcile(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, files.stored[0], db.invoices[invoiceKey(vendorID, "INV-77")].FilePath)
}

func TestReceipt_AttachmentCleanedUpWhenTxFails(t *testing.T) {
	db := newMemDB()
	seedOrder(db)
	files := &memFileStore{}
	rec := newReceiptFixture(db, files)

	_, err := rec.Reconcile(context.Background(), dto.ReceiptInput{
		PurchaseOrderID: orderID,
		InvoiceNumber:   "INV-77",
		InvoiceDate:     time.Now(),
		Lines: []dto.ReceiptLine{
			{PurchaseOrderItemID: "poi-unknown", InvoiceQty: decimal.NewFromInt(1), InvoiceUnitPrice: decimal.NewFromInt(1)},
		},
		Attachment:    []byte("%PDF-1.4"),
		AttachmentExt: "pdf",
	})
	require.ErrorIs(t, err, domain.ErrReferenceNotFound)
	require.Len(t, files.stored, 1)
	assert.Equal(t, files.stored, files.removed, "orphaned attachment must be removed")
}

func TestReceipt_DisallowedAttachmentExtensionRejectedBeforeAnyWrite(t *testing.T) {
	db := newMemDB()
	seedOrder(db)
	files := &memFileStore{}
	rec := newReceiptFixture(db, files)

	_, err := rec.Reconcile(context.Background(), dto.ReceiptInput{
		PurchaseOrderID: orderID,
		InvoiceNumber:   "INV-77",
		InvoiceDate:     time.Now(),
		Lines: []dto.ReceiptLine{
			{PurchaseOrderItemID: orderItemID, InvoiceQty: decimal.NewFromInt(1), InvoiceUnitPrice: decimal.NewFromInt(4)},
		},
		Attachment:    []byte("MZ"),
		AttachmentExt: "exe",
	})
	require.ErrorIs(t, err, domain.ErrFileTypeNotAllowed)
	assert.Empty(t, files.stored)
	assert.Empty(t, db.movements, "nothing persisted when the attachment is rejected")
	assert.Empty(t, db.invoices)
}
