package reconcile_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/application/reconcile"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/entity"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/repository"
)

// In-memory persistence for reconciler tests. The tx runner executes against
// a deep copy and swaps it in only on success, so rollback semantics hold
// without a database.

type memDB struct {
	items       map[string]*entity.InventoryItem
	movements   []*entity.StockMovement
	adjustments map[string]*entity.StockAdjustment
	adjItems    []*entity.StockAdjustmentItem
	orders      map[string]*entity.PurchaseOrder
	orderItems  map[string]*entity.PurchaseOrderItem
	invoices    map[string]*entity.VendorInvoice

	// movementFailAfter > 0 makes movement Create fail once that many rows
	// were written; simulates a mid-batch persistence error.
	movementFailAfter int
}

func newMemDB() *memDB {
	return &memDB{
		items:       map[string]*entity.InventoryItem{},
		adjustments: map[string]*entity.StockAdjustment{},
		orders:      map[string]*entity.PurchaseOrder{},
		orderItems:  map[string]*entity.PurchaseOrderItem{},
		invoices:    map[string]*entity.VendorInvoice{},
	}
}

func itemKey(productID, warehouseID string) string { return productID + "|" + warehouseID }
func invoiceKey(vendorID, number string) string    { return vendorID + "|" + number }

func (db *memDB) clone() *memDB {
	c := newMemDB()
	c.movementFailAfter = db.movementFailAfter
	for k, v := range db.items {
		cp := *v
		c.items[k] = &cp
	}
	for _, m := range db.movements {
		cp := *m
		c.movements = append(c.movements, &cp)
	}
	for k, v := range db.adjustments {
		cp := *v
		c.adjustments[k] = &cp
	}
	for _, it := range db.adjItems {
		cp := *it
		c.adjItems = append(c.adjItems, &cp)
	}
	for k, v := range db.orders {
		cp := *v
		c.orders[k] = &cp
	}
	for k, v := range db.orderItems {
		cp := *v
		c.orderItems[k] = &cp
	}
	for k, v := range db.invoices {
		cp := *v
		c.invoices[k] = &cp
	}
	return c
}

// --- repositories ---

type memItemRepo struct{ db *memDB }

func (r *memItemRepo) Get(productID, warehouseID string) (*entity.InventoryItem, error) {
	return r.GetForUpdate(productID, warehouseID)
}

func (r *memItemRepo) GetForUpdate(productID, warehouseID string) (*entity.InventoryItem, error) {
	if it, ok := r.db.items[itemKey(productID, warehouseID)]; ok {
		cp := *it
		return &cp, nil
	}
	return &entity.InventoryItem{
		ProductID:   productID,
		WarehouseID: warehouseID,
		OnHand:      decimal.Zero,
		Reserved:    decimal.Zero,
	}, nil
}

func (r *memItemRepo) Upsert(item *entity.InventoryItem) error {
	cp := *item
	r.db.items[itemKey(item.ProductID, item.WarehouseID)] = &cp
	return nil
}

func (r *memItemRepo) List(productID, warehouseID string, limit, offset int) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.db.items {
		if (productID == "" || it.ProductID == productID) && (warehouseID == "" || it.WarehouseID == warehouseID) {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memMovementRepo struct{ db *memDB }

var errInjectedMovementFailure = errors.New("injected movement failure")

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	if r.db.movementFailAfter > 0 && len(r.db.movements) >= r.db.movementFailAfter {
		return errInjectedMovementFailure
	}
	cp := *m
	r.db.movements = append(r.db.movements, &cp)
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.db.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) ListBySourceDocument(kind, sourceDocID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.db.movements {
		if m.SourceDocKind == kind && m.SourceDocID == sourceDocID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memMovementRepo) List(productID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.db.movements {
		if (productID == "" || m.ProductID == productID) && (warehouseID == "" || m.WarehouseID == warehouseID) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memAdjustmentRepo struct{ db *memDB }

func (r *memAdjustmentRepo) Create(a *entity.StockAdjustment) error {
	cp := *a
	r.db.adjustments[a.ID] = &cp
	return nil
}

func (r *memAdjustmentRepo) CreateItem(it *entity.StockAdjustmentItem) error {
	cp := *it
	r.db.adjItems = append(r.db.adjItems, &cp)
	return nil
}

func (r *memAdjustmentRepo) GetByID(id string) (*entity.StockAdjustment, error) {
	if a, ok := r.db.adjustments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *memAdjustmentRepo) GetItemsByAdjustmentID(adjustmentID string) ([]*entity.StockAdjustmentItem, error) {
	var out []*entity.StockAdjustmentItem
	for _, it := range r.db.adjItems {
		if it.AdjustmentID == adjustmentID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memOrderRepo struct{ db *memDB }

func (r *memOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	if po, ok := r.db.orders[id]; ok {
		cp := *po
		return &cp, nil
	}
	return nil, nil
}

func (r *memOrderRepo) GetItem(itemID string) (*entity.PurchaseOrderItem, error) {
	if it, ok := r.db.orderItems[itemID]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (r *memOrderRepo) GetItemsByOrderID(orderID string) ([]*entity.PurchaseOrderItem, error) {
	var out []*entity.PurchaseOrderItem
	for _, it := range r.db.orderItems {
		if it.PurchaseOrderID == orderID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memOrderRepo) UpdateItemReceived(item *entity.PurchaseOrderItem) error {
	existing, ok := r.db.orderItems[item.ID]
	if !ok {
		return errors.New("order item not found")
	}
	existing.ReceivedQuantity = item.ReceivedQuantity
	return nil
}

type memInvoiceRepo struct{ db *memDB }

func (r *memInvoiceRepo) GetByVendorAndNumber(vendorID, invoiceNumber string) (*entity.VendorInvoice, error) {
	if inv, ok := r.db.invoices[invoiceKey(vendorID, invoiceNumber)]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}

func (r *memInvoiceRepo) Create(inv *entity.VendorInvoice) error {
	cp := *inv
	r.db.invoices[invoiceKey(inv.VendorID, inv.InvoiceNumber)] = &cp
	return nil
}

func (r *memInvoiceRepo) Update(inv *entity.VendorInvoice) error {
	cp := *inv
	r.db.invoices[invoiceKey(inv.VendorID, inv.InvoiceNumber)] = &cp
	return nil
}

// --- tx runner ---

type memTxRunner struct{ db *memDB }

func (t *memTxRunner) Run(ctx context.Context, fn func(repos reconcile.TxRepos) error) error {
	work := t.db.clone()
	repos := reconcile.TxRepos{
		Items:       &memItemRepo{db: work},
		Movements:   &memMovementRepo{db: work},
		Adjustments: &memAdjustmentRepo{db: work},
		Orders:      &memOrderRepo{db: work},
		Invoices:    &memInvoiceRepo{db: work},
	}
	if err := fn(repos); err != nil {
		return err
	}
	*t.db = *work
	return nil
}

// --- lookup fakes ---

type memCatalog struct{ bySKU map[string]repository.ProductRef }

func (c *memCatalog) ResolveBySKU(ctx context.Context, skus []string) (map[string]repository.ProductRef, error) {
	out := map[string]repository.ProductRef{}
	for _, sku := range skus {
		if ref, ok := c.bySKU[sku]; ok {
			out[sku] = ref
		}
	}
	return out, nil
}

type memDirectory struct {
	byLabel   map[string]string
	defaultID string
}

func (d *memDirectory) ResolveByNameOrCode(ctx context.Context, labels []string) (map[string]string, error) {
	out := map[string]string{}
	for _, l := range labels {
		if id, ok := d.byLabel[l]; ok {
			out[l] = id
		}
	}
	return out, nil
}

func (d *memDirectory) DefaultWarehouseID(ctx context.Context) (string, error) {
	return d.defaultID, nil
}

func (d *memDirectory) List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	return nil, nil
}

type memFileStore struct {
	stored  []string
	removed []string
}

func (s *memFileStore) Store(data []byte, extension string, allowed []string) (string, error) {
	permitted := false
	for _, a := range allowed {
		if extension == a {
			permitted = true
			break
		}
	}
	if !permitted {
		return "", fmt.Errorf("%w: .%s", domain.ErrFileTypeNotAllowed, extension)
	}
	path := "stored-" + extension
	s.stored = append(s.stored, path)
	return path, nil
}

func (s *memFileStore) Remove(relativePath string) error {
	s.removed = append(s.removed, relativePath)
	return nil
}
