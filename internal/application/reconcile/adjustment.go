package reconcile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/application/dto"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/application/ledger"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/entity"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/repository"
)

// Reason strings for row warnings.
const (
	ReasonProductNotFound   = "Product not found."
	ReasonWarehouseNotFound = "Warehouse not found, default warehouse used."
)

// StockAdjustmentReconciler consumes a parsed batch of count-correction rows,
// resolves product and warehouse references and drives the ledger. The whole
// batch, header included, commits in one flush; any hard failure rolls the
// entire batch back.
type StockAdjustmentReconciler struct {
	txRunner  TxRunner
	ledger    *ledger.Ledger
	catalog   repository.ProductCatalogLookup
	warehouse repository.WarehouseDirectory
	log       zerolog.Logger
}

func NewStockAdjustmentReconciler(
	txRunner TxRunner,
	l *ledger.Ledger,
	catalog repository.ProductCatalogLookup,
	warehouse repository.WarehouseDirectory,
	log zerolog.Logger,
) *StockAdjustmentReconciler {
	return &StockAdjustmentReconciler{
		txRunner:  txRunner,
		ledger:    l,
		catalog:   catalog,
		warehouse: warehouse,
		log:       log,
	}
}

// Reconcile applies one adjustment batch. Reference lookups are batched once
// up front; rows are then processed strictly in file order. Unmatched SKUs
// skip the row with a warning, unmatched warehouse labels fall back to the
// default warehouse with a warning. Row quantities are absolute counts: the
// ledger delta is newQuantity − current on-hand.
func (r *StockAdjustmentReconciler) Reconcile(ctx context.Context, in dto.AdjustmentInput) (*dto.AdjustmentResult, error) {
	skus := make([]string, 0, len(in.Rows))
	labels := make([]string, 0, len(in.Rows))
	for _, row := range in.Rows {
		skus = append(skus, NormalizeSKU(row.ProductCode))
		if row.WarehouseLabel != "" {
			labels = append(labels, row.WarehouseLabel)
		}
	}

	products, err := r.catalog.ResolveBySKU(ctx, skus)
	if err != nil {
		return nil, err
	}
	warehouses, err := ResolveWarehouses(ctx, r.warehouse, labels)
	if err != nil {
		return nil, err
	}

	occurredAt := in.Date
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	result := &dto.AdjustmentResult{Warnings: []dto.RowWarning{}}

	err = r.txRunner.Run(ctx, func(repos TxRepos) error {
		header := &entity.StockAdjustment{
			ID:          uuid.New().String(),
			Date:        occurredAt,
			Description: in.Description,
			CreatedAt:   time.Now(),
		}
		if err := repos.Adjustments.Create(header); err != nil {
			return err
		}
		result.AdjustmentID = header.ID

		for _, row := range in.Rows {
			product, found := products[NormalizeSKU(row.ProductCode)]
			if !found {
				result.Warnings = append(result.Warnings, dto.RowWarning{
					Row:         row.Row,
					ProductCode: row.ProductCode,
					Reason:      ReasonProductNotFound,
				})
				result.Skipped++
				continue
			}

			warehouseID, matched := warehouses.Resolve(row.WarehouseLabel)
			if !matched {
				result.Warnings = append(result.Warnings, dto.RowWarning{
					Row:            row.Row,
					ProductCode:    row.ProductCode,
					WarehouseLabel: row.WarehouseLabel,
					Reason:         ReasonWarehouseNotFound,
				})
			}

			// Lock the row now so the snapshot and the ledger write see the
			// same quantity even with concurrent writers on this pair.
			current, err := repos.Items.GetForUpdate(product.ID, warehouseID)
			if err != nil {
				return err
			}
			oldQty := decimal.Zero
			if current != nil {
				oldQty = current.OnHand
			}

			item := &entity.StockAdjustmentItem{
				ID:           uuid.New().String(),
				AdjustmentID: header.ID,
				ProductID:    product.ID,
				WarehouseID:  warehouseID,
				OldQuantity:  oldQty,
				NewQuantity:  row.Quantity,
				Price:        row.Price,
				Currency:     row.Currency,
				ShelfNumber:  row.ShelfNumber,
				PackList:     row.PackList,
				ReceivingNo:  row.ReceivingNo,
				Supplier:     row.Supplier,
			}
			if err := repos.Adjustments.CreateItem(item); err != nil {
				return err
			}

			// Spreadsheet counts are absolute; the ledger contract is delta-based.
			if _, err := r.ledger.ApplyMovement(repos.Items, repos.Movements, ledger.MovementInput{
				ProductID:     product.ID,
				WarehouseID:   warehouseID,
				Type:          entity.MovementTypeAdjustment,
				DeltaOnHand:   row.Quantity.Sub(oldQty),
				DeltaReserved: decimal.Zero,
				SourceDocKind: entity.DocKindStockAdjustment,
				SourceDocID:   header.ID,
				ReferenceNo:   row.ReceivingNo,
				OccurredAt:    occurredAt,
				ShelfNumber:   row.ShelfNumber,
				PackList:      row.PackList,
				ReceivingNo:   row.ReceivingNo,
				Supplier:      row.Supplier,
			}); err != nil {
				return err
			}
			result.Processed++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Info().
		Str("adjustment_id", result.AdjustmentID).
		Int("processed", result.Processed).
		Int("skipped", result.Skipped).
		Msg("stock adjustment batch reconciled")
	return result, nil
}
