package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/application/dto"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/entity"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/repository"
)

// InventoryHandler serves read-only stock positions and movement history.
type InventoryHandler struct {
	items     repository.InventoryItemRepository
	movements repository.StockMovementRepository
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(items repository.InventoryItemRepository, movements repository.StockMovementRepository) *InventoryHandler {
	return &InventoryHandler{items: items, movements: movements}
}

// ListItems godoc
// @Summary      Current stock positions
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "filter by product"
// @Param        warehouse_id  query  string  false  "filter by warehouse"
// @Success      200  {array}   dto.InventoryItemDTO
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid paging"})
	}
	page.DefaultPage()

	items, err := h.items.List(c.Query("product_id"), c.Query("warehouse_id"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out := make([]dto.InventoryItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.InventoryItemDTO{
			ProductID:   it.ProductID,
			WarehouseID: it.WarehouseID,
			OnHand:      it.OnHand,
			Reserved:    it.Reserved,
			Available:   it.Available(),
			ShelfNumber: it.ShelfNumber,
			UpdatedAt:   it.UpdatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// ListMovements godoc
// @Summary      Movement ledger history
// @Description  Filter by product/warehouse and time window, or fetch the
//               full trail of one source document (e.g. a purchase order's
//               receive history with shelf/pack/date).
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id       query  string  false  "filter by product"
// @Param        warehouse_id     query  string  false  "filter by warehouse"
// @Param        source_doc_kind  query  string  false  "stock_adjustment | purchase_order"
// @Param        source_doc_id    query  string  false  "source document id"
// @Param        from             query  string  false  "RFC 3339 lower bound"
// @Param        to               query  string  false  "RFC 3339 upper bound"
// @Success      200  {array}   dto.StockMovementDTO
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid paging"})
	}
	page.DefaultPage()

	var (
		movements []*entity.StockMovement
		err       error
	)
	if kind, docID := c.Query("source_doc_kind"), c.Query("source_doc_id"); kind != "" && docID != "" {
		movements, err = h.movements.ListBySourceDocument(kind, docID)
	} else {
		var from, to *time.Time
		if raw := c.Query("from"); raw != "" {
			if t, perr := time.Parse(time.RFC3339, raw); perr == nil {
				from = &t
			}
		}
		if raw := c.Query("to"); raw != "" {
			if t, perr := time.Parse(time.RFC3339, raw); perr == nil {
				to = &t
			}
		}
		movements, err = h.movements.List(c.Query("product_id"), c.Query("warehouse_id"), from, to, page.Limit, page.Offset)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out := make([]dto.StockMovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.StockMovementDTO{
			ID:             m.ID,
			ProductID:      m.ProductID,
			WarehouseID:    m.WarehouseID,
			Type:           m.Type,
			DeltaOnHand:    m.DeltaOnHand,
			DeltaReserved:  m.DeltaReserved,
			BeforeOnHand:   m.BeforeOnHand,
			AfterOnHand:    m.AfterOnHand,
			BeforeReserved: m.BeforeReserved,
			AfterReserved:  m.AfterReserved,
			SourceDocKind:  m.SourceDocKind,
			SourceDocID:    m.SourceDocID,
			ReferenceNo:    m.ReferenceNo,
			OccurredAt:     m.OccurredAt,
			ShelfNumber:    m.ShelfNumber,
			PackList:       m.PackList,
			ReceivingNo:    m.ReceivingNo,
			Supplier:       m.Supplier,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}
