package http

import (
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/application/dto"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/application/reconcile"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/infrastructure/spreadsheet"
)

// ReconcileHandler serves the two reconciliation operations: spreadsheet
// stock-count imports and purchase receipts.
type ReconcileHandler struct {
	adjustments *reconcile.StockAdjustmentReconciler
	receipts    *reconcile.PurchaseReceiptReconciler
	reader      *spreadsheet.AdjustmentReader
}

// NewReconcileHandler builds the handler.
func NewReconcileHandler(
	adjustments *reconcile.StockAdjustmentReconciler,
	receipts *reconcile.PurchaseReceiptReconciler,
	reader *spreadsheet.AdjustmentReader,
) *ReconcileHandler {
	return &ReconcileHandler{adjustments: adjustments, receipts: receipts, reader: reader}
}

// ImportAdjustments godoc
// @Summary      Import a stock-count correction spreadsheet
// @Tags         inventory
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file         formData  file    true   "xlsx workbook"
// @Param        date         formData  string  false  "count date (RFC 3339)"
// @Param        description  formData  string  false  "batch description"
// @Success      200  {object}  dto.AdjustmentResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments/import [post]
func (h *ReconcileHandler) ImportAdjustments(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "file field required"})
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "could not open upload"})
	}
	defer src.Close()

	rows, err := h.reader.Parse(src)
	if err != nil {
		var readErr *domain.DocumentReadError
		if errors.As(err, &readErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "DOCUMENT_READ", Message: readErr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	date := time.Now()
	if raw := c.FormValue("date"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			date = parsed
		}
	}

	result, err := h.adjustments.Reconcile(c.Context(), dto.AdjustmentInput{
		Date:        date,
		Description: c.FormValue("description"),
		Rows:        rows,
	})
	if err != nil {
		return reconcileError(c, err)
	}
	return c.JSON(result)
}

// ReceiveAgainstOrder godoc
// @Summary      Reconcile a vendor invoice against a purchase order
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path  string  true  "purchase order id"
// @Success      200  {object}  dto.ReceiptResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receipts [post]
func (h *ReconcileHandler) ReceiveAgainstOrder(c *fiber.Ctx) error {
	var in dto.ReceiptInput

	// Multipart carries the JSON payload next to the optional attachment;
	// a plain JSON body is accepted as well.
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if err := json.Unmarshal([]byte(c.FormValue("payload")), &in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid payload field"})
		}
		if fileHeader, err := c.FormFile("file"); err == nil {
			src, err := fileHeader.Open()
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "could not open upload"})
			}
			data, err := io.ReadAll(src)
			src.Close()
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "could not read upload"})
			}
			in.Attachment = data
			in.AttachmentExt = strings.TrimPrefix(filepath.Ext(fileHeader.Filename), ".")
		}
	} else if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}

	in.PurchaseOrderID = c.Params("id")

	result, err := h.receipts.Reconcile(c.Context(), in)
	if err != nil {
		return reconcileError(c, err)
	}
	return c.JSON(result)
}

// reconcileError maps domain errors to HTTP statuses.
func reconcileError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrReferenceNotFound), errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrFileTypeNotAllowed):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "FILE_TYPE", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
