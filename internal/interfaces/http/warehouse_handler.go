package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/application/dto"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain/repository"
)

// WarehouseHandler read-only warehouse listing (master data owned elsewhere).
type WarehouseHandler struct {
	directory repository.WarehouseDirectory
}

// NewWarehouseHandler builds the handler.
func NewWarehouseHandler(directory repository.WarehouseDirectory) *WarehouseHandler {
	return &WarehouseHandler{directory: directory}
}

// List godoc
// @Summary      List warehouses
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  map[string]any
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid paging"})
	}
	page.DefaultPage()

	warehouses, err := h.directory.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(warehouses), "warehouses": warehouses})
}
