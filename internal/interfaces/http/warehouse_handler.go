package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Abasto-api/internal/application/dto"
	"github.com/jhoicas/Abasto-api/internal/application/inventory"
	"github.com/jhoicas/Abasto-api/internal/application/usecase"
	"github.com/jhoicas/Abasto-api/internal/domain"
)

// WarehouseHandler maneja las peticiones HTTP para Warehouse.
type WarehouseHandler struct {
	uc       *usecase.WarehouseUseCase
	invQuery *inventory.QueryUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase, invQuery *inventory.QueryUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc, invQuery: invQuery}
}

// GetByID godoc
// @Summary      Obtener bodega por ID
// @Tags         warehouses
// @Produce      json
// @Param        id   path  int  true  "ID de la bodega"
// @Success      200  {object}  dto.WarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bodega no encontrada"})
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "error interno de almacenamiento"})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bodega no encontrada"})
	}
	return c.JSON(out)
}

// ListInventory godoc
// @Summary      Inventario de una bodega
// @Description  Posiciones de la bodega con su producto resuelto en un solo join.
// @Tags         warehouses
// @Produce      json
// @Param        id      path   int  true   "ID de la bodega"
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.WarehouseInventoryResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/inventory [get]
func (h *WarehouseHandler) ListInventory(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bodega no encontrada"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}
	page.Normalize()

	rows, err := h.invQuery.ListWarehouseInventory(c.Context(), id, page.Limit, page.Offset)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bodega no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "error interno de almacenamiento"})
	}

	items := make([]dto.InventoryRowResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.InventoryRowResponse{
			InventoryID: strconv.FormatInt(row.InventoryID, 10),
			ProductID:   strconv.FormatInt(row.ProductID, 10),
			SKU:         row.SKU,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			UpdatedAt:   row.UpdatedAt,
		})
	}
	return c.JSON(dto.WarehouseInventoryResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}
