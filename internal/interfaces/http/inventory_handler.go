package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Abasto-api/internal/application/dto"
	"github.com/jhoicas/Abasto-api/internal/application/inventory"
	"github.com/jhoicas/Abasto-api/internal/domain"
	"github.com/jhoicas/Abasto-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP de ajustes e historial de inventario.
type InventoryHandler struct {
	adjust *inventory.RegisterAdjustmentUseCase
	query  *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(adjust *inventory.RegisterAdjustmentUseCase, query *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{adjust: adjust, query: query}
}

// RegisterAdjustment godoc
// @Summary      Registrar ajuste de inventario
// @Description  Aplica un cambio firmado de cantidad sobre la posición (negativo = salida)
//
//	y registra el cambio en el historial dentro de la misma transacción.
//
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterAdjustmentRequest  true  "product_id, warehouse_id, delta (+ reason opcional: sale, restock, write_off, adjustment)"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) RegisterAdjustment(c *fiber.Ctx) error {
	var in dto.RegisterAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cuerpo inválido"})
	}

	input, vErr := adjustmentInputFromRequest(in)
	if vErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: vErr.Error()})
	}

	result, err := h.adjust.RegisterAdjustment(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "posición de inventario no encontrada"})
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "la cantidad resultante no puede ser negativa"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "error interno de almacenamiento"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AdjustmentResponse{
		Message:     "ajuste registrado",
		InventoryID: strconv.FormatInt(result.InventoryID, 10),
		OldQuantity: result.OldQuantity,
		NewQuantity: result.NewQuantity,
	})
}

// ListChanges godoc
// @Summary      Historial de cambios de una posición
// @Tags         inventory
// @Produce      json
// @Param        id      path   int  true   "ID de la posición de inventario"
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.InventoryChangeListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/changes [get]
func (h *InventoryHandler) ListChanges(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "posición de inventario no encontrada"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}
	page.Normalize()

	changes, err := h.query.ListChanges(c.Context(), id, page.Limit, page.Offset)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "posición de inventario no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "error interno de almacenamiento"})
	}

	items := make([]dto.InventoryChangeResponse, 0, len(changes))
	for _, ch := range changes {
		items = append(items, changeToResponse(ch))
	}
	return c.JSON(dto.InventoryChangeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// adjustmentInputFromRequest coacciona los json.Number del body a la entrada tipada,
// nombrando el campo que no se pudo convertir.
func adjustmentInputFromRequest(in dto.RegisterAdjustmentRequest) (inventory.AdjustmentInput, error) {
	var input inventory.AdjustmentInput
	var missing []string
	if in.ProductID.String() == "" {
		missing = append(missing, "product_id")
	}
	if in.WarehouseID.String() == "" {
		missing = append(missing, "warehouse_id")
	}
	if in.Delta.String() == "" {
		missing = append(missing, "delta")
	}
	if len(missing) > 0 {
		return input, domain.NewValidationError("faltan campos obligatorios", missing...)
	}

	productID, err := in.ProductID.Int64()
	if err != nil || productID <= 0 {
		return input, domain.NewValidationError("debe ser un entero positivo", "product_id")
	}
	warehouseID, err := in.WarehouseID.Int64()
	if err != nil || warehouseID <= 0 {
		return input, domain.NewValidationError("debe ser un entero positivo", "warehouse_id")
	}
	delta, err := in.Delta.Int64()
	if err != nil {
		return input, domain.NewValidationError("debe ser un entero", "delta")
	}

	input = inventory.AdjustmentInput{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Delta:       delta,
		Reason:      in.Reason,
	}
	return input, nil
}

func changeToResponse(ch *entity.InventoryChange) dto.InventoryChangeResponse {
	resp := dto.InventoryChangeResponse{
		ID:          strconv.FormatInt(ch.ID, 10),
		InventoryID: strconv.FormatInt(ch.InventoryID, 10),
		ChangedAt:   ch.ChangedAt,
		OldQuantity: ch.OldQuantity,
		NewQuantity: ch.NewQuantity,
	}
	if ch.Reason != "" {
		reason := ch.Reason
		resp.Reason = &reason
	}
	return resp
}
