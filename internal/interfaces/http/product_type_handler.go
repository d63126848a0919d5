package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Abasto-api/internal/application/dto"
	"github.com/jhoicas/Abasto-api/internal/application/usecase"
)

// ProductTypeHandler maneja las peticiones HTTP para ProductType.
type ProductTypeHandler struct {
	uc *usecase.ProductTypeUseCase
}

// NewProductTypeHandler construye el handler.
func NewProductTypeHandler(uc *usecase.ProductTypeUseCase) *ProductTypeHandler {
	return &ProductTypeHandler{uc: uc}
}

// List godoc
// @Summary      Listar tipos de producto con su umbral de stock bajo
// @Tags         product-types
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.ProductTypeListResponse
// @Router       /api/product-types [get]
func (h *ProductTypeHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}
	page.Normalize()
	out, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "error interno de almacenamiento"})
	}
	return c.JSON(out)
}
