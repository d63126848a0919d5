package usecase

import (
	"context"
	"strconv"

	"github.com/jhoicas/Abasto-api/internal/application/dto"
	"github.com/jhoicas/Abasto-api/internal/domain/entity"
	"github.com/jhoicas/Abasto-api/internal/domain/repository"
)

// ProductUseCase lecturas del catálogo de productos. La creación vive en
// el paquete catalog porque es transaccional (producto + posición inicial).
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return entityToProductResponse(product), nil
}

// List lista productos del catálogo con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *entityToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToProductResponse(p *entity.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:        strconv.FormatInt(p.ID, 10),
		Name:      p.Name,
		SKU:       p.SKU,
		Price:     p.Price,
		IsBundle:  p.IsBundle,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.SupplierID != nil {
		id := strconv.FormatInt(*p.SupplierID, 10)
		resp.SupplierID = &id
	}
	if p.TypeID != nil {
		id := strconv.FormatInt(*p.TypeID, 10)
		resp.TypeID = &id
	}
	return resp
}
