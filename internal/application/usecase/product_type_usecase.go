package usecase

import (
	"context"
	"strconv"

	"github.com/jhoicas/Abasto-api/internal/application/dto"
	"github.com/jhoicas/Abasto-api/internal/domain/repository"
)

// ProductTypeUseCase lecturas del recurso ProductType.
type ProductTypeUseCase struct {
	repo repository.ProductTypeRepository
}

// NewProductTypeUseCase construye el caso de uso.
func NewProductTypeUseCase(repo repository.ProductTypeRepository) *ProductTypeUseCase {
	return &ProductTypeUseCase{repo: repo}
}

// List lista tipos de producto con su umbral de stock bajo.
func (uc *ProductTypeUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductTypeListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductTypeResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.ProductTypeResponse{
			ID:                strconv.FormatInt(t.ID, 10),
			Name:              t.Name,
			LowStockThreshold: t.LowStockThreshold,
			CreatedAt:         t.CreatedAt,
		})
	}
	return &dto.ProductTypeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
