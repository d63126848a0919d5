package usecase

import (
	"context"
	"strconv"

	"github.com/jhoicas/Abasto-api/internal/application/dto"
	"github.com/jhoicas/Abasto-api/internal/domain/entity"
	"github.com/jhoicas/Abasto-api/internal/domain/repository"
)

// WarehouseUseCase lecturas del recurso Warehouse.
type WarehouseUseCase struct {
	repo        repository.WarehouseRepository
	companyRepo repository.CompanyRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, companyRepo repository.CompanyRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, companyRepo: companyRepo}
}

// GetByID obtiene una bodega por ID. Devuelve (nil, nil) si no existe.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id int64) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	return entityToWarehouseResponse(warehouse), nil
}

// ListByCompany bodegas de una empresa. Devuelve (nil, nil) si la empresa no existe.
func (uc *WarehouseUseCase) ListByCompany(ctx context.Context, companyID int64) (*dto.WarehouseListResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *entityToWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{Items: items}, nil
}

func entityToWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        strconv.FormatInt(w.ID, 10),
		CompanyID: strconv.FormatInt(w.CompanyID, 10),
		Name:      w.Name,
		CreatedAt: w.CreatedAt,
	}
}
