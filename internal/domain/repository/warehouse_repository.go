package repository

import (
	"context"

	"github.com/jhoicas/Abasto-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse.
type WarehouseRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Warehouse, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*entity.Warehouse, error)
}
