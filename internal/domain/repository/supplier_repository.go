package repository

import (
	"context"

	"github.com/jhoicas/Abasto-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Supplier, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error)
}
