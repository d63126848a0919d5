package repository

import (
	"context"

	"github.com/jhoicas/Abasto-api/internal/domain/entity"
)

// ProductTypeRepository define el puerto de persistencia para ProductType.
type ProductTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.ProductType, error)
	List(ctx context.Context, limit, offset int) ([]*entity.ProductType, error)
}
