package repository

import (
	"context"

	"github.com/jhoicas/Abasto-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (catálogo global).
// Create asigna el ID generado por la base en product.ID.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}
