package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Abasto-api/internal/domain/entity"
	"github.com/jhoicas/Abasto-api/internal/domain/repository"
)

var _ repository.ProductTypeRepository = (*ProductTypeRepo)(nil)

// ProductTypeRepo implementación del puerto ProductTypeRepository sobre PostgreSQL.
type ProductTypeRepo struct {
	q Querier
}

// NewProductTypeRepository construye el adaptador. Acepta pool o tx (Querier).
func NewProductTypeRepository(q Querier) *ProductTypeRepo {
	return &ProductTypeRepo{q: q}
}

// GetByID obtiene un tipo de producto por ID.
func (r *ProductTypeRepo) GetByID(ctx context.Context, id int64) (*entity.ProductType, error) {
	var t entity.ProductType
	err := r.q.QueryRow(ctx,
		`SELECT id, name, low_stock_threshold, created_at FROM product_types WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.LowStockThreshold, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product type: %w", err)
	}
	return &t, nil
}

// List lista tipos de producto con paginación.
func (r *ProductTypeRepo) List(ctx context.Context, limit, offset int) ([]*entity.ProductType, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, low_stock_threshold, created_at FROM product_types ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list product types: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductType
	for rows.Next() {
		var t entity.ProductType
		if err := rows.Scan(&t.ID, &t.Name, &t.LowStockThreshold, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product type: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
