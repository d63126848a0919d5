package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Abasto-api/internal/domain"
	"github.com/jhoicas/Abasto-api/internal/domain/entity"
	"github.com/jhoicas/Abasto-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de persistencia para posiciones de inventario.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create persiste una posición nueva; la base genera el ID (RETURNING id).
func (r *InventoryRepo) Create(ctx context.Context, position *entity.Inventory) error {
	query := `
		INSERT INTO inventory (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		position.ProductID, position.WarehouseID, position.Quantity, position.UpdatedAt,
	).Scan(&position.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe posición para el producto %d en la bodega %d",
				domain.ErrDuplicate, position.ProductID, position.WarehouseID)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: product_id o warehouse_id desconocido", domain.ErrInvalidReference)
		}
		return fmt.Errorf("insert inventory position: %w", err)
	}
	return nil
}

// GetByID obtiene una posición por ID.
func (r *InventoryRepo) GetByID(ctx context.Context, id int64) (*entity.Inventory, error) {
	query := `
		SELECT id, product_id, warehouse_id, quantity, updated_at
		FROM inventory WHERE id = $1`
	var pos entity.Inventory
	err := r.q.QueryRow(ctx, query, id).Scan(
		&pos.ID, &pos.ProductID, &pos.WarehouseID, &pos.Quantity, &pos.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory position: %w", err)
	}
	return &pos, nil
}

// GetByProductAndWarehouse obtiene la posición de un producto en una bodega concreta.
func (r *InventoryRepo) GetByProductAndWarehouse(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error) {
	query := `
		SELECT id, product_id, warehouse_id, quantity, updated_at
		FROM inventory WHERE product_id = $1 AND warehouse_id = $2`
	var pos entity.Inventory
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&pos.ID, &pos.ProductID, &pos.WarehouseID, &pos.Quantity, &pos.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory position: %w", err)
	}
	return &pos, nil
}

// GetForUpdate obtiene la posición bloqueando la fila (FOR UPDATE).
// Debe llamarse dentro de una transacción; el lock serializa ajustes concurrentes.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error) {
	query := `
		SELECT id, product_id, warehouse_id, quantity, updated_at
		FROM inventory WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var pos entity.Inventory
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&pos.ID, &pos.ProductID, &pos.WarehouseID, &pos.Quantity, &pos.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock inventory position: %w", err)
	}
	return &pos, nil
}

// UpdateQuantity fija la cantidad de una posición ya bloqueada.
func (r *InventoryRepo) UpdateQuantity(ctx context.Context, id, quantity int64) error {
	query := `UPDATE inventory SET quantity = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, quantity)
	if err != nil {
		return fmt.Errorf("update inventory quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: posición de inventario %d", domain.ErrNotFound, id)
	}
	return nil
}

// ListByWarehouse lista las posiciones de una bodega con datos del producto, paginadas.
func (r *InventoryRepo) ListByWarehouse(ctx context.Context, warehouseID int64, limit, offset int) ([]repository.WarehouseStockRow, error) {
	query := `
		SELECT i.id, p.id, p.sku, p.name, i.quantity, i.updated_at
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.warehouse_id = $1
		ORDER BY p.sku
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouse inventory: %w", err)
	}
	defer rows.Close()
	var list []repository.WarehouseStockRow
	for rows.Next() {
		var row repository.WarehouseStockRow
		if err := rows.Scan(&row.InventoryID, &row.ProductID, &row.SKU, &row.ProductName,
			&row.Quantity, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse inventory: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// ListLowStockByCompany devuelve, en una sola consulta, las posiciones de la compañía
// cuya cantidad está por debajo del umbral de su tipo de producto. El proveedor llega
// por LEFT JOIN (puede no existir). Ordena por déficit descendente para que lo más
// crítico salga primero; los empates se desempatan por producto y bodega.
func (r *InventoryRepo) ListLowStockByCompany(ctx context.Context, companyID int64) ([]repository.LowStockRow, error) {
	query := `
		SELECT i.id, p.id, p.name, p.sku, w.id, w.name, i.quantity,
		       pt.low_stock_threshold, s.id, s.name, s.contact_email
		FROM inventory i
		JOIN warehouses w ON w.id = i.warehouse_id
		JOIN products p ON p.id = i.product_id
		JOIN product_types pt ON pt.id = p.type_id
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		WHERE w.company_id = $1
		  AND i.quantity < pt.low_stock_threshold
		ORDER BY (pt.low_stock_threshold - i.quantity) DESC, p.id, w.id`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.InventoryID, &row.ProductID, &row.ProductName, &row.SKU,
			&row.WarehouseID, &row.WarehouseName, &row.Quantity, &row.Threshold,
			&row.SupplierID, &row.SupplierName, &row.SupplierEmail); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
