package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Abasto-api/internal/domain/entity"
)

// LowStockRow es el resultado crudo del join de candidatos bajo umbral:
// posición + producto + bodega + tipo + proveedor resueltos en una sola consulta.
type LowStockRow struct {
	InventoryID   int64
	ProductID     int64
	ProductName   string
	SKU           string
	WarehouseID   int64
	WarehouseName string
	Quantity      int64
	Threshold     int
	SupplierID    *int64
	SupplierName  *string
	SupplierEmail *string
}

// WarehouseStockRow es una posición con los datos del producto resueltos (join explícito).
type WarehouseStockRow struct {
	InventoryID int64
	ProductID   int64
	SKU         string
	ProductName string
	Quantity    int64
	UpdatedAt   time.Time
}

// InventoryRepository define el puerto de persistencia para las posiciones de inventario.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) y sólo tiene sentido dentro de una transacción.
type InventoryRepository interface {
	Create(ctx context.Context, inv *entity.Inventory) error
	GetByID(ctx context.Context, id int64) (*entity.Inventory, error)
	GetByProductAndWarehouse(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error)
	GetForUpdate(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error)
	UpdateQuantity(ctx context.Context, id, quantity int64) error
	ListByWarehouse(ctx context.Context, warehouseID int64, limit, offset int) ([]WarehouseStockRow, error)

	// ListLowStockByCompany devuelve las posiciones de la empresa cuya cantidad está
	// por debajo del umbral de su tipo, ordenadas por mayor déficit primero.
	ListLowStockByCompany(ctx context.Context, companyID int64) ([]LowStockRow, error)
}
