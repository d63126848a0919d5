package inventory

import (
	"context"

	"github.com/jhoicas/Abasto-api/internal/domain"
	"github.com/jhoicas/Abasto-api/internal/domain/entity"
	"github.com/jhoicas/Abasto-api/internal/domain/repository"
)

// QueryUseCase lecturas de posiciones e historial (sin transacción).
type QueryUseCase struct {
	invRepo       repository.InventoryRepository
	changeRepo    repository.InventoryChangeRepository
	warehouseRepo repository.WarehouseRepository
}

// NewQueryUseCase construye el caso de uso de consultas de inventario.
func NewQueryUseCase(
	invRepo repository.InventoryRepository,
	changeRepo repository.InventoryChangeRepository,
	warehouseRepo repository.WarehouseRepository,
) *QueryUseCase {
	return &QueryUseCase{
		invRepo:       invRepo,
		changeRepo:    changeRepo,
		warehouseRepo: warehouseRepo,
	}
}

// ListWarehouseInventory posiciones de una bodega con su producto resuelto en un
// solo join (nunca una consulta por fila).
func (uc *QueryUseCase) ListWarehouseInventory(ctx context.Context, warehouseID int64, limit, offset int) ([]repository.WarehouseStockRow, error) {
	warehouse, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	return uc.invRepo.ListByWarehouse(ctx, warehouseID, limit, offset)
}

// ListChanges historial de cambios de una posición, más reciente primero.
func (uc *QueryUseCase) ListChanges(ctx context.Context, inventoryID int64, limit, offset int) ([]*entity.InventoryChange, error) {
	pos, err := uc.invRepo.GetByID(ctx, inventoryID)
	if err != nil {
		return nil, err
	}
	if pos == nil {
		return nil, domain.ErrNotFound
	}
	return uc.changeRepo.ListByInventory(ctx, inventoryID, limit, offset)
}
