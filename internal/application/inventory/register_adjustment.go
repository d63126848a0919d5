package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Abasto-api/internal/domain"
	"github.com/jhoicas/Abasto-api/internal/domain/entity"
	"github.com/jhoicas/Abasto-api/internal/domain/repository"
)

// Razones aceptadas en un ajuste. Vacío también es válido (cambio sin clasificar).
var validReasons = map[string]bool{
	entity.ReasonSale:       true,
	entity.ReasonRestock:    true,
	entity.ReasonWriteOff:   true,
	entity.ReasonAdjustment: true,
}

// AdjustmentInput entrada tipada para registrar un ajuste de inventario.
type AdjustmentInput struct {
	ProductID   int64
	WarehouseID int64
	Delta       int64 // cambio firmado: negativo = salida
	Reason      string
}

// AdjustmentResult cantidades antes/después de un ajuste confirmado.
type AdjustmentResult struct {
	InventoryID int64
	OldQuantity int64
	NewQuantity int64
}

// RegisterAdjustmentUseCase aplica ajustes de cantidad sobre una posición de inventario
// de forma transaccional: bloquea la fila (SELECT FOR UPDATE), actualiza la cantidad y
// registra el InventoryChange en la misma transacción (Commit/Rollback).
type RegisterAdjustmentUseCase struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
	cache         AlertCacheInvalidator
}

// NewRegisterAdjustmentUseCase construye el caso de uso. cache puede ser nil.
func NewRegisterAdjustmentUseCase(
	txRunner TxRunner,
	warehouseRepo repository.WarehouseRepository,
	cache AlertCacheInvalidator,
) *RegisterAdjustmentUseCase {
	return &RegisterAdjustmentUseCase{
		txRunner:      txRunner,
		warehouseRepo: warehouseRepo,
		cache:         cache,
	}
}

// RegisterAdjustment valida la entrada, aplica el ajuste dentro de una transacción y
// devuelve las cantidades antes/después. La cantidad resultante nunca puede quedar
// negativa. Tras confirmar, invalida la caché de alertas de la empresa dueña de la
// bodega (mejor esfuerzo).
func (uc *RegisterAdjustmentUseCase) RegisterAdjustment(ctx context.Context, input AdjustmentInput) (*AdjustmentResult, error) {
	if input.Delta == 0 {
		return nil, domain.NewValidationError("el ajuste no puede ser cero", "delta")
	}
	if input.Reason != "" && !validReasons[input.Reason] {
		return nil, domain.NewValidationError("razón desconocida", "reason")
	}

	// Validar que la bodega exista antes de abrir la transacción
	warehouse, err := uc.warehouseRepo.GetByID(ctx, input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now().UTC()
	var result AdjustmentResult

	err = uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		changeRepo repository.InventoryChangeRepository,
	) error {
		// Bloquea la fila de la posición para evitar condiciones de carrera
		pos, err := invRepo.GetForUpdate(ctx, input.ProductID, input.WarehouseID)
		if err != nil {
			return err
		}
		if pos == nil {
			return domain.ErrNotFound
		}

		newQty := pos.Quantity + input.Delta
		if newQty < 0 {
			return domain.ErrInsufficientStock
		}

		if err := invRepo.UpdateQuantity(ctx, pos.ID, newQty); err != nil {
			return err
		}
		change := &entity.InventoryChange{
			InventoryID: pos.ID,
			ChangedAt:   now,
			OldQuantity: pos.Quantity,
			NewQuantity: newQty,
			Reason:      input.Reason,
		}
		if err := changeRepo.Create(ctx, change); err != nil {
			return err
		}

		result = AdjustmentResult{
			InventoryID: pos.ID,
			OldQuantity: pos.Quantity,
			NewQuantity: newQty,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// La caché de la empresa queda obsoleta tras el ajuste
	if uc.cache != nil {
		_ = uc.cache.Invalidate(ctx, warehouse.CompanyID)
	}
	return &result, nil
}
