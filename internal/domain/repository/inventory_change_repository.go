package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Abasto-api/internal/domain/entity"
)

// DecreaseStats agrega la actividad de salida reciente de una posición:
// cuántos cambios a la baja hubo y el promedio de unidades por cambio.
type DecreaseStats struct {
	Count        int64
	AvgDepletion decimal.Decimal
}

// InventoryChangeRepository define el puerto del historial de cambios (append-only).
type InventoryChangeRepository interface {
	Create(ctx context.Context, change *entity.InventoryChange) error
	ListByInventory(ctx context.Context, inventoryID int64, limit, offset int) ([]*entity.InventoryChange, error)

	// DecreaseStatsSince agrega en una sola consulta los cambios a la baja
	// (new_quantity < old_quantity) desde `since` para todas las posiciones dadas.
	// Si reasons no está vacío, sólo cuentan los cambios con una de esas razones.
	// Las posiciones sin cambios que califiquen no aparecen en el mapa.
	DecreaseStatsSince(ctx context.Context, inventoryIDs []int64, since time.Time, reasons []string) (map[int64]DecreaseStats, error)
}
