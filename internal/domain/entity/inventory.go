package entity

import "time"

// Inventory representa la posición de stock de un producto en una bodega.
// Quantity nunca es negativa; cada mutación registra un InventoryChange
// en la misma transacción.
type Inventory struct {
	ID          int64
	ProductID   int64
	WarehouseID int64
	Quantity    int64
	UpdatedAt   time.Time
}
