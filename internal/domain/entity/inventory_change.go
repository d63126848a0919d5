package entity

import "time"

// Razones de cambio de inventario.
const (
	ReasonSale       = "sale"
	ReasonRestock    = "restock"
	ReasonWriteOff   = "write_off"
	ReasonAdjustment = "adjustment"
)

// InventoryChange representa un cambio histórico de cantidad sobre una posición
// de inventario. La tabla es append-only: nunca se actualiza ni se borra.
type InventoryChange struct {
	ID          int64
	InventoryID int64
	ChangedAt   time.Time
	OldQuantity int64
	NewQuantity int64
	Reason      string // vacío si el cambio no fue clasificado
}
