package dto

import (
	"encoding/json"
	"time"
)

// RegisterAdjustmentRequest body para POST /api/inventory/adjustments.
// Delta es el cambio firmado de cantidad (negativo = salida).
type RegisterAdjustmentRequest struct {
	ProductID   json.Number `json:"product_id"`
	WarehouseID json.Number `json:"warehouse_id"`
	Delta       json.Number `json:"delta"`
	Reason      string      `json:"reason,omitempty"`
}

// AdjustmentResponse respuesta de un ajuste aplicado (201).
type AdjustmentResponse struct {
	Message     string `json:"message"`
	InventoryID string `json:"inventory_id"`
	OldQuantity int64  `json:"old_quantity"`
	NewQuantity int64  `json:"new_quantity"`
}

// InventoryRowResponse posición de inventario con su producto resuelto.
type InventoryRowResponse struct {
	InventoryID string    `json:"inventory_id"`
	ProductID   string    `json:"product_id"`
	SKU         string    `json:"sku"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WarehouseInventoryResponse posiciones de una bodega.
type WarehouseInventoryResponse struct {
	Items []InventoryRowResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// InventoryChangeResponse un cambio del historial de una posición.
type InventoryChangeResponse struct {
	ID          string    `json:"id"`
	InventoryID string    `json:"inventory_id"`
	ChangedAt   time.Time `json:"changed_at"`
	OldQuantity int64     `json:"old_quantity"`
	NewQuantity int64     `json:"new_quantity"`
	Reason      *string   `json:"reason"`
}

// InventoryChangeListResponse historial paginado, más reciente primero.
type InventoryChangeListResponse struct {
	Items []InventoryChangeResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
