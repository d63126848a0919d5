package dto

import "time"

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// WarehouseListResponse bodegas de una empresa (sin paginar: el conjunto es pequeño).
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
}
