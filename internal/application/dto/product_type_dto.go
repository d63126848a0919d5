package dto

import "time"

// ProductTypeResponse salida de un tipo de producto.
type ProductTypeResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	CreatedAt         time.Time `json:"created_at"`
}

// ProductTypeListResponse lista paginada de tipos.
type ProductTypeListResponse struct {
	Items []ProductTypeResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
