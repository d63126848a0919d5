package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// Los campos numéricos llegan como json.Number para poder validar tipo y rango
// con nombre de campo (acepta número JSON o string numérico, p.ej. "19.99").
type CreateProductRequest struct {
	Name            string      `json:"name"`
	SKU             string      `json:"sku"`
	Price           json.Number `json:"price"`
	WarehouseID     json.Number `json:"warehouse_id"`
	InitialQuantity json.Number `json:"initial_quantity"`
	SupplierID      json.Number `json:"supplier_id"`
	TypeID          json.Number `json:"type_id"`
	IsBundle        bool        `json:"is_bundle"`
}

// CreateProductResponse respuesta de creación (201).
type CreateProductResponse struct {
	Message   string `json:"message"`
	ProductID string `json:"product_id"`
}

// ProductResponse salida de un producto del catálogo.
type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	Price      decimal.Decimal `json:"price"`
	SupplierID *string         `json:"supplier_id"`
	TypeID     *string         `json:"type_id"`
	IsBundle   bool            `json:"is_bundle"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
