package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo global (SKU único en toda la plataforma).
// El stock se maneja por bodega en Inventory; SupplierID y TypeID son opcionales.
type Product struct {
	ID         int64
	Name       string
	SKU        string
	Price      decimal.Decimal
	SupplierID *int64
	TypeID     *int64
	IsBundle   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
