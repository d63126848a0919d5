package entity

import "time"

// Umbral de stock bajo por defecto cuando no se especifica otro.
const DefaultLowStockThreshold = 10

// ProductType clasifica productos y define el umbral de stock bajo que
// aplica a todas las posiciones de inventario de productos de ese tipo.
type ProductType struct {
	ID                int64
	Name              string
	LowStockThreshold int
	CreatedAt         time.Time
}
