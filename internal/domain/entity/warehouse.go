package entity

import "time"

// Warehouse representa una bodega física de una empresa (multi-bodega).
type Warehouse struct {
	ID        int64
	CompanyID int64
	Name      string
	CreatedAt time.Time
}
