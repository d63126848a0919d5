package entity

import "time"

// Company representa una empresa dueña de bodegas e inventario.
type Company struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
