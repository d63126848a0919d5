package entity

import "time"

// Supplier representa un proveedor al que se le puede reordenar producto.
// ContactEmail puede estar vacío si el proveedor no registró correo.
type Supplier struct {
	ID           int64
	Name         string
	ContactEmail string
	CreatedAt    time.Time
}
