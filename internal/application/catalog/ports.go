package catalog

import (
	"context"

	"github.com/jhoicas/Abasto-api/internal/domain/repository"
)

// TxRunner ejecuta la creación de producto + posición inicial dentro de una
// transacción de BD: ambas filas quedan, o ninguna.
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		invRepo repository.InventoryRepository,
	) error) error
}
