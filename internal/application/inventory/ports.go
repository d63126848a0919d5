package inventory

import (
	"context"

	"github.com/jhoicas/Abasto-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que la mutación de la posición y su cambio histórico
// se confirmen juntos o no se confirmen (ledger + historial siempre en pareja).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		changeRepo repository.InventoryChangeRepository,
	) error) error
}

// AlertCacheInvalidator descarta la caché de alertas de una empresa después de
// confirmar un ajuste. La implementación puede ser nil si no hay caché configurada.
type AlertCacheInvalidator interface {
	Invalidate(ctx context.Context, companyID int64) error
}
