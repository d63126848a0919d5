package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Abasto-api/internal/domain/entity"
	"github.com/jhoicas/Abasto-api/internal/domain/repository"
)

var _ repository.InventoryChangeRepository = (*InventoryChangeRepo)(nil)

// InventoryChangeRepo implementación del puerto InventoryChangeRepository sobre PostgreSQL.
// La tabla inventory_changes es de solo inserción: nunca se actualiza ni se borra.
type InventoryChangeRepo struct {
	q Querier
}

// NewInventoryChangeRepository construye el adaptador de persistencia para el historial de cambios.
func NewInventoryChangeRepository(q Querier) *InventoryChangeRepo {
	return &InventoryChangeRepo{q: q}
}

// Create registra un cambio de cantidad; la base genera el ID (RETURNING id).
// Un reason vacío se guarda como NULL.
func (r *InventoryChangeRepo) Create(ctx context.Context, change *entity.InventoryChange) error {
	query := `
		INSERT INTO inventory_changes (inventory_id, changed_at, old_quantity, new_quantity, reason)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		change.InventoryID, change.ChangedAt, change.OldQuantity, change.NewQuantity, change.Reason,
	).Scan(&change.ID)
	if err != nil {
		return fmt.Errorf("insert inventory change: %w", err)
	}
	return nil
}

// ListByInventory lista el historial de una posición, lo más reciente primero.
func (r *InventoryChangeRepo) ListByInventory(ctx context.Context, inventoryID int64, limit, offset int) ([]*entity.InventoryChange, error) {
	query := `
		SELECT id, inventory_id, changed_at, old_quantity, new_quantity, COALESCE(reason, '')
		FROM inventory_changes
		WHERE inventory_id = $1
		ORDER BY changed_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, inventoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory changes: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryChange
	for rows.Next() {
		var ch entity.InventoryChange
		if err := rows.Scan(&ch.ID, &ch.InventoryID, &ch.ChangedAt, &ch.OldQuantity,
			&ch.NewQuantity, &ch.Reason); err != nil {
			return nil, fmt.Errorf("scan inventory change: %w", err)
		}
		list = append(list, &ch)
	}
	return list, rows.Err()
}

// DecreaseStatsSince agrega, por posición, los decrementos registrados desde la fecha dada:
// cuántos hubo y cuánto bajó la cantidad en promedio. Un decremento es todo cambio con
// new_quantity < old_quantity; si reasons no está vacío, solo cuentan los de esos motivos.
// Posiciones sin decrementos en la ventana no aparecen en el mapa.
func (r *InventoryChangeRepo) DecreaseStatsSince(ctx context.Context, inventoryIDs []int64, since time.Time, reasons []string) (map[int64]repository.DecreaseStats, error) {
	stats := make(map[int64]repository.DecreaseStats, len(inventoryIDs))
	if len(inventoryIDs) == 0 {
		return stats, nil
	}

	query := `
		SELECT inventory_id, COUNT(*), AVG((old_quantity - new_quantity)::numeric)
		FROM inventory_changes
		WHERE inventory_id = ANY($1)
		  AND changed_at >= $2
		  AND new_quantity < old_quantity`
	args := []any{inventoryIDs, since}
	if len(reasons) > 0 {
		query += ` AND reason = ANY($3)`
		args = append(args, reasons)
	}
	query += ` GROUP BY inventory_id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate decrease stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var s repository.DecreaseStats
		if err := rows.Scan(&id, &s.Count, &s.AvgDepletion); err != nil {
			return nil, fmt.Errorf("scan decrease stats: %w", err)
		}
		stats[id] = s
	}
	return stats, rows.Err()
}
