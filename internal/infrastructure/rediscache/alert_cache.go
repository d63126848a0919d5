package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Abasto-api/internal/application/alerts"
	"github.com/jhoicas/Abasto-api/internal/application/dto"
	"github.com/jhoicas/Abasto-api/internal/application/inventory"
)

const lowStockKeyPrefix = "alerts:lowstock:"

var (
	_ alerts.AlertCache               = (*AlertCache)(nil)
	_ inventory.AlertCacheInvalidator = (*AlertCache)(nil)
)

// AlertCache implementación en Redis del caché de alertas por empresa.
// Una entrada por empresa, serializada como JSON, con TTL corto.
type AlertCache struct {
	rdb *redis.Client
}

// NewAlertCache construye el adaptador de caché sobre un cliente Redis ya conectado.
func NewAlertCache(rdb *redis.Client) *AlertCache {
	return &AlertCache{rdb: rdb}
}

// Get recupera la respuesta cacheada de una empresa. Devuelve (nil, nil) en cache miss.
func (c *AlertCache) Get(ctx context.Context, companyID int64) (*dto.LowStockAlertsResponse, error) {
	payload, err := c.rdb.Get(ctx, lowStockKey(companyID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get alerts: %w", err)
	}
	var resp dto.LowStockAlertsResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		// Entrada corrupta: se trata como miss y se deja expirar.
		return nil, nil
	}
	return &resp, nil
}

// Set guarda la respuesta de una empresa con el TTL dado.
func (c *AlertCache) Set(ctx context.Context, companyID int64, resp *dto.LowStockAlertsResponse, ttl time.Duration) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal alerts for cache: %w", err)
	}
	if err := c.rdb.Set(ctx, lowStockKey(companyID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set alerts: %w", err)
	}
	return nil
}

// Invalidate borra la entrada de una empresa. Se llama tras confirmar un ajuste
// de inventario para que la siguiente consulta recalcule.
func (c *AlertCache) Invalidate(ctx context.Context, companyID int64) error {
	if err := c.rdb.Del(ctx, lowStockKey(companyID)).Err(); err != nil {
		return fmt.Errorf("redis del alerts: %w", err)
	}
	return nil
}

func lowStockKey(companyID int64) string {
	return fmt.Sprintf("%s%d", lowStockKeyPrefix, companyID)
}
