package alerts

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/Abasto-api/internal/application/dto"
	"github.com/jhoicas/Abasto-api/internal/domain"
	"github.com/jhoicas/Abasto-api/internal/domain/alerting"
	"github.com/jhoicas/Abasto-api/internal/domain/repository"
)

// Placeholder cuando el producto no tiene proveedor asignado.
const noSupplierName = "Sin proveedor"

// Ventana por defecto de actividad reciente (días).
const defaultWindowDays = 30

// Config parámetros del motor de alertas.
type Config struct {
	WindowDays  int           // ventana de actividad reciente; <=0 usa 30
	SaleReasons []string      // razones que cuentan como venta; vacío = cualquier baja
	CacheTTL    time.Duration // TTL de la caché de respuestas; <=0 desactiva el Set
}

// LowStockUseCase calcula las alertas de stock bajo de una empresa: posiciones por
// debajo del umbral de su tipo, con salidas en la ventana reciente, proyección de
// agotamiento y proveedor al que reordenar.
type LowStockUseCase struct {
	companyRepo repository.CompanyRepository
	invRepo     repository.InventoryRepository
	changeRepo  repository.InventoryChangeRepository
	cache       AlertCache
	cfg         Config
}

// NewLowStockUseCase construye el motor de alertas. cache puede ser nil.
func NewLowStockUseCase(
	companyRepo repository.CompanyRepository,
	invRepo repository.InventoryRepository,
	changeRepo repository.InventoryChangeRepository,
	cache AlertCache,
	cfg Config,
) *LowStockUseCase {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = defaultWindowDays
	}
	return &LowStockUseCase{
		companyRepo: companyRepo,
		invRepo:     invRepo,
		changeRepo:  changeRepo,
		cache:       cache,
		cfg:         cfg,
	}
}

// GetLowStockAlerts devuelve las alertas de la empresa. Una posición alerta sólo si
// está bajo el umbral de su tipo Y tuvo al menos una salida en la ventana reciente.
// El orden es estable: mayor déficit frente al umbral primero, luego product_id y
// warehouse_id. La lista vacía es una respuesta válida (total_alerts = 0).
func (uc *LowStockUseCase) GetLowStockAlerts(ctx context.Context, companyID int64) (*dto.LowStockAlertsResponse, error) {
	// ── 1. La empresa debe existir ────────────────────────────────────────────
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("alertas: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	// ── 2. Caché (mejor esfuerzo: un fallo de Redis no tumba la consulta) ─────
	if uc.cache != nil {
		if cached, cErr := uc.cache.Get(ctx, companyID); cErr == nil && cached != nil {
			return cached, nil
		}
	}

	// ── 3. Candidatos bajo umbral: un solo join, nunca una consulta por fila ──
	rows, err := uc.invRepo.ListLowStockByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("alertas: candidatos bajo umbral: %w", err)
	}

	// ── 4. Actividad de salida reciente: una sola consulta agregada ───────────
	var stats map[int64]repository.DecreaseStats
	if len(rows) > 0 {
		since := time.Now().UTC().AddDate(0, 0, -uc.cfg.WindowDays)
		stats, err = uc.changeRepo.DecreaseStatsSince(ctx, inventoryIDs(rows), since, uc.cfg.SaleReasons)
		if err != nil {
			return nil, fmt.Errorf("alertas: actividad reciente: %w", err)
		}
	}

	// ── 5. Armar alertas: sin salidas recientes no hay alerta ─────────────────
	resp := &dto.LowStockAlertsResponse{Alerts: []dto.LowStockAlertDTO{}}
	for _, row := range rows {
		st, ok := stats[row.InventoryID]
		if !ok || st.Count == 0 {
			continue
		}
		resp.Alerts = append(resp.Alerts, dto.LowStockAlertDTO{
			ProductID:         strconv.FormatInt(row.ProductID, 10),
			ProductName:       row.ProductName,
			SKU:               row.SKU,
			WarehouseID:       strconv.FormatInt(row.WarehouseID, 10),
			WarehouseName:     row.WarehouseName,
			CurrentStock:      row.Quantity,
			Threshold:         row.Threshold,
			DaysUntilStockout: alerting.DaysUntilStockout(row.Quantity, st.AvgDepletion),
			Supplier:          supplierInfo(row),
		})
	}
	resp.TotalAlerts = len(resp.Alerts)

	// ── 6. Dejar en caché para las siguientes consultas ───────────────────────
	if uc.cache != nil && uc.cfg.CacheTTL > 0 {
		_ = uc.cache.Set(ctx, companyID, resp, uc.cfg.CacheTTL)
	}
	return resp, nil
}

func inventoryIDs(rows []repository.LowStockRow) []int64 {
	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.InventoryID
	}
	return ids
}

// supplierInfo arma la identidad del proveedor de la alerta; el campo siempre va,
// con placeholder cuando el producto no tiene proveedor.
func supplierInfo(row repository.LowStockRow) dto.SupplierInfoDTO {
	if row.SupplierID == nil {
		return dto.SupplierInfoDTO{Name: noSupplierName}
	}
	id := strconv.FormatInt(*row.SupplierID, 10)
	info := dto.SupplierInfoDTO{ID: &id}
	if row.SupplierName != nil {
		info.Name = *row.SupplierName
	}
	if row.SupplierEmail != nil && *row.SupplierEmail != "" {
		info.ContactEmail = row.SupplierEmail
	}
	return info
}
