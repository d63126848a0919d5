package dto

// SupplierInfoDTO identidad del proveedor dentro de una alerta.
// Si el producto no tiene proveedor, ID y ContactEmail van en null
// y Name lleva el placeholder "Sin proveedor"; el campo siempre está presente.
type SupplierInfoDTO struct {
	ID           *string `json:"id"`
	Name         string  `json:"name"`
	ContactEmail *string `json:"contact_email"`
}

// LowStockAlertDTO una posición bajo el umbral de su tipo, con proyección de agotamiento.
type LowStockAlertDTO struct {
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	SKU               string          `json:"sku"`
	WarehouseID       string          `json:"warehouse_id"`
	WarehouseName     string          `json:"warehouse_name"`
	CurrentStock      int64           `json:"current_stock"`
	Threshold         int             `json:"threshold"`
	DaysUntilStockout int             `json:"days_until_stockout"` // 999 si no hay proyección
	Supplier          SupplierInfoDTO `json:"supplier"`
}

// LowStockAlertsResponse respuesta de GET /api/companies/:id/alerts/low-stock.
type LowStockAlertsResponse struct {
	Alerts      []LowStockAlertDTO `json:"alerts"`
	TotalAlerts int                `json:"total_alerts"`
}
