package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Abasto-api/internal/application/alerts"
	"github.com/jhoicas/Abasto-api/internal/application/catalog"
	"github.com/jhoicas/Abasto-api/internal/application/inventory"
	"github.com/jhoicas/Abasto-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC     *usecase.CompanyUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	SupplierUC    *usecase.SupplierUseCase
	ProductTypeUC *usecase.ProductTypeUseCase
	ProductUC     *usecase.ProductUseCase
	CreateProduct *catalog.CreateProductUseCase
	Adjustment    *inventory.RegisterAdjustmentUseCase
	InvQuery      *inventory.QueryUseCase
	LowStock      *alerts.LowStockUseCase
	Report        *alerts.ReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Companies y sus alertas
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.WarehouseUC)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Get("/:id/warehouses", companyHandler.ListWarehouses)

	alertHandler := NewAlertHandler(deps.LowStock, deps.Report)
	companies.Get("/:id/alerts/low-stock", alertHandler.GetLowStock)
	companies.Get("/:id/alerts/low-stock/report", alertHandler.DownloadReport)
	companies.Get("/:id/alerts/low-stock/export", alertHandler.ExportXML)

	// Warehouses
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.InvQuery)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Get("/:id/inventory", warehouseHandler.ListInventory)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.CreateProduct, deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Inventory: ajustes e historial
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Adjustment, deps.InvQuery)
	invGroup.Post("/adjustments", inventoryHandler.RegisterAdjustment)
	invGroup.Get("/:id/changes", inventoryHandler.ListChanges)

	// Suppliers
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	// Product types
	types := api.Group("/product-types")
	typeHandler := NewProductTypeHandler(deps.ProductTypeUC)
	types.Get("/", typeHandler.List)
}
