package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Abasto-api/internal/application/dto"
	"github.com/jhoicas/Abasto-api/internal/domain"
)

// NewProductInput es el objeto de valor que produce la etapa de validación:
// campos tipados e inmutables, listos para la lógica de negocio. Sólo se
// construye vía ValidateNewProduct.
type NewProductInput struct {
	name            string
	sku             string
	price           decimal.Decimal
	warehouseID     int64
	initialQuantity int64
	supplierID      *int64
	typeID          *int64
	isBundle        bool
}

func (in *NewProductInput) Name() string           { return in.name }
func (in *NewProductInput) SKU() string            { return in.sku }
func (in *NewProductInput) Price() decimal.Decimal { return in.price }
func (in *NewProductInput) WarehouseID() int64     { return in.warehouseID }
func (in *NewProductInput) InitialQuantity() int64 { return in.initialQuantity }
func (in *NewProductInput) SupplierID() *int64     { return in.supplierID }
func (in *NewProductInput) TypeID() *int64         { return in.typeID }
func (in *NewProductInput) IsBundle() bool         { return in.isBundle }

// ValidateNewProduct aplica la etapa de validación completa sobre el request crudo,
// antes de cualquier lógica de negocio y sin tocar la base de datos. Los campos
// obligatorios ausentes se reportan todos juntos; los errores de tipo o rango
// nombran el campo ofensor. Devuelve *domain.ValidationError o el objeto de valor.
func ValidateNewProduct(req dto.CreateProductRequest) (*NewProductInput, error) {
	var missing []string
	name := strings.TrimSpace(req.Name)
	sku := strings.TrimSpace(req.SKU)
	if name == "" {
		missing = append(missing, "name")
	}
	if sku == "" {
		missing = append(missing, "sku")
	}
	if req.Price == "" {
		missing = append(missing, "price")
	}
	if req.WarehouseID == "" {
		missing = append(missing, "warehouse_id")
	}
	if req.InitialQuantity == "" {
		missing = append(missing, "initial_quantity")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError("faltan campos obligatorios", missing...)
	}

	price, err := decimal.NewFromString(req.Price.String())
	if err != nil {
		return nil, domain.NewValidationError("formato de precio inválido", "price")
	}
	if price.IsNegative() {
		return nil, domain.NewValidationError("el precio no puede ser negativo", "price")
	}

	warehouseID, err := parseID(req.WarehouseID)
	if err != nil {
		return nil, domain.NewValidationError("identificador inválido", "warehouse_id")
	}

	qty, err := req.InitialQuantity.Int64()
	if err != nil {
		return nil, domain.NewValidationError("debe ser un entero", "initial_quantity")
	}
	if qty < 0 {
		return nil, domain.NewValidationError("la cantidad inicial no puede ser negativa", "initial_quantity")
	}

	input := &NewProductInput{
		name:            name,
		sku:             sku,
		price:           price,
		warehouseID:     warehouseID,
		initialQuantity: qty,
		isBundle:        req.IsBundle,
	}

	if req.SupplierID != "" {
		id, err := parseID(req.SupplierID)
		if err != nil {
			return nil, domain.NewValidationError("identificador inválido", "supplier_id")
		}
		input.supplierID = &id
	}
	if req.TypeID != "" {
		id, err := parseID(req.TypeID)
		if err != nil {
			return nil, domain.NewValidationError("identificador inválido", "type_id")
		}
		input.typeID = &id
	}
	return input, nil
}

// parseID exige un entero positivo (los json.Number fraccionarios fallan en Int64).
func parseID(n json.Number) (int64, error) {
	id, err := n.Int64()
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("id no positivo: %d", id)
	}
	return id, nil
}
