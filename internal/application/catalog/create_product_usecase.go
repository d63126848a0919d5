package catalog

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/Abasto-api/internal/application/dto"
	"github.com/jhoicas/Abasto-api/internal/domain"
	"github.com/jhoicas/Abasto-api/internal/domain/entity"
	"github.com/jhoicas/Abasto-api/internal/domain/repository"
)

// CreateProductUseCase crea un producto del catálogo junto con su posición inicial
// de inventario en la bodega indicada, de forma atómica: si la posición falla,
// el producto no queda creado.
type CreateProductUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewCreateProductUseCase construye el caso de uso de creación de productos.
func NewCreateProductUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *CreateProductUseCase {
	return &CreateProductUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
	}
}

// CreateProduct valida el request, verifica el SKU y crea producto + posición en una
// sola transacción. El chequeo previo del SKU da un error temprano; la carrera entre
// dos escritores la arbitra la restricción UNIQUE de la base dentro de la tx.
// La creación de la posición inicial no registra InventoryChange: el historial
// empieza con la primera mutación.
func (uc *CreateProductUseCase) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	input, err := ValidateNewProduct(req)
	if err != nil {
		return nil, err
	}

	existing, err := uc.productRepo.GetBySKU(ctx, input.SKU())
	if err != nil {
		return nil, fmt.Errorf("crear producto: verificar sku: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el sku %q ya está registrado", domain.ErrDuplicate, input.SKU())
	}

	now := time.Now().UTC()
	product := &entity.Product{
		Name:       input.Name(),
		SKU:        input.SKU(),
		Price:      input.Price(),
		SupplierID: input.SupplierID(),
		TypeID:     input.TypeID(),
		IsBundle:   input.IsBundle(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = uc.txRunner.RunCatalog(ctx, func(
		productRepo repository.ProductRepository,
		invRepo repository.InventoryRepository,
	) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		pos := &entity.Inventory{
			ProductID:   product.ID,
			WarehouseID: input.WarehouseID(),
			Quantity:    input.InitialQuantity(),
			UpdatedAt:   now,
		}
		return invRepo.Create(ctx, pos)
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateProductResponse{
		Message:   "producto creado exitosamente",
		ProductID: strconv.FormatInt(product.ID, 10),
	}, nil
}
