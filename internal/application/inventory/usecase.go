package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-stock/internal/application/dto"
	"github.com/jhoicas/pos-stock/internal/domain"
	"github.com/jhoicas/pos-stock/internal/domain/entity"
	domaininv "github.com/jhoicas/pos-stock/internal/domain/inventory"
	"github.com/jhoicas/pos-stock/internal/domain/repository"
	"github.com/rs/zerolog"
)

// InventoryUseCase casos de uso del registro de inventario por producto.
// Toda mutación corre en una transacción con la fila bloqueada y actualización con control de versión.
type InventoryUseCase struct {
	txRunner     TxRunner
	invRepo      repository.InventoryRepository
	productRepo  repository.ProductRepository
	employeeRepo repository.EmployeeRepository
	log          zerolog.Logger
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	txRunner TxRunner,
	invRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	employeeRepo repository.EmployeeRepository,
	log zerolog.Logger,
) *InventoryUseCase {
	return &InventoryUseCase{
		txRunner:     txRunner,
		invRepo:      invRepo,
		productRepo:  productRepo,
		employeeRepo: employeeRepo,
		log:          log.With().Str("component", "inventory").Logger(),
	}
}

// CreateInventory crea el registro 1:1 del producto. Si la cantidad inicial es positiva
// registra en la misma transacción un movimiento RECEIPT con stock previo 0.
func (uc *InventoryUseCase) CreateInventory(ctx context.Context, in dto.CreateInventoryRequest, processedBy string) (*dto.InventoryResponse, error) {
	now := time.Now()
	inv := &entity.Inventory{
		ID:           uuid.New().String(),
		ProductID:    in.ProductID,
		Quantity:     in.Quantity,
		MinimumStock: in.MinimumStock,
		MaximumStock: in.MaximumStock,
		Location:     in.Location,
		BinNumber:    in.BinNumber,
		Version:      1,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	if inv.MaximumStock > 0 && inv.Quantity > inv.MaximumStock {
		return nil, domain.Invalid("la cantidad inicial %d excede el stock máximo %d", inv.Quantity, inv.MaximumStock)
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, domain.Infrastructure("get product", err)
	}
	if product == nil {
		return nil, domain.NotFound("producto", in.ProductID)
	}

	var initial *entity.StockMovement
	if inv.Quantity > 0 {
		if processedBy == "" {
			return nil, domain.Invalid("el empleado que procesa es obligatorio para el stock inicial")
		}
		if err := uc.ensureEmployee(ctx, processedBy); err != nil {
			return nil, err
		}
		initial = &entity.StockMovement{
			ID:              uuid.New().String(),
			ProductID:       inv.ProductID,
			Type:            entity.MovementReceipt,
			Quantity:        inv.Quantity,
			ReferenceNumber: domaininv.InitialReference(now),
			Reason:          "Initial Inventory Setup",
			UnitCost:        product.CostPrice,
			ProcessedBy:     processedBy,
			Notes:           "Initial inventory creation",
			PreviousStock:   0,
			NewStock:        inv.Quantity,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		inv.LastRestockDate = &now
	}

	err = uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.StockMovementRepository) error {
		existing, err := invRepo.GetByProduct(ctx, inv.ProductID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Duplicate("ya existe inventario para el producto %s", inv.ProductID)
		}
		if err := invRepo.Create(ctx, inv); err != nil {
			return err
		}
		if initial != nil {
			return movRepo.Create(ctx, initial)
		}
		return nil
	})
	if err != nil {
		return nil, domain.Infrastructure("create inventory", err)
	}
	uc.log.Info().Str("inventory_id", inv.ID).Str("product_id", inv.ProductID).Int("quantity", inv.Quantity).Msg("inventario creado")
	return dto.ToInventoryResponse(inv), nil
}

// UpdateInventory actualiza umbrales y ubicación. La cantidad no se modifica aquí.
func (uc *InventoryUseCase) UpdateInventory(ctx context.Context, id string, in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	return uc.mutate(ctx, id, func(inv *entity.Inventory, _ time.Time) error {
		if in.MinimumStock != nil {
			inv.MinimumStock = *in.MinimumStock
		}
		if in.MaximumStock != nil {
			inv.MaximumStock = *in.MaximumStock
		}
		if in.Location != nil {
			inv.Location = *in.Location
		}
		if in.BinNumber != nil {
			inv.BinNumber = *in.BinNumber
		}
		if in.IsActive != nil {
			inv.IsActive = *in.IsActive
		}
		if err := inv.Validate(); err != nil {
			return err
		}
		if inv.MaximumStock > 0 && inv.Quantity > inv.MaximumStock {
			return domain.Invalid("el stock máximo %d es menor que la cantidad actual %d", inv.MaximumStock, inv.Quantity)
		}
		return nil
	})
}

// AddStock suma quantity (> 0) respetando el stock máximo y actualiza la fecha de reabastecimiento.
func (uc *InventoryUseCase) AddStock(ctx context.Context, id string, quantity int) (*dto.InventoryResponse, error) {
	if quantity <= 0 {
		return nil, domain.Invalid("la cantidad a agregar debe ser positiva")
	}
	return uc.mutate(ctx, id, func(inv *entity.Inventory, now time.Time) error {
		if !inv.CanAddStock(quantity) {
			return domain.Invalid("agregar %d unidades excedería el stock máximo de %d", quantity, inv.MaximumStock)
		}
		inv.Quantity += quantity
		inv.LastRestockDate = &now
		return nil
	})
}

// RemoveStock resta quantity (> 0 y <= cantidad actual).
func (uc *InventoryUseCase) RemoveStock(ctx context.Context, id string, quantity int) (*dto.InventoryResponse, error) {
	if quantity <= 0 {
		return nil, domain.Invalid("la cantidad a retirar debe ser positiva")
	}
	return uc.mutate(ctx, id, func(inv *entity.Inventory, _ time.Time) error {
		if inv.Quantity < quantity {
			return domain.Insufficient("stock insuficiente: actual %d, solicitado %d", inv.Quantity, quantity)
		}
		inv.Quantity -= quantity
		return nil
	})
}

// PerformStockCheck reemplaza la cantidad por el conteo físico (conciliación, sin validar tipo de movimiento).
func (uc *InventoryUseCase) PerformStockCheck(ctx context.Context, id string, actualQuantity int) (*dto.InventoryResponse, error) {
	if actualQuantity < 0 {
		return nil, domain.Invalid("la cantidad contada no puede ser negativa")
	}
	return uc.mutate(ctx, id, func(inv *entity.Inventory, now time.Time) error {
		inv.Quantity = actualQuantity
		inv.LastStockCheckDate = &now
		return nil
	})
}

// GetInventory obtiene un inventario por ID.
func (uc *InventoryUseCase) GetInventory(ctx context.Context, id string) (*dto.InventoryResponse, error) {
	inv, err := uc.invRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Infrastructure("get inventory", err)
	}
	if inv == nil {
		return nil, domain.NotFound("inventario", id)
	}
	return dto.ToInventoryResponse(inv), nil
}

// GetInventoryByProduct obtiene el inventario de un producto.
func (uc *InventoryUseCase) GetInventoryByProduct(ctx context.Context, productID string) (*dto.InventoryResponse, error) {
	inv, err := uc.invRepo.GetByProduct(ctx, productID)
	if err != nil {
		return nil, domain.Infrastructure("get inventory by product", err)
	}
	if inv == nil {
		return nil, domain.NotFound("inventario del producto", productID)
	}
	return dto.ToInventoryResponse(inv), nil
}

// GetAllInventory lista todos los inventarios.
func (uc *InventoryUseCase) GetAllInventory(ctx context.Context) (*dto.InventoryListResponse, error) {
	list, err := uc.invRepo.List(ctx)
	if err != nil {
		return nil, domain.Infrastructure("list inventory", err)
	}
	return dto.ToInventoryList(list), nil
}

// GetLowStockInventory lista inventarios activos con cantidad <= stock mínimo.
func (uc *InventoryUseCase) GetLowStockInventory(ctx context.Context) (*dto.InventoryListResponse, error) {
	list, err := uc.lowStock(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToInventoryList(list), nil
}

func (uc *InventoryUseCase) lowStock(ctx context.Context) ([]*entity.Inventory, error) {
	list, err := uc.invRepo.ListLowStock(ctx)
	if err != nil {
		return nil, domain.Infrastructure("list low stock", err)
	}
	return list, nil
}

// mutate bloquea la fila, aplica fn y guarda con control de versión, todo en una transacción.
func (uc *InventoryUseCase) mutate(ctx context.Context, id string, fn func(inv *entity.Inventory, now time.Time) error) (*dto.InventoryResponse, error) {
	var out *entity.Inventory
	err := uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, _ repository.StockMovementRepository) error {
		inv, err := invRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.NotFound("inventario", id)
		}
		now := time.Now()
		if err := fn(inv, now); err != nil {
			return err
		}
		inv.UpdatedAt = now
		if err := invRepo.Update(ctx, inv); err != nil {
			return err
		}
		out = inv
		return nil
	})
	if err != nil {
		return nil, domain.Infrastructure("update inventory", err)
	}
	return dto.ToInventoryResponse(out), nil
}

func (uc *InventoryUseCase) ensureEmployee(ctx context.Context, id string) error {
	emp, err := uc.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Infrastructure("get employee", err)
	}
	if emp == nil {
		return domain.NotFound("empleado", id)
	}
	return nil
}
