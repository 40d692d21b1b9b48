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
	"github.com/shopspring/decimal"
)

// MovementUseCase registra movimientos de stock de forma transaccional: bloquea la fila del
// inventario (SELECT FOR UPDATE), calcula el nuevo stock, guarda el movimiento y actualiza el
// inventario con control de versión, todo con Commit/Rollback.
type MovementUseCase struct {
	txRunner     TxRunner
	movRepo      repository.StockMovementRepository
	productRepo  repository.ProductRepository
	employeeRepo repository.EmployeeRepository
	publisher    EventPublisher
	log          zerolog.Logger
}

// NewMovementUseCase construye el caso de uso. publisher puede ser nil.
func NewMovementUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	employeeRepo repository.EmployeeRepository,
	publisher EventPublisher,
	log zerolog.Logger,
) *MovementUseCase {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &MovementUseCase{
		txRunner:     txRunner,
		movRepo:      movRepo,
		productRepo:  productRepo,
		employeeRepo: employeeRepo,
		publisher:    publisher,
		log:          log.With().Str("component", "stock_movements").Logger(),
	}
}

// RecordMovement valida el movimiento y sus referencias y lo aplica en una transacción.
func (uc *MovementUseCase) RecordMovement(ctx context.Context, movement *entity.StockMovement) (*dto.MovementResponse, error) {
	if err := uc.CheckReferences(ctx, movement); err != nil {
		return nil, err
	}
	err := uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.StockMovementRepository) error {
		return uc.ApplyInTx(ctx, invRepo, movRepo, movement, time.Now())
	})
	if err != nil {
		return nil, domain.Infrastructure("record movement", err)
	}
	uc.Committed(ctx, movement)
	return dto.ToMovementResponse(movement), nil
}

// CheckReferences valida el movimiento y que existan producto y empleado. No muta nada.
func (uc *MovementUseCase) CheckReferences(ctx context.Context, movement *entity.StockMovement) error {
	if err := movement.Validate(); err != nil {
		return err
	}
	product, err := uc.productRepo.GetByID(ctx, movement.ProductID)
	if err != nil {
		return domain.Infrastructure("get product", err)
	}
	if product == nil {
		return domain.NotFound("producto", movement.ProductID)
	}
	emp, err := uc.employeeRepo.GetByID(ctx, movement.ProcessedBy)
	if err != nil {
		return domain.Infrastructure("get employee", err)
	}
	if emp == nil {
		return domain.NotFound("empleado", movement.ProcessedBy)
	}
	return nil
}

// ApplyInTx aplica el movimiento usando los repositorios de la transacción del caller:
// lee el stock previo con bloqueo, calcula y valida el nuevo stock, inserta el movimiento
// con la foto previo/nuevo y actualiza el inventario. El movimiento debe estar validado.
// Quantity queda como el delta con signo efectivamente aplicado.
func (uc *MovementUseCase) ApplyInTx(
	ctx context.Context,
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
	movement *entity.StockMovement,
	now time.Time,
) error {
	inv, err := invRepo.GetByProductForUpdate(ctx, movement.ProductID)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.NotFound("registro de inventario del producto", movement.ProductID)
	}

	delta, newStock := domaininv.ComputeNewStock(inv.Quantity, movement.Type, movement.Quantity)
	if err := domaininv.ValidateStockLevel(inv, newStock); err != nil {
		return err
	}

	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	movement.Quantity = delta
	movement.PreviousStock = inv.Quantity
	movement.NewStock = newStock
	movement.CreatedAt = now
	movement.UpdatedAt = now
	if err := movRepo.Create(ctx, movement); err != nil {
		return err
	}

	inv.Quantity = newStock
	inv.UpdatedAt = now
	if movement.Type.IsRestock() {
		inv.LastRestockDate = &now
	}
	return invRepo.Update(ctx, inv)
}

// Committed publica y registra en el log un movimiento ya confirmado.
func (uc *MovementUseCase) Committed(ctx context.Context, movement *entity.StockMovement) {
	uc.log.Info().
		Str("movement_id", movement.ID).
		Str("product_id", movement.ProductID).
		Str("type", string(movement.Type)).
		Int("quantity", movement.Quantity).
		Int("previous_stock", movement.PreviousStock).
		Int("new_stock", movement.NewStock).
		Str("reference", movement.ReferenceNumber).
		Msg("movimiento registrado")
	if err := uc.publisher.PublishMovement(ctx, movement); err != nil {
		uc.log.Warn().Err(err).Str("movement_id", movement.ID).Msg("publicar movimiento")
	}
}

// RecordAdjustment ajuste con cantidad con signo (negativa para descontar) y referencia ADJ-<millis>.
func (uc *MovementUseCase) RecordAdjustment(ctx context.Context, productID string, quantity int, reason string, unitCost decimal.Decimal, processedBy, notes string) (*dto.MovementResponse, error) {
	return uc.RecordMovement(ctx, &entity.StockMovement{
		ProductID:       productID,
		Type:            entity.MovementAdjustment,
		Quantity:        quantity,
		ReferenceNumber: domaininv.AdjustmentReference(time.Now()),
		Reason:          reason,
		UnitCost:        unitCost,
		ProcessedBy:     processedBy,
		Notes:           notes,
	})
}

// RecordReceipt entrada de mercancía; quantity debe ser positiva.
func (uc *MovementUseCase) RecordReceipt(ctx context.Context, productID string, quantity int, referenceNumber string, unitCost decimal.Decimal, processedBy, notes string) (*dto.MovementResponse, error) {
	if quantity <= 0 {
		return nil, domain.Invalid("la cantidad recibida debe ser positiva")
	}
	return uc.RecordMovement(ctx, &entity.StockMovement{
		ProductID:       productID,
		Type:            entity.MovementReceipt,
		Quantity:        quantity,
		ReferenceNumber: referenceNumber,
		Reason:          "Stock Receipt",
		UnitCost:        unitCost,
		ProcessedBy:     processedBy,
		Notes:           notes,
	})
}

// RecordTransfer traslado saliente; quantity debe ser positiva y se guarda como negativa.
// Los traslados no afectan el costo (UnitCost = 0).
func (uc *MovementUseCase) RecordTransfer(ctx context.Context, productID string, quantity int, referenceNumber, reason, processedBy, notes string) (*dto.MovementResponse, error) {
	if quantity <= 0 {
		return nil, domain.Invalid("la cantidad a trasladar debe ser positiva")
	}
	return uc.RecordMovement(ctx, &entity.StockMovement{
		ProductID:       productID,
		Type:            entity.MovementTransfer,
		Quantity:        -quantity,
		ReferenceNumber: referenceNumber,
		Reason:          reason,
		UnitCost:        decimal.Zero,
		ProcessedBy:     processedBy,
		Notes:           notes,
	})
}

// GetMovement obtiene un movimiento por ID.
func (uc *MovementUseCase) GetMovement(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Infrastructure("get movement", err)
	}
	if m == nil {
		return nil, domain.NotFound("movimiento", id)
	}
	return dto.ToMovementResponse(m), nil
}

// GetMovementsByProduct movimientos del producto en [from, to], más reciente primero.
func (uc *MovementUseCase) GetMovementsByProduct(ctx context.Context, productID string, from, to *time.Time) (*dto.MovementListResponse, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, domain.Invalid("la fecha inicial es posterior a la final")
	}
	list, err := uc.movRepo.ListByProduct(ctx, productID, from, to)
	if err != nil {
		return nil, domain.Infrastructure("list movements by product", err)
	}
	return dto.ToMovementList(list), nil
}

// GetMovementsByReference movimientos con el número de referencia dado, más reciente primero.
func (uc *MovementUseCase) GetMovementsByReference(ctx context.Context, referenceNumber string) (*dto.MovementListResponse, error) {
	list, err := uc.movRepo.ListByReference(ctx, referenceNumber)
	if err != nil {
		return nil, domain.Infrastructure("list movements by reference", err)
	}
	return dto.ToMovementList(list), nil
}

// GetAllMovements lista todos los movimientos, más reciente primero.
func (uc *MovementUseCase) GetAllMovements(ctx context.Context) (*dto.MovementListResponse, error) {
	list, err := uc.movRepo.List(ctx)
	if err != nil {
		return nil, domain.Infrastructure("list movements", err)
	}
	return dto.ToMovementList(list), nil
}
