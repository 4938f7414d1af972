package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// LedgerUseCase registra movimientos de stock: candado por producto, transacción,
// bloqueo de fila (SELECT FOR UPDATE) e inserción del movimiento antes de actualizar el stock.
type LedgerUseCase struct {
	txRunner TxRunner
	locker   ProductLocker
	movRepo  repository.StockMovementRepository
	log      zerolog.Logger
	now      func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	locker ProductLocker,
	movRepo repository.StockMovementRepository,
	log zerolog.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner: txRunner,
		locker:   locker,
		movRepo:  movRepo,
		log:      log,
		now:      time.Now,
	}
}

// MovementInput entrada tipada de ApplyMovement.
type MovementInput struct {
	ProductID string
	Direction entity.Direction
	Quantity  int64
	Reason    entity.Reason
	Notes     string
	Reference string
	UnitCost  *decimal.Decimal
}

func (in MovementInput) validate() error {
	switch {
	case in.ProductID == "":
		return fmt.Errorf("%w: product_id es requerido", domain.ErrInvalidInput)
	case !in.Direction.Valid():
		return fmt.Errorf("%w: direction debe ser in u out", domain.ErrInvalidInput)
	case in.Quantity <= 0:
		return fmt.Errorf("%w: quantity debe ser un entero positivo", domain.ErrInvalidInput)
	case !in.Reason.Valid():
		return fmt.Errorf("%w: reason %q no soportado", domain.ErrInvalidInput, in.Reason)
	case in.UnitCost != nil && in.Direction != entity.DirectionIn:
		return fmt.Errorf("%w: unit_cost solo aplica a entradas", domain.ErrInvalidInput)
	case in.UnitCost != nil && in.UnitCost.IsNegative():
		return fmt.Errorf("%w: unit_cost no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

// ApplyMovement valida, calcula el nuevo stock y persiste movimiento + stock de forma atómica.
// Validación y stock insuficiente se rechazan antes de cualquier escritura.
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, tenant domain.Tenant, in MovementInput) (*dto.MovementResponse, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	unlock, err := uc.locker.Lock(ctx, tenant.ID, in.ProductID)
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	defer unlock()

	var (
		mov       *entity.StockMovement
		prevStock int64
		newStock  int64
	)
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, tenant.ID, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
		}

		prevStock = product.CurrentStock
		newStock, err = inventory.ApplyMovement(product.CurrentStock, in.Direction, in.Quantity)
		if err != nil {
			return err
		}

		cost := product.CostPrice
		if in.UnitCost != nil {
			cost = inventory.WeightedCost(product.CurrentStock, product.CostPrice, in.Quantity, *in.UnitCost)
		}

		mov = &entity.StockMovement{
			ID:        uuid.New().String(),
			TenantID:  tenant.ID,
			ProductID: product.ID,
			Direction: in.Direction,
			Quantity:  in.Quantity,
			Reason:    in.Reason,
			Notes:     in.Notes,
			Reference: in.Reference,
			UnitCost:  in.UnitCost,
			CreatedBy: tenant.UserID,
			CreatedAt: uc.now(),
		}
		// Primero el movimiento, luego el stock; ambos en la misma tx
		if err := movRepo.Create(ctx, mov); err != nil {
			return fmt.Errorf("registrar movimiento: %w", err)
		}
		if err := productRepo.UpdateStock(ctx, tenant.ID, product.ID, newStock, cost); err != nil {
			uc.log.Error().Err(err).
				Str("tenant_id", tenant.ID).
				Str("product_id", product.ID).
				Str("movement_id", mov.ID).
				Msg("ledger: fallo al actualizar stock, movimiento revertido")
			return fmt.Errorf("actualizar stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}

	uc.log.Debug().
		Str("tenant_id", tenant.ID).
		Str("product_id", mov.ProductID).
		Str("direction", string(mov.Direction)).
		Int64("quantity", mov.Quantity).
		Int64("new_stock", newStock).
		Msg("movimiento registrado")

	out := toMovementResponse(mov)
	out.PreviousStock = &prevStock
	out.NewStock = &newStock
	return out, nil
}

// ListMovements historial del tenant, más reciente primero.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, tenant domain.Tenant, filter repository.MovementFilter) (*dto.MovementListResponse, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	if filter.Direction != "" && !filter.Direction.Valid() {
		return nil, fmt.Errorf("%w: direction debe ser in u out", domain.ErrInvalidInput)
	}
	list, err := uc.movRepo.List(ctx, tenant.ID, filter)
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// GetMovement obtiene un movimiento del tenant.
func (uc *LedgerUseCase) GetMovement(ctx context.Context, tenant domain.Tenant, id string) (*dto.MovementResponse, error) {
	if err := tenant.Validate(); err != nil {
		return nil, err
	}
	m, err := uc.movRepo.GetByID(ctx, tenant.ID, id)
	if err != nil {
		return nil, domain.WrapPersistence(err)
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return toMovementResponse(m), nil
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Direction: string(m.Direction),
		Quantity:  m.Quantity,
		Reason:    string(m.Reason),
		Notes:     m.Notes,
		Reference: m.Reference,
		UnitCost:  m.UnitCost,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}
