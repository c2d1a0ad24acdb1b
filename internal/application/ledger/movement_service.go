package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/stockledger/backend/internal/domain/ledger"
	"github.com/stockledger/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MovementService applies and reverses stock movements. Every mutation runs
// inside exactly one database transaction: lock, compute, upsert, log. Any
// failure rolls the whole transaction back, so partial effects are never
// observable.
type MovementService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewMovementService creates a new MovementService
func NewMovementService(scope TransactionScope, logger *zap.Logger) *MovementService {
	return &MovementService{
		scope:  scope,
		logger: logger,
	}
}

// Create validates and applies a new movement. Validation is pure and
// short-circuits before any database access.
func (s *MovementService) Create(ctx context.Context, input ledger.NewMovement) (*MovementResponse, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *ledger.Movement
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		m, err := s.apply(ctx, repos, input)
		if err != nil {
			return err
		}
		created = m
		return nil
	})
	if err != nil {
		s.logger.Warn("movement rejected",
			zap.String("type", string(input.Kind)),
			zap.Uint("product_id", input.ProductID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("movement applied",
		zap.Uint("movement_id", created.ID),
		zap.String("type", created.Type.String()),
		zap.Uint("product_id", created.ProductID),
		zap.Int64("quantity", created.Quantity),
	)
	resp := ToMovementResponse(created)
	return &resp, nil
}

// apply computes and writes the movement's effect. Caller must already be
// inside the transaction scope.
func (s *MovementService) apply(ctx context.Context, repos TransactionalRepositories, input ledger.NewMovement) (*ledger.Movement, error) {
	stocks := repos.LocationStocks()
	products := repos.ProductStocks()

	movement := &ledger.Movement{
		CreatedAt: time.Now(),
		ProductID: input.ProductID,
		Type:      input.Kind.Normalize(),
		Quantity:  input.Quantity,
		Reference: input.Reference,
		UserID:    input.UserID,
	}
	reason := input.Reason
	if reason == "" {
		reason = ledger.DefaultReason(movement.Type)
	}
	movement.Reason = &reason

	switch input.Kind {
	case ledger.KindEntry:
		key := ledger.StockKey{ProductID: input.ProductID, WarehouseID: input.WarehouseID}
		current, err := lockOne(ctx, stocks, key)
		if err != nil {
			return nil, err
		}
		if err := stocks.Upsert(ctx, key, current+input.Quantity); err != nil {
			return nil, err
		}
		if err := products.AdjustAggregate(ctx, input.ProductID, input.Quantity); err != nil {
			return nil, err
		}
		movement.ToWarehouseID = &input.WarehouseID

	case ledger.KindExit:
		key := ledger.StockKey{ProductID: input.ProductID, WarehouseID: input.WarehouseID}
		current, err := lockOne(ctx, stocks, key)
		if err != nil {
			return nil, err
		}
		remaining := current - input.Quantity
		if remaining < 0 {
			return nil, insufficientStock(input.ProductID, input.WarehouseID, current, input.Quantity)
		}
		if err := stocks.Upsert(ctx, key, remaining); err != nil {
			return nil, err
		}
		if err := products.AdjustAggregate(ctx, input.ProductID, -input.Quantity); err != nil {
			return nil, err
		}
		movement.FromWarehouseID = &input.WarehouseID

	case ledger.KindTransfer:
		src := ledger.StockKey{ProductID: input.ProductID, WarehouseID: input.FromWarehouseID}
		dst := ledger.StockKey{ProductID: input.ProductID, WarehouseID: input.ToWarehouseID}
		quantities, err := stocks.LockForUpdate(ctx, []ledger.StockKey{src, dst})
		if err != nil {
			return nil, err
		}
		remaining := quantities[src] - input.Quantity
		if remaining < 0 {
			return nil, insufficientStock(input.ProductID, input.FromWarehouseID, quantities[src], input.Quantity)
		}
		if err := stocks.Upsert(ctx, src, remaining); err != nil {
			return nil, err
		}
		if err := stocks.Upsert(ctx, dst, quantities[dst]+input.Quantity); err != nil {
			return nil, err
		}
		// Same product both sides: aggregate stock is unchanged.
		movement.FromWarehouseID = &input.FromWarehouseID
		movement.ToWarehouseID = &input.ToWarehouseID

	case ledger.KindAdjustment:
		key := ledger.StockKey{ProductID: input.ProductID, WarehouseID: input.WarehouseID}
		current, err := lockOne(ctx, stocks, key)
		if err != nil {
			return nil, err
		}
		// Quantity is the absolute target level; the aggregate moves by the delta.
		delta := input.Quantity - current
		if err := stocks.Upsert(ctx, key, input.Quantity); err != nil {
			return nil, err
		}
		if delta != 0 {
			if err := products.AdjustAggregate(ctx, input.ProductID, delta); err != nil {
				return nil, err
			}
		}
		movement.ToWarehouseID = &input.WarehouseID
	}

	if err := repos.Movements().Create(ctx, movement); err != nil {
		return nil, err
	}
	return movement, nil
}

// Delete reverses a movement's effect and removes it from the ledger, both
// in the same transaction. Adjustments are permanently delete-protected.
func (s *MovementService) Delete(ctx context.Context, id uint) error {
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		movement, err := repos.Movements().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if movement.Type == ledger.MovementTypeAdjustment {
			return shared.NewDomainError("UNSUPPORTED_OPERATION", "adjustments cannot be deleted")
		}
		if err := s.reverse(ctx, repos, movement); err != nil {
			return err
		}
		return repos.Movements().Delete(ctx, id)
	})
	if err != nil {
		s.logger.Warn("movement reversal rejected", zap.Uint("movement_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("movement reversed", zap.Uint("movement_id", id))
	return nil
}

// reverse applies the compensating stock effect for a standing movement.
func (s *MovementService) reverse(ctx context.Context, repos TransactionalRepositories, movement *ledger.Movement) error {
	stocks := repos.LocationStocks()
	products := repos.ProductStocks()

	switch movement.Type {
	case ledger.MovementTypeIn:
		warehouse, ok := movement.Warehouse()
		if !ok {
			return shared.NewDomainError("STORAGE_FAILURE", fmt.Sprintf("movement %d has no warehouse", movement.ID))
		}
		key := ledger.StockKey{ProductID: movement.ProductID, WarehouseID: warehouse}
		current, err := lockOne(ctx, stocks, key)
		if err != nil {
			return err
		}
		remaining := current - movement.Quantity
		if remaining < 0 {
			return wouldGoNegative(movement.ProductID, warehouse)
		}
		if err := stocks.Upsert(ctx, key, remaining); err != nil {
			return err
		}
		return products.AdjustAggregate(ctx, movement.ProductID, -movement.Quantity)

	case ledger.MovementTypeOut:
		warehouse, ok := movement.Warehouse()
		if !ok {
			return shared.NewDomainError("STORAGE_FAILURE", fmt.Sprintf("movement %d has no warehouse", movement.ID))
		}
		key := ledger.StockKey{ProductID: movement.ProductID, WarehouseID: warehouse}
		current, err := lockOne(ctx, stocks, key)
		if err != nil {
			return err
		}
		if err := stocks.Upsert(ctx, key, current+movement.Quantity); err != nil {
			return err
		}
		return products.AdjustAggregate(ctx, movement.ProductID, movement.Quantity)

	case ledger.MovementTypeTransfer:
		if movement.FromWarehouseID == nil || movement.ToWarehouseID == nil {
			return shared.NewDomainError("STORAGE_FAILURE", fmt.Sprintf("movement %d is missing a transfer endpoint", movement.ID))
		}
		src := ledger.StockKey{ProductID: movement.ProductID, WarehouseID: *movement.FromWarehouseID}
		dst := ledger.StockKey{ProductID: movement.ProductID, WarehouseID: *movement.ToWarehouseID}
		quantities, err := stocks.LockForUpdate(ctx, []ledger.StockKey{src, dst})
		if err != nil {
			return err
		}
		remaining := quantities[dst] - movement.Quantity
		if remaining < 0 {
			return wouldGoNegative(movement.ProductID, *movement.ToWarehouseID)
		}
		if err := stocks.Upsert(ctx, dst, remaining); err != nil {
			return err
		}
		// Aggregate is unchanged, same as on the way in.
		return stocks.Upsert(ctx, src, quantities[src]+movement.Quantity)
	}

	return shared.NewDomainError("STORAGE_FAILURE", fmt.Sprintf("movement %d has unknown type %q", movement.ID, movement.Type))
}

// lockOne resolves a single location stock row under lock.
func lockOne(ctx context.Context, stocks ledger.LocationStockRepository, key ledger.StockKey) (int64, error) {
	quantities, err := stocks.LockForUpdate(ctx, []ledger.StockKey{key})
	if err != nil {
		return 0, err
	}
	return quantities[key], nil
}

func insufficientStock(productID uint, warehouseID string, available, requested int64) error {
	return shared.NewDomainError("INSUFFICIENT_STOCK",
		fmt.Sprintf("insufficient stock for product %d at warehouse %q: have %d, need %d",
			productID, warehouseID, available, requested))
}

func wouldGoNegative(productID uint, warehouseID string) error {
	return shared.NewDomainError("INSUFFICIENT_STOCK",
		fmt.Sprintf("reversal would drive product %d at warehouse %q negative", productID, warehouseID))
}
