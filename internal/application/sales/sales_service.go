package sales

import (
	"context"

	"github.com/shopspring/decimal"
	appledger "github.com/stockledger/backend/internal/application/ledger"
	"github.com/stockledger/backend/internal/domain/ledger"
	"github.com/stockledger/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SalesService records sales orders by emitting one exit movement per order
// line. Money amounts use fixed-point decimals; stock quantities stay
// integral.
type SalesService struct {
	movements *appledger.MovementService
	logger    *zap.Logger
}

// NewSalesService creates a new SalesService
func NewSalesService(movements *appledger.MovementService, logger *zap.Logger) *SalesService {
	return &SalesService{
		movements: movements,
		logger:    logger,
	}
}

// RecordSale validates the order and emits an exit movement per line. Lines
// are applied in order; the first rejected line aborts the rest, and the
// returned response lists only the movements that committed.
func (s *SalesService) RecordSale(ctx context.Context, input OrderInput) (*OrderResponse, error) {
	if err := validateOrder(input); err != nil {
		return nil, err
	}

	resp := &OrderResponse{
		Reference: input.Reference,
		Total:     decimal.Zero,
		Movements: make([]appledger.MovementResponse, 0, len(input.Lines)),
	}

	for _, line := range input.Lines {
		movement, err := s.movements.Create(ctx, ledger.NewMovement{
			Kind:        ledger.KindExit,
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			WarehouseID: line.WarehouseID,
			Reference:   input.Reference,
			Reason:      "sale",
			UserID:      input.UserID,
		})
		if err != nil {
			s.logger.Warn("sales order aborted",
				zap.String("reference", input.Reference),
				zap.Uint("product_id", line.ProductID),
				zap.Int("committed_lines", len(resp.Movements)),
				zap.Error(err),
			)
			return nil, err
		}
		resp.Movements = append(resp.Movements, *movement)
		resp.Total = resp.Total.Add(line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)))
	}

	s.logger.Info("sales order recorded",
		zap.String("reference", input.Reference),
		zap.Int("lines", len(resp.Movements)),
		zap.String("total", resp.Total.String()),
	)
	return resp, nil
}

// validateOrder checks the order-level contract. Per-line stock rules are
// enforced by the movement validator and executor.
func validateOrder(input OrderInput) error {
	var fields []string

	if len(input.Lines) == 0 {
		fields = append(fields, "lines")
	}
	for _, line := range input.Lines {
		if line.UnitPrice.IsNegative() {
			fields = append(fields, "unitPrice")
			break
		}
	}

	if len(fields) > 0 {
		return shared.NewValidationError(fields...)
	}
	return nil
}
