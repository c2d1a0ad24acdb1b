package ledger

import (
	"context"
	"time"

	"github.com/stockledger/backend/internal/domain/catalog"
	"github.com/stockledger/backend/internal/domain/ledger"
	"go.uber.org/zap"
)

// Default dashboard window parameters, applied when the caller omits or
// mangles the query values.
const (
	DefaultWindowDays = 30
	DefaultLimit      = 50
)

// QueryService serves the read-only dashboard payload. It runs without
// locks against committed state, and it is the one place in the system
// where storage errors are deliberately swallowed: the dashboard always
// renders, degraded to an empty payload tagged with its source.
type QueryService struct {
	movements  ledger.MovementRepository
	products   catalog.ProductRepository
	warehouses catalog.WarehouseRepository
	logger     *zap.Logger
}

// NewQueryService creates a new QueryService
func NewQueryService(
	movements ledger.MovementRepository,
	products catalog.ProductRepository,
	warehouses catalog.WarehouseRepository,
	logger *zap.Logger,
) *QueryService {
	return &QueryService{
		movements:  movements,
		products:   products,
		warehouses: warehouses,
		logger:     logger,
	}
}

// Dashboard assembles the full dashboard payload for the given day window.
func (s *QueryService) Dashboard(ctx context.Context, days, limit int) DashboardResponse {
	if days <= 0 {
		days = DefaultWindowDays
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	since := time.Now().AddDate(0, 0, -days)

	movements, err := s.movements.FindViewsSince(ctx, since, limit)
	if err != nil {
		return s.fallback("movements", err)
	}
	for i := range movements {
		if movements[i].Reason == "" {
			movements[i].Reason = ledger.DefaultReason(movements[i].Type)
		}
	}

	stats, err := s.movements.StatsSince(ctx, since)
	if err != nil {
		return s.fallback("stats", err)
	}

	productEntities, err := s.products.FindAll(ctx)
	if err != nil {
		return s.fallback("products", err)
	}
	products := make([]ProductResponse, 0, len(productEntities))
	for i := range productEntities {
		products = append(products, ToProductResponse(&productEntities[i]))
	}

	warehouseEntities, err := s.warehouses.FindAll(ctx)
	if err != nil {
		return s.fallback("warehouses", err)
	}
	warehouses := make([]WarehouseResponse, 0, len(warehouseEntities))
	for _, w := range warehouseEntities {
		warehouses = append(warehouses, WarehouseResponse{ID: w.ID, Label: w.Label})
	}

	return DashboardResponse{
		Movements:  movements,
		Products:   products,
		Warehouses: warehouses,
		Stats:      stats,
		Source:     SourceDatabase,
	}
}

// fallback returns the degraded empty payload. The failure is logged but
// never propagated; dashboard rendering must not hard-fail on a transient
// read error.
func (s *QueryService) fallback(section string, err error) DashboardResponse {
	s.logger.Warn("dashboard query degraded to fallback payload",
		zap.String("section", section),
		zap.Error(err),
	)
	return DashboardResponse{
		Movements:  []ledger.MovementView{},
		Products:   []ProductResponse{},
		Warehouses: []WarehouseResponse{},
		Stats:      ledger.MovementStats{},
		Source:     SourceFallback,
	}
}
