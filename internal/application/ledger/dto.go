package ledger

import (
	"time"

	"github.com/stockledger/backend/internal/domain/catalog"
	"github.com/stockledger/backend/internal/domain/ledger"
)

// Dashboard payload source markers. The read path never fails the caller:
// on a storage error it degrades to an empty payload tagged "fallback".
const (
	SourceDatabase = "database"
	SourceFallback = "fallback"
)

// MovementResponse represents a committed movement in API responses
type MovementResponse struct {
	ID              uint      `json:"id"`
	CreatedAt       time.Time `json:"createdAt"`
	ProductID       uint      `json:"productId"`
	Type            string    `json:"type"`
	Quantity        int64     `json:"quantity"`
	FromWarehouseID *string   `json:"fromWarehouseId,omitempty"`
	ToWarehouseID   *string   `json:"toWarehouseId,omitempty"`
	Reference       string    `json:"reference,omitempty"`
	Reason          string    `json:"reason"`
	UserID          uint      `json:"userId"`
}

// ToMovementResponse converts a movement entity to its API representation
func ToMovementResponse(m *ledger.Movement) MovementResponse {
	return MovementResponse{
		ID:              m.ID,
		CreatedAt:       m.CreatedAt,
		ProductID:       m.ProductID,
		Type:            m.Type.String(),
		Quantity:        m.Quantity,
		FromWarehouseID: m.FromWarehouseID,
		ToWarehouseID:   m.ToWarehouseID,
		Reference:       m.Reference,
		Reason:          m.ReasonOrDefault(),
		UserID:          m.UserID,
	}
}

// ProductResponse represents a product with its aggregate stock
type ProductResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Reference      string `json:"reference"`
	Category       string `json:"category"`
	AggregateStock int64  `json:"aggregateStock"`
}

// ToProductResponse converts a product entity to its API representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Reference:      p.Reference,
		Category:       p.Category,
		AggregateStock: p.AggregateStock,
	}
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// DashboardResponse is the full dashboard payload. It is always well-formed;
// Source tells the client whether it reflects committed state or the
// degraded empty default.
type DashboardResponse struct {
	Movements  []ledger.MovementView `json:"movements"`
	Products   []ProductResponse     `json:"products"`
	Warehouses []WarehouseResponse   `json:"warehouses"`
	Stats      ledger.MovementStats  `json:"stats"`
	Source     string                `json:"source"`
}
