package sales

import (
	"github.com/shopspring/decimal"
	appledger "github.com/stockledger/backend/internal/application/ledger"
)

// OrderLine is one product position on a sales order
type OrderLine struct {
	ProductID   uint            `json:"productId" binding:"required"`
	WarehouseID string          `json:"warehouseId" binding:"required"`
	Quantity    int64           `json:"quantity" binding:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// OrderInput is the input contract for recording a sale. Empty orders and
// negative prices are rejected by the service so the error can name the
// offending field; the binding tags stop at per-line shape checks.
type OrderInput struct {
	Reference string      `json:"reference" binding:"required"`
	UserID    uint        `json:"userId" binding:"required"`
	Lines     []OrderLine `json:"lines" binding:"dive"`
}

// OrderResponse describes the recorded sale: the money total and the
// ledger movements it produced.
type OrderResponse struct {
	Reference string                       `json:"reference"`
	Total     decimal.Decimal              `json:"total"`
	Movements []appledger.MovementResponse `json:"movements"`
}
