package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	appledger "github.com/stockledger/backend/internal/application/ledger"
	"github.com/stockledger/backend/internal/domain/ledger"
	"github.com/stockledger/backend/internal/infrastructure/config"
	"github.com/stockledger/backend/internal/interfaces/http/dto"
)

// StockMovementHandler serves the movement dashboard and the movement
// write operations.
type StockMovementHandler struct {
	movements *appledger.MovementService
	queries   *appledger.QueryService
	defaults  config.DashboardConfig
}

// NewStockMovementHandler creates a new StockMovementHandler
func NewStockMovementHandler(
	movements *appledger.MovementService,
	queries *appledger.QueryService,
	defaults config.DashboardConfig,
) *StockMovementHandler {
	return &StockMovementHandler{
		movements: movements,
		queries:   queries,
		defaults:  defaults,
	}
}

// RegisterRoutes registers the stock movement routes
func (h *StockMovementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stock-movements", h.Dashboard)
	rg.POST("/stock-movements", h.Create)
	rg.DELETE("/stock-movements", h.Delete)
}

// createMovementRequest is the JSON body for creating a movement. Binding
// tags cover shape-level checks; the per-type contract is enforced by the
// domain validator.
type createMovementRequest struct {
	Type            string `json:"type" binding:"required"`
	ProductID       uint   `json:"productId" binding:"required"`
	Quantity        int64  `json:"quantity" binding:"gte=0"`
	WarehouseID     string `json:"warehouseId"`
	FromWarehouseID string `json:"fromWarehouseId"`
	ToWarehouseID   string `json:"toWarehouseId"`
	Reference       string `json:"reference"`
	Reason          string `json:"reason"`
	UserID          uint   `json:"userId" binding:"required"`
}

// movementCreatedResponse is the envelope for a successful creation
type movementCreatedResponse struct {
	Success  bool                       `json:"success"`
	Movement appledger.MovementResponse `json:"movement"`
}

// Dashboard returns the movement dashboard payload. The endpoint always
// responds 200: missing or malformed query values fall back to the
// configured defaults, and storage failures degrade to the empty payload
// tagged "fallback".
func (h *StockMovementHandler) Dashboard(c *gin.Context) {
	days := intQueryOr(c, "days", h.defaults.WindowDays)
	limit := intQueryOr(c, "limit", h.defaults.Limit)

	payload := h.queries.Dashboard(c.Request.Context(), days, limit)
	c.JSON(http.StatusOK, payload)
}

// Create validates and applies a new stock movement
func (h *StockMovementHandler) Create(c *gin.Context) {
	var req createMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
		return
	}

	movement, err := h.movements.Create(c.Request.Context(), ledger.NewMovement{
		Kind:            ledger.MovementKind(req.Type),
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		WarehouseID:     req.WarehouseID,
		FromWarehouseID: req.FromWarehouseID,
		ToWarehouseID:   req.ToWarehouseID,
		Reference:       req.Reference,
		Reason:          req.Reason,
		UserID:          req.UserID,
	})
	if err != nil {
		c.JSON(dto.StatusForError(err), dto.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, movementCreatedResponse{
		Success:  true,
		Movement: *movement,
	})
}

// Delete reverses a movement and removes it from the ledger
func (h *StockMovementHandler) Delete(c *gin.Context) {
	idStr := c.Query("id")
	if idStr == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("missing movement id"))
		return
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid movement id"))
		return
	}

	if err := h.movements.Delete(c.Request.Context(), uint(id)); err != nil {
		c.JSON(dto.StatusForError(err), dto.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse())
}

// intQueryOr parses an integer query value, falling back to def when the
// value is absent, malformed, or non-positive.
func intQueryOr(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return def
	}
	return value
}
