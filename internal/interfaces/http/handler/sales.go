package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stockledger/backend/internal/application/sales"
	"github.com/stockledger/backend/internal/interfaces/http/dto"
)

// SalesHandler records sales orders against the stock ledger
type SalesHandler struct {
	sales *sales.SalesService
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(service *sales.SalesService) *SalesHandler {
	return &SalesHandler{sales: service}
}

// RegisterRoutes registers the sales routes
func (h *SalesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sales", h.Create)
}

// orderCreatedResponse is the envelope for a recorded sale
type orderCreatedResponse struct {
	Success bool                `json:"success"`
	Order   sales.OrderResponse `json:"order"`
}

// Create records a sales order, emitting one exit movement per line
func (h *SalesHandler) Create(c *gin.Context) {
	var input sales.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body"))
		return
	}

	order, err := h.sales.RecordSale(c.Request.Context(), input)
	if err != nil {
		c.JSON(dto.StatusForError(err), dto.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, orderCreatedResponse{
		Success: true,
		Order:   *order,
	})
}
