package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/shivaccounts/backend/internal/application/trade"
	"github.com/shivaccounts/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderHandler handles purchase and sales order endpoints
type OrderHandler struct {
	BaseHandler
	service *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(service *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.Get)
		orders.POST("/:id/items", h.AddItem)
		orders.PUT("/:id/items/:itemId", h.UpdateItem)
		orders.DELETE("/:id/items/:itemId", h.RemoveItem)
		orders.POST("/:id/transition", h.Transition)
	}
}

// CreateOrderRequest is the request body for opening a draft order
type CreateOrderRequest struct {
	Kind           string    `json:"kind" binding:"required,oneof=purchase sales"`
	CounterpartyID string    `json:"counterparty_id" binding:"required,uuid"`
	OrderDate      time.Time `json:"order_date" binding:"required"`
}

// ItemRequest is the request body for adding or updating an order line
type ItemRequest struct {
	ProductID string           `json:"product_id" binding:"omitempty,uuid"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	TaxRate   *decimal.Decimal `json:"tax_rate"`
}

// TransitionRequest is the request body for advancing an order's lifecycle
type TransitionRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed billed invoiced"`
}

// TransitionResponse carries the transitioned order and, for terminal
// transitions, the document created alongside it
type TransitionResponse struct {
	Order    *trade.Order `json:"order"`
	Document interface{}  `json:"document,omitempty"`
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	counterpartyID, err := uuid.Parse(req.CounterpartyID)
	if err != nil {
		h.BadRequest(c, "Invalid counterparty ID")
		return
	}

	order, err := h.service.CreateOrder(tradeapp.CreateOrderInput{
		Kind:           trade.OrderKind(req.Kind),
		CounterpartyID: counterpartyID,
		OrderDate:      req.OrderDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.service.GetOrder(id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders := h.service.ListOrders(
		trade.OrderKind(c.Query("kind")),
		trade.OrderStatus(c.Query("status")),
	)
	h.List(c, orders, len(orders))
}

func (h *OrderHandler) itemInput(c *gin.Context, req ItemRequest) (tradeapp.ItemInput, bool) {
	input := tradeapp.ItemInput{
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		TaxRate:   req.TaxRate,
	}
	if req.ProductID != "" {
		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID")
			return tradeapp.ItemInput{}, false
		}
		input.ProductID = productID
	}
	return input, true
}

// AddItem handles POST /orders/:id/items
func (h *OrderHandler) AddItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input, ok := h.itemInput(c, req)
	if !ok {
		return
	}

	order, err := h.service.AddItem(id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateItem handles PUT /orders/:id/items/:itemId
func (h *OrderHandler) UpdateItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input, ok := h.itemInput(c, req)
	if !ok {
		return
	}

	order, err := h.service.UpdateItem(id, itemID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// RemoveItem handles DELETE /orders/:id/items/:itemId
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	order, err := h.service.RemoveItem(id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Transition handles POST /orders/:id/transition
func (h *OrderHandler) Transition(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, doc, err := h.service.Transition(id, trade.OrderStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := TransitionResponse{Order: order}
	if doc != nil {
		resp.Document = doc
	}
	h.Success(c, resp)
}
