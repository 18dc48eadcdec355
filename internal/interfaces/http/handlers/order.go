// internal/interfaces/http/handlers/order.go
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stephenombuya/Velixa/internal/domain/order"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/response"
)

// OrderService is the part of order.Service the order endpoints use
type OrderService interface {
	Create(ctx context.Context, req *order.CreateOrderRequest) (*order.Order, error)
	GetAll(ctx context.Context) ([]order.Order, error)
	GetByID(ctx context.Context, id string) (*order.Order, error)
	GetByUser(ctx context.Context, userID string) ([]order.Order, error)
	GetByStatus(ctx context.Context, status string) ([]order.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*order.Order, error)
	AttachPayment(ctx context.Context, id, paymentID string) (*order.Order, error)
	Update(ctx context.Context, id string, req *order.UpdateOrderRequest) (*order.Order, error)
	Delete(ctx context.Context, id string) error
	Invoice(ctx context.Context, id string) ([]byte, error)
}

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder handles POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req order.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.orderService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "Order created successfully", created)
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.GetAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Orders retrieved successfully", orders)
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	found, err := h.orderService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Order retrieved successfully", found)
}

// GetUserOrders handles GET /orders/user/:userId
func (h *OrderHandler) GetUserOrders(c *gin.Context) {
	orders, err := h.orderService.GetByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Orders retrieved successfully", orders)
}

// GetOrdersByStatus handles GET /orders/status/:status
func (h *OrderHandler) GetOrdersByStatus(c *gin.Context) {
	orders, err := h.orderService.GetByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Orders retrieved successfully", orders)
}

// UpdateOrderStatus handles PUT /orders/:id/status?status=
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	status, ok := requiredQuery(c, "status")
	if !ok {
		return
	}

	updated, err := h.orderService.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Order status updated successfully", updated)
}

// AttachPayment handles PUT /orders/:id/payment/:paymentId
func (h *OrderHandler) AttachPayment(c *gin.Context) {
	updated, err := h.orderService.AttachPayment(c.Request.Context(), c.Param("id"), c.Param("paymentId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Payment attached to order successfully", updated)
}

// UpdateOrder handles PUT /orders/:id
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req order.UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.orderService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Order updated successfully", updated)
}

// DeleteOrder handles DELETE /orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orderService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Order deleted successfully", nil)
}
