// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stephenombuya/Velixa/internal/domain/payment"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/response"
)

// PaymentService is the part of payment.Service the payment endpoints use
type PaymentService interface {
	Process(ctx context.Context, req *payment.ProcessPaymentRequest) (*payment.Payment, error)
	GetAll(ctx context.Context) ([]payment.Payment, error)
	GetByID(ctx context.Context, id string) (*payment.Payment, error)
	GetByOrderID(ctx context.Context, orderID string) (*payment.Payment, error)
	GetByUserID(ctx context.Context, userID string) ([]payment.Payment, error)
	GetByStatus(ctx context.Context, status string) ([]payment.Payment, error)
	UpdateStatus(ctx context.Context, id, status string) (*payment.Payment, error)
}

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	paymentService PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// ProcessPayment handles POST /payments
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req payment.ProcessPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	processed, err := h.paymentService.Process(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "Payment processed", processed)
}

// GetPayments handles GET /payments
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	payments, err := h.paymentService.GetAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Payments retrieved successfully", payments)
}

// GetPayment handles GET /payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	found, err := h.paymentService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Payment retrieved successfully", found)
}

// GetOrderPayment handles GET /payments/order/:orderId
func (h *PaymentHandler) GetOrderPayment(c *gin.Context) {
	found, err := h.paymentService.GetByOrderID(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Payment retrieved successfully", found)
}

// GetUserPayments handles GET /payments/user/:userId
func (h *PaymentHandler) GetUserPayments(c *gin.Context) {
	payments, err := h.paymentService.GetByUserID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Payments retrieved successfully", payments)
}

// GetPaymentsByStatus handles GET /payments/status/:status
func (h *PaymentHandler) GetPaymentsByStatus(c *gin.Context) {
	payments, err := h.paymentService.GetByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Payments retrieved successfully", payments)
}

// UpdatePaymentStatus handles PUT /payments/:id?status=
func (h *PaymentHandler) UpdatePaymentStatus(c *gin.Context) {
	status, ok := requiredQuery(c, "status")
	if !ok {
		return
	}

	updated, err := h.paymentService.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Payment status updated successfully", updated)
}
