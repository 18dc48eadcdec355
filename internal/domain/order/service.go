// internal/domain/order/service.go
package order

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
	"github.com/stephenombuya/Velixa/internal/pkg/events"
)

// InvoiceGenerator renders an order as a printable document
type InvoiceGenerator interface {
	GenerateInvoice(order *Order) (*bytes.Buffer, error)
}

// Service handles order business logic
type Service struct {
	repo      Repository
	invoices  InvoiceGenerator
	publisher events.Publisher
	logger    *logrus.Logger
	now       func() time.Time
	newID     func() string
}

// NewService creates a new order service
func NewService(repo Repository, invoices InvoiceGenerator, publisher events.Publisher, logger *logrus.Logger) *Service {
	return &Service{
		repo:      repo,
		invoices:  invoices,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// CreateOrderRequest represents order creation data
type CreateOrderRequest struct {
	UserID          string          `json:"user_id" binding:"required"`
	ProductIDs      []string        `json:"product_ids"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ShippingAddress string          `json:"shipping_address"`
}

// UpdateOrderRequest represents order update data
type UpdateOrderRequest struct {
	UserID      string          `json:"user_id" binding:"required"`
	ProductIDs  []string        `json:"product_ids"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// Create places a new order in PENDING status.
// A zero total is computed from the line items when any are given.
func (s *Service) Create(ctx context.Context, req *CreateOrderRequest) (*Order, error) {
	if req.UserID == "" {
		return nil, apperror.InvalidArgument("User id is required")
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, apperror.InvalidArgument("Quantity must be at least 1 for product: %s", item.ProductID)
		}
		if item.Price.IsNegative() {
			return nil, apperror.InvalidArgument("Price must not be negative for product: %s", item.ProductID)
		}
	}

	now := s.now()
	order := &Order{
		ID:              s.newID(),
		UserID:          req.UserID,
		ProductIDs:      req.ProductIDs,
		Items:           req.Items,
		TotalAmount:     req.TotalAmount,
		Status:          StatusPending,
		ShippingAddress: req.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if len(order.Items) > 0 {
		if order.TotalAmount.IsZero() {
			order.TotalAmount = order.ItemsTotal()
		}
		if len(order.ProductIDs) == 0 {
			for _, item := range order.Items {
				order.ProductIDs = append(order.ProductIDs, item.ProductID)
			}
		}
	}
	if order.ProductIDs == nil {
		order.ProductIDs = []string{}
	}

	history := s.historyEntry(order.ID, StatusPending, "Order created")
	if err := s.repo.Create(ctx, order, history); err != nil {
		return nil, apperror.Internal(err, "failed to create order")
	}
	order.StatusHistory = []StatusHistory{*history}

	s.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.TotalAmount.StringFixed(2),
	}).Info("Order created")

	return order, nil
}

// GetAll returns every order
func (s *Service) GetAll(ctx context.Context) ([]Order, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list orders")
	}
	return orders, nil
}

// GetByID retrieves an order with its status history
func (s *Service) GetByID(ctx context.Context, id string) (*Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrRecordNotFound) {
			return nil, apperror.NotFound("Order not found with id: %s", id)
		}
		return nil, apperror.Internal(err, "failed to load order")
	}
	return order, nil
}

// GetByUser returns the orders placed by userID
func (s *Service) GetByUser(ctx context.Context, userID string) ([]Order, error) {
	orders, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list orders by user")
	}
	return orders, nil
}

// GetByStatus returns the orders currently in status
func (s *Service) GetByStatus(ctx context.Context, status string) ([]Order, error) {
	parsed, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.FindByStatus(ctx, parsed)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list orders by status")
	}
	return orders, nil
}

// UpdateStatus moves an order to status along an allowed transition
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	next, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status == next {
		return order, nil
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, apperror.InvalidArgument("Cannot change order status from %s to %s", order.Status, next)
	}

	return s.changeStatus(ctx, order, next, fmt.Sprintf("Status changed from %s to %s", order.Status, next))
}

// AttachPayment records paymentID on the order and marks it PAID regardless of its current status.
// Re-attaching the payment an order is already paid with changes nothing.
func (s *Service) AttachPayment(ctx context.Context, id, paymentID string) (*Order, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == StatusPaid && order.PaymentID == paymentID {
		return order, nil
	}

	order.PaymentID = paymentID
	if order.Status != StatusPaid {
		s.logger.WithFields(logrus.Fields{
			"order_id":   order.ID,
			"payment_id": paymentID,
			"from":       order.Status,
		}).Info("Marking order as paid")
	}

	return s.changeStatus(ctx, order, StatusPaid, fmt.Sprintf("Payment %s attached", paymentID))
}

// Update replaces the owner, products and total of an order
func (s *Service) Update(ctx context.Context, id string, req *UpdateOrderRequest) (*Order, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order.UserID = req.UserID
	order.ProductIDs = req.ProductIDs
	if order.ProductIDs == nil {
		order.ProductIDs = []string{}
	}
	order.TotalAmount = req.TotalAmount
	order.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, order, nil); err != nil {
		return nil, apperror.Internal(err, "failed to update order")
	}
	return order, nil
}

// Delete removes an order and its history
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrRecordNotFound) {
			return apperror.NotFound("Order not found with id: %s", id)
		}
		return apperror.Internal(err, "failed to delete order")
	}
	return nil
}

// Invoice renders the PDF invoice of an order
func (s *Service) Invoice(ctx context.Context, id string) ([]byte, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	buf, err := s.invoices.GenerateInvoice(order)
	if err != nil {
		return nil, apperror.Internal(err, "failed to generate invoice")
	}
	return buf.Bytes(), nil
}

func (s *Service) changeStatus(ctx context.Context, order *Order, next Status, comment string) (*Order, error) {
	previous := order.Status
	order.Status = next
	order.UpdatedAt = s.now()

	history := s.historyEntry(order.ID, next, comment)
	if err := s.repo.Save(ctx, order, history); err != nil {
		return nil, apperror.Internal(err, "failed to update order status")
	}
	order.StatusHistory = append(order.StatusHistory, *history)

	events.Emit(ctx, s.publisher, s.logger, events.TopicOrderStatus, events.New("ORDER_"+string(next), order.ID, map[string]interface{}{
		"user_id":         order.UserID,
		"previous_status": previous,
		"status":          next,
		"payment_id":      order.PaymentID,
	}))

	return order, nil
}

func (s *Service) historyEntry(orderID string, status Status, comment string) *StatusHistory {
	return &StatusHistory{
		OrderID:   orderID,
		Status:    status,
		Comment:   comment,
		CreatedAt: s.now(),
	}
}
