// internal/domain/payment/service.go
package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
	"github.com/stephenombuya/Velixa/internal/pkg/events"
)

// Service handles payment business logic
type Service struct {
	repo      Repository
	gateway   Gateway
	publisher events.Publisher
	logger    *logrus.Logger
	now       func() time.Time
	newID     func() string
}

// NewService creates a new payment service
func NewService(repo Repository, gateway Gateway, publisher events.Publisher, logger *logrus.Logger) *Service {
	return &Service{
		repo:      repo,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// ProcessPaymentRequest represents payment data
type ProcessPaymentRequest struct {
	OrderID       string          `json:"order_id" binding:"required"`
	UserID        string          `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
}

// Process records a payment as PENDING and settles it through the gateway
func (s *Service) Process(ctx context.Context, req *ProcessPaymentRequest) (*Payment, error) {
	if req.OrderID == "" {
		return nil, apperror.InvalidArgument("Order id is required")
	}
	if req.Amount.IsNegative() {
		return nil, apperror.InvalidArgument("Amount must not be negative")
	}

	now := s.now()
	payment := &Payment{
		ID:            s.newID(),
		OrderID:       req.OrderID,
		UserID:        req.UserID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        StatusPending,
		TransactionID: uuid.NewString(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Save(ctx, payment); err != nil {
		return nil, apperror.Internal(err, "failed to save payment")
	}

	result, err := s.gateway.Charge(ctx, ChargeRequest{
		PaymentID:     payment.ID,
		OrderID:       payment.OrderID,
		UserID:        payment.UserID,
		Amount:        payment.Amount,
		PaymentMethod: payment.PaymentMethod,
		TransactionID: payment.TransactionID,
	})

	next := StatusFailed
	switch {
	case err != nil:
		s.logger.WithFields(logrus.Fields{
			"payment_id": payment.ID,
			"order_id":   payment.OrderID,
		}).WithError(err).Warn("Payment gateway error")
		payment.FailureReason = err.Error()
	case result != nil && (result.Status == StatusCompleted || result.Status == StatusFailed):
		next = result.Status
		if next == StatusFailed {
			payment.FailureReason = result.Message
		}
	default:
		// provider left the charge pending; keep it that way
		next = StatusPending
	}

	if next != payment.Status {
		return s.changeStatus(ctx, payment, next)
	}
	return payment, nil
}

// GetAll returns every payment
func (s *Service) GetAll(ctx context.Context) ([]Payment, error) {
	payments, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list payments")
	}
	return payments, nil
}

// GetByID retrieves a payment by id
func (s *Service) GetByID(ctx context.Context, id string) (*Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrRecordNotFound) {
			return nil, apperror.NotFound("Payment not found with id: %s", id)
		}
		return nil, apperror.Internal(err, "failed to load payment")
	}
	return payment, nil
}

// GetByOrderID retrieves the payment made for orderID
func (s *Service) GetByOrderID(ctx context.Context, orderID string) (*Payment, error) {
	payment, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, apperror.ErrRecordNotFound) {
			return nil, apperror.NotFound("Payment not found for order: %s", orderID)
		}
		return nil, apperror.Internal(err, "failed to load payment")
	}
	return payment, nil
}

// GetByUserID returns the payments made by userID
func (s *Service) GetByUserID(ctx context.Context, userID string) ([]Payment, error) {
	payments, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list payments by user")
	}
	return payments, nil
}

// GetByStatus returns the payments currently in status
func (s *Service) GetByStatus(ctx context.Context, status string) ([]Payment, error) {
	parsed, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.FindByStatus(ctx, parsed)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list payments by status")
	}
	return payments, nil
}

// UpdateStatus settles a pending payment; settled payments are final
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*Payment, error) {
	next, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	payment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payment.Status == next {
		return payment, nil
	}
	if !payment.Status.CanTransitionTo(next) {
		return nil, apperror.InvalidArgument("Cannot change payment status from %s to %s", payment.Status, next)
	}

	return s.changeStatus(ctx, payment, next)
}

func (s *Service) changeStatus(ctx context.Context, payment *Payment, next Status) (*Payment, error) {
	previous := payment.Status
	payment.Status = next
	payment.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, payment); err != nil {
		return nil, apperror.Internal(err, "failed to update payment status")
	}

	s.logger.WithFields(logrus.Fields{
		"payment_id": payment.ID,
		"order_id":   payment.OrderID,
		"from":       previous,
		"to":         next,
	}).Info("Payment status changed")

	events.Emit(ctx, s.publisher, s.logger, events.TopicPaymentStatus, events.New("PAYMENT_"+string(next), payment.ID, map[string]interface{}{
		"order_id":       payment.OrderID,
		"user_id":        payment.UserID,
		"status":         next,
		"amount":         payment.Amount,
		"transaction_id": payment.TransactionID,
	}))

	return payment, nil
}
