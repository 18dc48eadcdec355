// internal/domain/notification/service.go
package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
	"github.com/stephenombuya/Velixa/internal/pkg/events"
)

// Service handles notification business logic
type Service struct {
	repo      Repository
	sender    Sender
	publisher events.Publisher
	logger    *logrus.Logger
	now       func() time.Time
}

// NewService creates a new notification service
func NewService(repo Repository, sender Sender, publisher events.Publisher, logger *logrus.Logger) *Service {
	return &Service{
		repo:      repo,
		sender:    sender,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateNotificationRequest represents notification data
type CreateNotificationRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Type    string `json:"type"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// Create stores an unsent notification
func (s *Service) Create(ctx context.Context, req *CreateNotificationRequest) (*Notification, error) {
	if req.UserID == "" {
		return nil, apperror.InvalidArgument("User id is required")
	}

	notificationType := req.Type
	if notificationType == "" {
		notificationType = TypeEmail
	}

	notification := &Notification{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Type:      notificationType,
		Subject:   req.Subject,
		Content:   req.Content,
		Sent:      false,
		CreatedAt: s.now(),
	}

	if err := s.repo.Save(ctx, notification); err != nil {
		return nil, apperror.Internal(err, "failed to create notification")
	}
	return notification, nil
}

// GetAll returns every notification
func (s *Service) GetAll(ctx context.Context) ([]Notification, error) {
	notifications, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list notifications")
	}
	return notifications, nil
}

// GetByID retrieves a notification by id
func (s *Service) GetByID(ctx context.Context, id string) (*Notification, error) {
	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrRecordNotFound) {
			return nil, apperror.NotFound("Notification not found with id: %s", id)
		}
		return nil, apperror.Internal(err, "failed to load notification")
	}
	return notification, nil
}

// GetByUser returns the notifications addressed to userID
func (s *Service) GetByUser(ctx context.Context, userID string) ([]Notification, error) {
	notifications, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list notifications by user")
	}
	return notifications, nil
}

// Send creates a notification and delivers it immediately
func (s *Service) Send(ctx context.Context, req *CreateNotificationRequest) (*Notification, error) {
	notification, err := s.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.deliver(ctx, notification)
}

// SendByID delivers a stored notification
func (s *Service) SendByID(ctx context.Context, id string) (*Notification, error) {
	notification, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.deliver(ctx, notification)
}

// SendOrderConfirmation tells userID that orderID is being processed
func (s *Service) SendOrderConfirmation(ctx context.Context, userID, orderID string) (*Notification, error) {
	if orderID == "" {
		return nil, apperror.InvalidArgument("Order id is required")
	}
	return s.Send(ctx, &CreateNotificationRequest{
		UserID:  userID,
		Type:    TypeEmail,
		Subject: "Order Confirmation",
		Content: fmt.Sprintf("Your order #%s has been confirmed and is being processed.", orderID),
	})
}

func (s *Service) deliver(ctx context.Context, notification *Notification) (*Notification, error) {
	if err := s.sender.Send(ctx, notification); err != nil {
		return nil, apperror.Internal(err, "failed to send notification")
	}

	now := s.now()
	notification.Sent = true
	notification.SentAt = &now

	if err := s.repo.Save(ctx, notification); err != nil {
		return nil, apperror.Internal(err, "failed to update notification")
	}

	events.Emit(ctx, s.publisher, s.logger, events.TopicNotificationSent, events.New("NOTIFICATION_SENT", notification.ID, map[string]interface{}{
		"user_id": notification.UserID,
		"type":    notification.Type,
		"subject": notification.Subject,
	}))

	return notification, nil
}
