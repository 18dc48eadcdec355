package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stephenombuya/Velixa/internal/domain/notification"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/response"
)

// NotificationService is the part of notification.Service the notification endpoints use
type NotificationService interface {
	Create(ctx context.Context, req *notification.CreateNotificationRequest) (*notification.Notification, error)
	GetAll(ctx context.Context) ([]notification.Notification, error)
	GetByID(ctx context.Context, id string) (*notification.Notification, error)
	GetByUser(ctx context.Context, userID string) ([]notification.Notification, error)
	Send(ctx context.Context, req *notification.CreateNotificationRequest) (*notification.Notification, error)
	SendByID(ctx context.Context, id string) (*notification.Notification, error)
	SendOrderConfirmation(ctx context.Context, userID, orderID string) (*notification.Notification, error)
}

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notificationService NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// CreateNotification handles POST /notifications
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req notification.CreateNotificationRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.notificationService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "Notification created successfully", created)
}

// GetNotifications handles GET /notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	notifications, err := h.notificationService.GetAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Notifications retrieved successfully", notifications)
}

// GetNotification handles GET /notifications/:id
func (h *NotificationHandler) GetNotification(c *gin.Context) {
	found, err := h.notificationService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Notification retrieved successfully", found)
}

// GetUserNotifications handles GET /notifications/user/:userId
func (h *NotificationHandler) GetUserNotifications(c *gin.Context) {
	notifications, err := h.notificationService.GetByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Notifications retrieved successfully", notifications)
}

// SendNotification handles POST /notifications/send
func (h *NotificationHandler) SendNotification(c *gin.Context) {
	var req notification.CreateNotificationRequest
	if !bindJSON(c, &req) {
		return
	}

	sent, err := h.notificationService.Send(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Notification sent successfully", sent)
}

// SendExisting handles POST /notifications/send/:id
func (h *NotificationHandler) SendExisting(c *gin.Context) {
	sent, err := h.notificationService.SendByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Notification sent successfully", sent)
}

// SendOrderConfirmation handles POST /notifications/order-confirmation?userId=&orderId=
func (h *NotificationHandler) SendOrderConfirmation(c *gin.Context) {
	userID, ok := requiredQuery(c, "userId")
	if !ok {
		return
	}
	orderID, ok := requiredQuery(c, "orderId")
	if !ok {
		return
	}

	sent, err := h.notificationService.SendOrderConfirmation(c.Request.Context(), userID, orderID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, "Order confirmation sent successfully", sent)
}
