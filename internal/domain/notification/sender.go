// internal/domain/notification/sender.go
package notification

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Sender delivers a notification over its channel
type Sender interface {
	Send(ctx context.Context, n *Notification) error
}

// LogSender writes notifications to the log instead of delivering them
type LogSender struct {
	logger *logrus.Logger
}

// NewLogSender creates the default sender
func NewLogSender(logger *logrus.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, n *Notification) error {
	s.logger.WithFields(logrus.Fields{
		"notification_id": n.ID,
		"user_id":         n.UserID,
		"type":            n.Type,
		"subject":         n.Subject,
	}).Info("Sending notification")
	return nil
}
