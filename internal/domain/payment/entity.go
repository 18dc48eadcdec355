// internal/domain/payment/entity.go
package payment

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
)

// Status represents payment status
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusCompleted, StatusFailed},
	StatusCompleted: {},
	StatusFailed:    {},
}

// ParseStatus validates an externally supplied status
func ParseStatus(value string) (Status, error) {
	status := Status(value)
	if _, ok := transitions[status]; !ok {
		return "", apperror.InvalidArgument("Invalid payment status: %s", value)
	}
	return status, nil
}

// CanTransitionTo reports whether a payment may move from s to next
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Payment represents a payment made against an order
type Payment struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	OrderID       string          `gorm:"not null;size:64;index" json:"order_id"`
	UserID        string          `gorm:"size:64;index" json:"user_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount"`
	PaymentMethod string          `gorm:"size:50" json:"payment_method"`
	Status        Status          `gorm:"not null;size:20;index" json:"status"`
	TransactionID string          `gorm:"size:64;uniqueIndex" json:"transaction_id"`
	FailureReason string          `gorm:"type:text" json:"failure_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName overrides the table name
func (Payment) TableName() string {
	return "payments"
}
