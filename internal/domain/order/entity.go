// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
)

// Status represents order status
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// transitions lists the statuses reachable from each status
var transitions = map[Status][]Status{
	StatusPending:   {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

// ParseStatus validates an externally supplied status
func ParseStatus(value string) (Status, error) {
	status := Status(value)
	if _, ok := transitions[status]; !ok {
		return "", apperror.InvalidArgument("Invalid order status: %s", value)
	}
	return status, nil
}

// CanTransitionTo reports whether an order may move from s to next.
// Re-applying the current status is allowed.
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

// IsTerminal reports whether no further transition is possible
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Order represents a customer order
type Order struct {
	ID              string          `gorm:"primaryKey;size:36" json:"id"`
	UserID          string          `gorm:"not null;size:64;index" json:"user_id"`
	ProductIDs      []string        `gorm:"serializer:json;type:jsonb" json:"product_ids"`
	Items           []OrderItem     `gorm:"serializer:json;type:jsonb" json:"items"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`
	Status          Status          `gorm:"not null;size:20;index" json:"status"`
	PaymentID       string          `gorm:"size:64" json:"payment_id,omitempty"`
	ShippingAddress string          `gorm:"type:text" json:"shipping_address,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	StatusHistory []StatusHistory `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"status_history,omitempty"`
}

// OrderItem is a purchased product line, embedded in the order row
type OrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// StatusHistory tracks order status changes
type StatusHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   string    `gorm:"not null;size:36;index" json:"order_id"`
	Status    Status    `gorm:"not null;size:20" json:"status"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Order) TableName() string { return "orders" }

// TableName overrides the table name
func (StatusHistory) TableName() string { return "order_status_history" }

// Subtotal returns price x quantity for the line
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemsTotal sums the line subtotals
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}
