// internal/domain/payment/gateway.go
package payment

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ChargeRequest is what a payment provider needs to capture funds
type ChargeRequest struct {
	PaymentID     string
	OrderID       string
	UserID        string
	Amount        decimal.Decimal
	PaymentMethod string
	TransactionID string
}

// ChargeResult is the provider's verdict on a charge
type ChargeResult struct {
	Status  Status
	Message string
}

// Gateway is an external payment provider
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

// SimulatedGateway approves every charge synchronously
type SimulatedGateway struct {
	logger *logrus.Logger
}

// NewSimulatedGateway creates the default gateway used when no provider is configured
func NewSimulatedGateway(logger *logrus.Logger) *SimulatedGateway {
	return &SimulatedGateway{logger: logger}
}

func (g *SimulatedGateway) Charge(_ context.Context, req ChargeRequest) (*ChargeResult, error) {
	g.logger.WithFields(logrus.Fields{
		"payment_id":     req.PaymentID,
		"order_id":       req.OrderID,
		"transaction_id": req.TransactionID,
		"amount":         req.Amount.StringFixed(2),
	}).Info("Simulated gateway approved payment")

	return &ChargeResult{Status: StatusCompleted, Message: "approved"}, nil
}
