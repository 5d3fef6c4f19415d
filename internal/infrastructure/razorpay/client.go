package razorpay

import (
	"context"
	"fmt"

	"github.com/alterera/academy-api/internal/config"
	razorpaysdk "github.com/razorpay/razorpay-go"
)

// Order is the gateway-side order handle returned by CreateOrder.
type Order struct {
	OrderID  string
	Amount   int64
	Currency string
}

// Payment is the authoritative gateway-side view of a payment.
type Payment struct {
	Status  string
	OrderID string
	Amount  int64
}

// Gateway is the subset of the payment gateway the order coordinator needs.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]interface{}) (*Order, error)
	FetchPayment(ctx context.Context, paymentID string) (*Payment, error)
}

type client struct {
	rz *razorpaysdk.Client
}

// NewGateway builds a Gateway over the Razorpay SDK.
func NewGateway(cfg *config.Config) Gateway {
	return &client{rz: razorpaysdk.NewClient(cfg.RazorpayKeyID, cfg.RazorpaySecret)}
}

func (c *client) CreateOrder(_ context.Context, amountMinor int64, currency, receipt string, notes map[string]interface{}) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	}
	out, err := c.rz.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	orderID, _ := out["id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("create order: missing order id in gateway response")
	}
	order := &Order{OrderID: orderID, Amount: amountMinor, Currency: currency}
	if amt, ok := out["amount"].(float64); ok {
		order.Amount = int64(amt)
	}
	if cur, ok := out["currency"].(string); ok {
		order.Currency = cur
	}
	return order, nil
}

func (c *client) FetchPayment(_ context.Context, paymentID string) (*Payment, error) {
	out, err := c.rz.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch payment: %w", err)
	}
	status, _ := out["status"].(string)
	orderID, _ := out["order_id"].(string)
	p := &Payment{Status: status, OrderID: orderID}
	if amt, ok := out["amount"].(float64); ok {
		p.Amount = int64(amt)
	}
	return p, nil
}
