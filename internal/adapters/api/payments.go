package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/messmate/mess-client/internal/core/domain"
)

type CreateOrderRequest struct {
	Subscription int64   `json:"subscription"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency,omitempty"`
}

type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	GatewaySignature string `json:"gateway_signature"`
}

func (c *Client) Payments(ctx context.Context) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := c.do(ctx, http.MethodGet, "/payments/payments/", nil, &payments)
	return payments, err
}

func (c *Client) Payment(ctx context.Context, id int64) (*domain.Payment, error) {
	var payment domain.Payment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/payments/payments/%d/", id), nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// Receipt returns the raw receipt document; the shape is owned by the
// backend's invoicing layer.
func (c *Client) Receipt(ctx context.Context, id int64) (json.RawMessage, error) {
	var receipt json.RawMessage
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/payments/payments/%d/receipt/", id), nil, &receipt)
	return receipt, err
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "/payments/orders/", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) error {
	return c.do(ctx, http.MethodPost, "/payments/orders/verify_payment/", req, nil)
}

func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := c.do(ctx, http.MethodGet, "/payments/orders/", nil, &orders)
	return orders, err
}

func (c *Client) Refunds(ctx context.Context) ([]domain.Refund, error) {
	var refunds []domain.Refund
	err := c.do(ctx, http.MethodGet, "/payments/refunds/", nil, &refunds)
	return refunds, err
}

func (c *Client) CreateRefund(ctx context.Context, payment int64, reason string) (*domain.Refund, error) {
	body := map[string]any{"payment": payment, "reason": reason}
	var refund domain.Refund
	if err := c.do(ctx, http.MethodPost, "/payments/refunds/", body, &refund); err != nil {
		return nil, err
	}
	return &refund, nil
}

func (c *Client) PendingRefunds(ctx context.Context) ([]domain.Refund, error) {
	var refunds []domain.Refund
	err := c.do(ctx, http.MethodGet, "/payments/refunds/pending/", nil, &refunds)
	return refunds, err
}

func (c *Client) ApproveRefund(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/payments/refunds/%d/approve/", id), struct{}{}, nil)
}

func (c *Client) RejectRefund(ctx context.Context, id int64, reason string) error {
	body := map[string]string{"reason": reason}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/payments/refunds/%d/reject/", id), body, nil)
}

func (c *Client) MarkRefundPaid(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/payments/refunds/%d/mark_paid/", id), struct{}{}, nil)
}
