package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/messmate/mess-client/internal/core/domain"
)

type CreateSubscriptionRequest struct {
	Plan              int64  `json:"plan"`
	BreakfastIncluded bool   `json:"breakfast_included"`
	SubscriptionType  string `json:"subscription_type,omitempty"`
	StartDate         string `json:"start_date,omitempty"`
}

func (c *Client) Plans(ctx context.Context) ([]domain.Plan, error) {
	var plans []domain.Plan
	err := c.do(ctx, http.MethodGet, "/subscriptions/plans/", nil, &plans)
	return plans, err
}

func (c *Client) Plan(ctx context.Context, id int64) (*domain.Plan, error) {
	var plan domain.Plan
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/subscriptions/plans/%d/", id), nil, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *Client) Subscriptions(ctx context.Context) ([]domain.Subscription, error) {
	var subs []domain.Subscription
	err := c.do(ctx, http.MethodGet, "/subscriptions/subscriptions/", nil, &subs)
	return subs, err
}

// ActiveSubscription returns the subscription currently in effect, or a
// RequestError with status 404 when there is none.
func (c *Client) ActiveSubscription(ctx context.Context) (*domain.Subscription, error) {
	var sub domain.Subscription
	if err := c.do(ctx, http.MethodGet, "/subscriptions/subscriptions/active/", nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (c *Client) CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (*domain.Subscription, error) {
	var sub domain.Subscription
	if err := c.do(ctx, http.MethodPost, "/subscriptions/subscriptions/", req, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (c *Client) CancelSubscription(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/subscriptions/subscriptions/%d/cancel/", id), struct{}{}, nil)
}

func (c *Client) RenewSubscription(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/subscriptions/subscriptions/%d/renew/", id), struct{}{}, nil)
}

func (c *Client) DeleteSubscription(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/subscriptions/subscriptions/%d/", id), nil, nil)
}
