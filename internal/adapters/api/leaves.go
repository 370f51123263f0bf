package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/messmate/mess-client/internal/core/domain"
)

type CreateLeaveRequest struct {
	Subscription   int64  `json:"subscription"`
	LeaveStartDate string `json:"leave_start_date"`
	LeaveEndDate   string `json:"leave_end_date"`
	Reason         string `json:"reason"`
}

func (c *Client) Leaves(ctx context.Context) ([]domain.Leave, error) {
	var leaves []domain.Leave
	err := c.do(ctx, http.MethodGet, "/subscriptions/leaves/", nil, &leaves)
	return leaves, err
}

func (c *Client) Leave(ctx context.Context, id int64) (*domain.Leave, error) {
	var leave domain.Leave
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/subscriptions/leaves/%d/", id), nil, &leave); err != nil {
		return nil, err
	}
	return &leave, nil
}

func (c *Client) CreateLeave(ctx context.Context, req CreateLeaveRequest) (*domain.Leave, error) {
	var leave domain.Leave
	if err := c.do(ctx, http.MethodPost, "/subscriptions/leaves/", req, &leave); err != nil {
		return nil, err
	}
	return &leave, nil
}

func (c *Client) UpdateLeave(ctx context.Context, id int64, fields map[string]any) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/subscriptions/leaves/%d/", id), fields, nil)
}

func (c *Client) DeleteLeave(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/subscriptions/leaves/%d/", id), nil, nil)
}

func (c *Client) PendingLeaves(ctx context.Context) ([]domain.Leave, error) {
	var leaves []domain.Leave
	err := c.do(ctx, http.MethodGet, "/subscriptions/leaves/pending/", nil, &leaves)
	return leaves, err
}

func (c *Client) LeaveStats(ctx context.Context) (map[string]any, error) {
	var stats map[string]any
	err := c.do(ctx, http.MethodGet, "/subscriptions/leaves/dashboard_stats/", nil, &stats)
	return stats, err
}

// Mess-owner variants, served under /owner for the admin dashboard.

func (c *Client) OwnerLeaves(ctx context.Context) ([]domain.Leave, error) {
	var leaves []domain.Leave
	err := c.do(ctx, http.MethodGet, "/owner/leaves/", nil, &leaves)
	return leaves, err
}

func (c *Client) OwnerPendingLeaves(ctx context.Context) ([]domain.Leave, error) {
	var leaves []domain.Leave
	err := c.do(ctx, http.MethodGet, "/owner/leaves/pending/", nil, &leaves)
	return leaves, err
}

func (c *Client) ApproveLeave(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/owner/leaves/%d/approve/", id), struct{}{}, nil)
}

func (c *Client) RejectLeave(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/owner/leaves/%d/reject/", id), struct{}{}, nil)
}
