package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/messmate/mess-client/internal/core/domain"
)

type CreateFeedbackRequest struct {
	FeedbackType string `json:"feedback_type"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
	Rating       *int   `json:"rating,omitempty"`
	MealDate     string `json:"meal_date,omitempty"`
	MealType     string `json:"meal_type,omitempty"`
}

func (c *Client) FeedbackList(ctx context.Context) ([]domain.Feedback, error) {
	var items []domain.Feedback
	err := c.do(ctx, http.MethodGet, "/feedback/", nil, &items)
	return items, err
}

func (c *Client) CreateFeedback(ctx context.Context, req CreateFeedbackRequest) (*domain.Feedback, error) {
	var item domain.Feedback
	if err := c.do(ctx, http.MethodPost, "/feedback/", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) FeedbackByID(ctx context.Context, id int64) (*domain.Feedback, error) {
	var item domain.Feedback
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/feedback/%d/", id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateFeedback(ctx context.Context, id int64, fields map[string]any) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/feedback/%d/", id), fields, nil)
}

func (c *Client) DeleteFeedback(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/feedback/%d/", id), nil, nil)
}

func (c *Client) MyFeedbackStats(ctx context.Context) (map[string]any, error) {
	var stats map[string]any
	err := c.do(ctx, http.MethodGet, "/feedback/my_stats/", nil, &stats)
	return stats, err
}

// Admin surface, available to mess-owner identities.

func (c *Client) AllFeedback(ctx context.Context) ([]domain.Feedback, error) {
	var items []domain.Feedback
	err := c.do(ctx, http.MethodGet, "/feedback/admin/feedback/", nil, &items)
	return items, err
}

func (c *Client) RespondToFeedback(ctx context.Context, id int64, response string) error {
	body := map[string]string{"admin_response": response}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/feedback/admin/feedback/%d/respond/", id), body, nil)
}

func (c *Client) UpdateFeedbackStatus(ctx context.Context, id int64, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/feedback/admin/feedback/%d/update_status/", id), body, nil)
}
