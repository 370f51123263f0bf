package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/messmate/mess-client/internal/core/domain"
)

func (c *Client) NotificationLogs(ctx context.Context) ([]domain.NotificationLog, error) {
	var logs []domain.NotificationLog
	err := c.do(ctx, http.MethodGet, "/notifications/logs/", nil, &logs)
	return logs, err
}

func (c *Client) NotificationLog(ctx context.Context, id int64) (*domain.NotificationLog, error) {
	var entry domain.NotificationLog
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/notifications/logs/%d/", id), nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *Client) NotificationLogsByType(ctx context.Context) (map[string][]domain.NotificationLog, error) {
	var grouped map[string][]domain.NotificationLog
	err := c.do(ctx, http.MethodGet, "/notifications/logs/by_type/", nil, &grouped)
	return grouped, err
}

func (c *Client) NotificationStats(ctx context.Context) (map[string]any, error) {
	var stats map[string]any
	err := c.do(ctx, http.MethodGet, "/notifications/logs/stats/", nil, &stats)
	return stats, err
}
