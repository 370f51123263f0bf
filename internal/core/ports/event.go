package ports

import (
	"context"
	"time"
)

const (
	SessionEventLogin   = "session.login"
	SessionEventLogout  = "session.logout"
	SessionEventRefresh = "session.refresh"
)

// SessionEvent is an audit record of a session lifecycle transition.
type SessionEvent struct {
	Kind     string    `json:"kind"`
	UserID   int64     `json:"user_id,omitempty"`
	Username string    `json:"username,omitempty"`
	DeviceID string    `json:"device_id,omitempty"`
	At       time.Time `json:"at"`
}

type SessionEventPublisher interface {
	PublishSessionEvent(ctx context.Context, evt SessionEvent) error
}
