package domain

import "time"

type NotificationKind string

const (
	NoticeSuccess NotificationKind = "success"
	NoticeError   NotificationKind = "error"
	NoticeWarning NotificationKind = "warning"
	NoticeInfo    NotificationKind = "info"
)

// Notification is a transient user-facing message. It is never persisted;
// it either auto-expires or is dismissed.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	CreatedAt time.Time        `json:"created_at"`
}
