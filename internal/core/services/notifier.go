package services

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/messmate/mess-client/internal/core/domain"
	"github.com/messmate/mess-client/internal/core/ports"
)

// DefaultNoticeTTL is how long a notification stays visible when nobody
// dismisses it.
const DefaultNoticeTTL = 5 * time.Second

type noticeEntry struct {
	notification domain.Notification
	timer        *time.Timer
}

// Notifier is a process-wide, append-only broadcast of transient
// notifications. Every published notification auto-expires after the
// configured TTL unless dismissed first; there is no deduplication and
// no persistence.
type Notifier struct {
	ttl time.Duration

	mu     sync.Mutex
	active map[string]*noticeEntry
	subs   []chan domain.Notification
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier creates a notifier with the given display duration.
// A non-positive ttl falls back to DefaultNoticeTTL.
func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &Notifier{
		ttl:    ttl,
		active: make(map[string]*noticeEntry),
	}
}

// Publish appends a notification and schedules its expiry. Identical
// messages published twice produce two independent entries.
func (n *Notifier) Publish(kind domain.NotificationKind, title, body string) string {
	notification := domain.Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}

	n.mu.Lock()
	entry := &noticeEntry{notification: notification}
	entry.timer = time.AfterFunc(n.ttl, func() { n.Dismiss(notification.ID) })
	n.active[notification.ID] = entry
	subs := make([]chan domain.Notification, len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- notification:
		default:
			// Slow subscribers miss notifications rather than block
			// the publisher.
		}
	}
	return notification.ID
}

// Dismiss removes a notification and cancels its pending expiry. It is a
// no-op when the id is unknown, which covers the race with auto-expiry.
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	entry, ok := n.active[id]
	if !ok {
		return
	}
	entry.timer.Stop()
	delete(n.active, id)
}

// Active returns the currently visible notifications, oldest first.
func (n *Notifier) Active() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.Notification, 0, len(n.active))
	for _, entry := range n.active {
		out = append(out, entry.notification)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Subscribe registers a channel that receives every notification
// published after the call. Delivery is best-effort; a full channel is
// skipped.
func (n *Notifier) Subscribe(buffer int) <-chan domain.Notification {
	ch := make(chan domain.Notification, buffer)
	n.mu.Lock()
	n.subs = append(n.subs, ch)
	n.mu.Unlock()
	return ch
}
