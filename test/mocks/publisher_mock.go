package mocks

import (
	"context"
	"sync"

	"github.com/messmate/mess-client/internal/core/ports"
)

// MockEventPublisher implements ports.SessionEventPublisher in memory.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []ports.SessionEvent

	PublishError error
}

var _ ports.SessionEventPublisher = (*MockEventPublisher)(nil)

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) PublishSessionEvent(ctx context.Context, evt ports.SessionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PublishError != nil {
		return m.PublishError
	}
	m.events = append(m.events, evt)
	return nil
}

// Events returns a copy of everything published so far.
func (m *MockEventPublisher) Events() []ports.SessionEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.SessionEvent, len(m.events))
	copy(out, m.events)
	return out
}
