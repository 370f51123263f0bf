// Package mocks provides mock implementations of port interfaces for
// testing. The session service depends only on ports, so tests can swap
// the real adapters for these in-memory doubles.
package mocks

import (
	"context"
	"sync"

	"github.com/messmate/mess-client/internal/core/domain"
	"github.com/messmate/mess-client/internal/core/ports"
)

// MockTokenStore implements ports.TokenStore in memory.
type MockTokenStore struct {
	mu   sync.Mutex
	pair *domain.TokenPair

	// Call tracking for verification
	LoadCalls  int
	SaveCalls  []domain.TokenPair
	ClearCalls int

	// Error injection for testing error scenarios
	LoadError  error
	SaveError  error
	ClearError error
}

var _ ports.TokenStore = (*MockTokenStore)(nil)

func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{}
}

// Seed installs a stored pair, as if a previous session had persisted it.
func (m *MockTokenStore) Seed(pair domain.TokenPair) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = &pair
}

// Stored returns the currently persisted pair, or nil.
func (m *MockTokenStore) Stored() *domain.TokenPair {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pair == nil {
		return nil
	}
	pair := *m.pair
	return &pair
}

func (m *MockTokenStore) Load(ctx context.Context) (domain.TokenPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls++
	if m.LoadError != nil {
		return domain.TokenPair{}, m.LoadError
	}
	if m.pair == nil {
		return domain.TokenPair{}, ports.ErrNoTokens
	}
	return *m.pair, nil
}

func (m *MockTokenStore) Save(ctx context.Context, pair domain.TokenPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, pair)
	if m.SaveError != nil {
		return m.SaveError
	}
	m.pair = &pair
	return nil
}

func (m *MockTokenStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearError != nil {
		return m.ClearError
	}
	m.pair = nil
	return nil
}
