package mocks

import (
	"context"
	"sync"

	"github.com/messmate/mess-client/internal/core/domain"
	"github.com/messmate/mess-client/internal/core/ports"
)

// MockAccountGateway implements ports.AccountGateway. It records the
// bearer in effect when Profile runs, so tests can verify the
// credential-before-fetch ordering.
type MockAccountGateway struct {
	mu     sync.Mutex
	bearer string

	LoginPair  domain.TokenPair
	LoginError error
	LoginCalls []string

	ProfileIdentity *domain.Identity
	ProfileError    error
	ProfileCalls    int
	BearerAtProfile []string

	// ProfileFunc, when set, overrides the canned Profile behavior.
	// Used by tests that need to control response timing.
	ProfileFunc func(ctx context.Context) (*domain.Identity, error)
}

var _ ports.AccountGateway = (*MockAccountGateway)(nil)

func NewMockAccountGateway() *MockAccountGateway {
	return &MockAccountGateway{}
}

func (m *MockAccountGateway) Login(ctx context.Context, username, password string) (domain.TokenPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoginCalls = append(m.LoginCalls, username)
	if m.LoginError != nil {
		return domain.TokenPair{}, m.LoginError
	}
	return m.LoginPair, nil
}

func (m *MockAccountGateway) Profile(ctx context.Context) (*domain.Identity, error) {
	m.mu.Lock()
	m.ProfileCalls++
	m.BearerAtProfile = append(m.BearerAtProfile, m.bearer)
	override := m.ProfileFunc
	ident, err := m.ProfileIdentity, m.ProfileError
	m.mu.Unlock()

	if override != nil {
		return override(ctx)
	}
	if err != nil {
		return nil, err
	}
	if ident == nil {
		return nil, nil
	}
	copied := *ident
	return &copied, nil
}

func (m *MockAccountGateway) SetBearer(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bearer = token
}

func (m *MockAccountGateway) ClearBearer() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bearer = ""
}

// Bearer returns the currently attached credential.
func (m *MockAccountGateway) Bearer() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bearer
}
