package services

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/messmate/mess-client/internal/core/domain"
	"github.com/messmate/mess-client/internal/core/ports"
)

// SessionService is the single source of truth for who is logged in and
// how far their onboarding has progressed. It is the only component that
// reads or writes the persisted credential pair and the gateway's default
// bearer header. All state mutation goes through it; consumers only read.
type SessionService struct {
	gateway  ports.AccountGateway
	tokens   ports.TokenStore
	events   ports.SessionEventPublisher // optional, nil disables auditing
	deviceID string

	// expiryOf reports a token's expiry without verifying it. Optional;
	// when set, Initialize discards a stored credential that is already
	// expired instead of issuing a refresh doomed to 401.
	expiryOf func(token string) (time.Time, error)

	mu       sync.Mutex
	identity *domain.Identity
	loading  bool
	seq      uint64 // fences stale refresh responses

	initOnce sync.Once
}

func NewSessionService(gateway ports.AccountGateway, tokens ports.TokenStore) *SessionService {
	return &SessionService{
		gateway: gateway,
		tokens:  tokens,
		loading: true,
	}
}

// WithEvents enables session lifecycle auditing through the given
// publisher. DeviceID tags every event with the local installation.
func (s *SessionService) WithEvents(events ports.SessionEventPublisher, deviceID string) *SessionService {
	s.events = events
	s.deviceID = deviceID
	return s
}

// WithTokenExpiry installs the expiry peek used to pre-screen stored
// credentials during Initialize.
func (s *SessionService) WithTokenExpiry(fn func(token string) (time.Time, error)) *SessionService {
	s.expiryOf = fn
	return s
}

// Loading reports whether the startup probe is still in flight. The route
// guard never renders protected content while this is true.
func (s *SessionService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Identity returns a copy of the current identity, or nil when no one is
// logged in.
func (s *SessionService) Identity() *domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	ident := *s.identity
	return &ident
}

// Snapshot returns the loading flag and identity in one consistent read.
func (s *SessionService) Snapshot() (bool, *domain.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return s.loading, nil
	}
	ident := *s.identity
	return s.loading, &ident
}

// Initialize probes durable storage for a persisted credential and, when
// one exists, attaches it and attempts an identity refresh. The loading
// flag drops exactly once, strictly after the refresh attempt settles.
// Safe to call more than once; only the first call does work.
func (s *SessionService) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		defer func() {
			s.mu.Lock()
			s.loading = false
			s.mu.Unlock()
		}()

		pair, err := s.tokens.Load(ctx)
		if err != nil {
			if !errors.Is(err, ports.ErrNoTokens) {
				log.Printf("session: failed to load stored tokens: %v", err)
			}
			return
		}

		if s.expiryOf != nil {
			if exp, err := s.expiryOf(pair.Access); err == nil && !exp.After(time.Now()) {
				log.Printf("session: stored access token expired at %s, discarding", exp.Format(time.RFC3339))
				if err := s.tokens.Clear(ctx); err != nil {
					log.Printf("session: failed to clear expired tokens: %v", err)
				}
				return
			}
		}

		s.gateway.SetBearer(pair.Access)
		if err := s.RefreshUser(ctx); err != nil {
			log.Printf("session: startup refresh failed: %v", err)
		}
	})
}

// Login exchanges credentials for a token pair, persists it, attaches the
// bearer header, and only then fetches the identity. A backend rejection
// surfaces as *domain.AuthError and leaves the session empty.
func (s *SessionService) Login(ctx context.Context, username, password string) error {
	pair, err := s.gateway.Login(ctx, username, password)
	if err != nil {
		var reqErr *domain.RequestError
		if errors.As(err, &reqErr) {
			return &domain.AuthError{Detail: reqErr.Detail}
		}
		log.Printf("session: login transport error: %v", err)
		return &domain.AuthError{}
	}

	if err := s.tokens.Save(ctx, pair); err != nil {
		// The in-memory session still works; the user just won't survive
		// a restart.
		log.Printf("session: failed to persist tokens: %v", err)
	}
	s.gateway.SetBearer(pair.Access)

	if err := s.RefreshUser(ctx); err != nil {
		log.Printf("session: post-login refresh failed: %v", err)
	}

	s.publishEvent(ctx, ports.SessionEventLogin)
	return nil
}

// Logout clears the persisted tokens, detaches the bearer header, and
// empties the identity. It never fails and is idempotent: in-flight
// requests that 401 after a logout land here a second time harmlessly.
func (s *SessionService) Logout() {
	ctx := context.Background()
	if err := s.tokens.Clear(ctx); err != nil {
		log.Printf("session: failed to clear stored tokens: %v", err)
	}
	s.gateway.ClearBearer()

	s.mu.Lock()
	had := s.identity != nil
	s.identity = nil
	s.seq++ // invalidates any refresh still in flight
	s.mu.Unlock()

	if had {
		s.publishEvent(ctx, ports.SessionEventLogout)
	}
}

// RefreshUser fetches the identity from the profile endpoint and replaces
// the session's copy wholesale. A 404 or 400 means the profile does not
// exist yet (mid-OTP registration) and is a silent no-op. Any other
// failure invalidates the session via Logout and is returned to the
// caller for logging.
//
// Concurrent refreshes are fenced: each call takes a sequence number and
// a response that resolves after a newer call started is discarded, so
// the identity never reflects a stale response.
func (s *SessionService) RefreshUser(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	ident, err := s.gateway.Profile(ctx)
	if err != nil {
		var reqErr *domain.RequestError
		if errors.As(err, &reqErr) {
			switch reqErr.Status {
			case http.StatusNotFound, http.StatusBadRequest:
				// Profile not created yet; expected during onboarding.
				log.Printf("session: profile incomplete (status %d), keeping current state", reqErr.Status)
				return nil
			}
		}
		s.Logout()
		return err
	}

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return nil
	}
	s.identity = ident
	s.mu.Unlock()

	s.publishEvent(ctx, ports.SessionEventRefresh)
	return nil
}

func (s *SessionService) publishEvent(ctx context.Context, kind string) {
	if s.events == nil {
		return
	}
	evt := ports.SessionEvent{
		Kind:     kind,
		DeviceID: s.deviceID,
		At:       time.Now().UTC(),
	}
	if ident := s.Identity(); ident != nil {
		evt.UserID = ident.ID
		evt.Username = ident.Username
	}
	if err := s.events.PublishSessionEvent(ctx, evt); err != nil {
		log.Printf("session: failed to publish %s event: %v", kind, err)
	}
}
