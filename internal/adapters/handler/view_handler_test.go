package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/messmate/mess-client/internal/adapters/api"
	"github.com/messmate/mess-client/internal/core/domain"
	"github.com/messmate/mess-client/internal/core/services"
	"github.com/messmate/mess-client/test/mocks"
)

// newProfileBackend fakes the two endpoints the profile flow touches.
// The returned pointer controls the status the profile endpoint reports.
func newProfileBackend(t *testing.T) (*api.Client, *services.Notifier, *services.SessionService, *domain.Status) {
	t.Helper()

	status := domain.StatusRegistrationComplete
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/accounts/complete-profile/":
			w.WriteHeader(http.StatusOK)
		case "/accounts/profile/":
			json.NewEncoder(w).Encode(domain.Identity{
				ID:       1,
				Username: "alice",
				Role:     domain.RoleStudent,
				Status:   status,
			})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	tokens := mocks.NewMockTokenStore()
	client := api.NewClient(server.URL, 5*time.Second, tokens)
	notices := services.NewNotifier(time.Minute)
	session := services.NewSessionService(client, tokens)
	return client, notices, session, &status
}

func TestCompleteProfile_NoticeOnlyOnceStatusAdvances(t *testing.T) {
	client, notices, session, status := newProfileBackend(t)
	handler := NewViewHandler(session, notices, client)

	// The backend has not advanced the status yet.
	req := httptest.NewRequest(http.MethodPost, "/profile", strings.NewReader(`{"room":"12B"}`))
	rec := httptest.NewRecorder()
	handler.CompleteProfile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := len(notices.Active()); got != 0 {
		t.Errorf("no success notice should appear before the status advances, got %d", got)
	}

	*status = domain.StatusProfileComplete
	req = httptest.NewRequest(http.MethodPost, "/profile", strings.NewReader(`{"room":"12B"}`))
	rec = httptest.NewRecorder()
	handler.CompleteProfile(rec, req)

	active := notices.Active()
	if len(active) != 1 {
		t.Fatalf("expected one success notice after the advance, got %d", len(active))
	}
	if active[0].Kind != domain.NoticeSuccess || active[0].Title != "Profile Complete" {
		t.Errorf("unexpected notice %+v", active[0])
	}

	var ident domain.Identity
	if err := json.NewDecoder(rec.Body).Decode(&ident); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if ident.Status != domain.StatusProfileComplete {
		t.Errorf("response status = %q, want the refreshed identity", ident.Status)
	}
}
