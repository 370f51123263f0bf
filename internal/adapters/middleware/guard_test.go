package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/messmate/mess-client/internal/core/domain"
	"github.com/messmate/mess-client/internal/core/services"
)

type fakeSession struct {
	loading bool
	ident   *domain.Identity
}

func (f *fakeSession) Snapshot() (bool, *domain.Identity) {
	return f.loading, f.ident
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGuard_LoadingBlocksRendering(t *testing.T) {
	guard := NewGuard(&fakeSession{loading: true}, services.NewNotifier(time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	guard.Protect(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 while loading, got %d", rec.Code)
	}
}

func TestGuard_AnonymousRedirectedSilently(t *testing.T) {
	notifier := services.NewNotifier(time.Minute)
	guard := NewGuard(&fakeSession{}, notifier)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	guard.Protect(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/login?next=%2Fdashboard" {
		t.Errorf("Location = %q, want login with remembered path", got)
	}
	if len(notifier.Active()) != 0 {
		t.Error("the not-logged-in redirect must stay silent")
	}
}

func TestGuard_UnverifiedGetsWarningOnce(t *testing.T) {
	notifier := services.NewNotifier(time.Minute)
	session := &fakeSession{ident: &domain.Identity{ID: 1, Status: domain.StatusUnverified}}
	guard := NewGuard(session, notifier)

	req := httptest.NewRequest(http.MethodGet, "/payments", nil)
	rec := httptest.NewRecorder()
	guard.Protect(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/register?next=%2Fpayments" {
		t.Errorf("Location = %q, want register with remembered path", got)
	}

	active := notifier.Active()
	if len(active) != 1 {
		t.Fatalf("expected exactly one notice per navigation attempt, got %d", len(active))
	}
	if active[0].Kind != domain.NoticeWarning {
		t.Errorf("notice kind = %q, want warning", active[0].Kind)
	}
}

func TestGuard_RegistrationCompleteGetsInfoOnce(t *testing.T) {
	notifier := services.NewNotifier(time.Minute)
	session := &fakeSession{ident: &domain.Identity{ID: 1, Status: domain.StatusRegistrationComplete}}
	guard := NewGuard(session, notifier)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	guard.Protect(okHandler()).ServeHTTP(rec, req)

	if got := rec.Header().Get("Location"); got != "/profile?next=%2Fdashboard" {
		t.Errorf("Location = %q, want profile with remembered path", got)
	}
	active := notifier.Active()
	if len(active) != 1 || active[0].Kind != domain.NoticeInfo {
		t.Errorf("expected exactly one info notice, got %+v", active)
	}
}

func TestGuard_CompleteIdentityRenders(t *testing.T) {
	session := &fakeSession{ident: &domain.Identity{ID: 1, Status: domain.StatusProfileComplete}}
	guard := NewGuard(session, services.NewNotifier(time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/leaves", nil)
	rec := httptest.NewRecorder()
	guard.Protect(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected the view to render, got %d", rec.Code)
	}
}

func TestGuard_EntryBouncesAuthenticatedUsers(t *testing.T) {
	session := &fakeSession{ident: &domain.Identity{ID: 1, Status: domain.StatusProfileComplete}}
	guard := NewGuard(session, services.NewNotifier(time.Minute))

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	guard.Entry(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/dashboard" {
		t.Errorf("Location = %q, want /dashboard", got)
	}
}

func TestGuard_EntryLetsAnonymousThrough(t *testing.T) {
	guard := NewGuard(&fakeSession{}, services.NewNotifier(time.Minute))

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	guard.Entry(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("anonymous login attempt should pass through, got %d", rec.Code)
	}
}
