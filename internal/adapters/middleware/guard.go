package middleware

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/messmate/mess-client/internal/core/domain"
	"github.com/messmate/mess-client/internal/core/ports"
	"github.com/messmate/mess-client/internal/core/services"
)

// SessionReader is the read-only view of the session the guard needs.
// The guard never mutates session state.
type SessionReader interface {
	Snapshot() (loading bool, ident *domain.Identity)
}

// Guard turns the pure routing decision into HTTP behavior: render,
// redirect with an explanatory notice, or a placeholder while the
// startup probe is still in flight.
type Guard struct {
	session SessionReader
	notices ports.Notifier
}

func NewGuard(session SessionReader, notices ports.Notifier) *Guard {
	return &Guard{session: session, notices: notices}
}

// Protect wraps routes that require a fully onboarded identity.
func (g *Guard) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loading, ident := g.session.Snapshot()
		decision := services.Decide(loading, ident, r.URL.Path)

		switch decision.Action {
		case services.ActionShowLoading:
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "initializing"})

		case services.ActionRedirect:
			if decision.Notice != nil {
				g.notices.Publish(decision.Notice.Kind, decision.Notice.Title, decision.Notice.Body)
			}
			http.Redirect(w, r, redirectTarget(decision), http.StatusSeeOther)

		default:
			next.ServeHTTP(w, r)
		}
	})
}

// Entry wraps the login and registration endpoints: an authenticated
// user is bounced to the dashboard instead of re-authenticating.
func (g *Guard) Entry(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ident := g.session.Snapshot()
		if to, ok := services.EntryRedirect(ident, r.URL.Path); ok {
			http.Redirect(w, r, to, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// redirectTarget carries the originally requested path in the next query
// parameter so the user can be sent back once the condition clears.
func redirectTarget(d services.Decision) string {
	if d.From == "" || d.From == d.To {
		return d.To
	}
	return d.To + "?next=" + url.QueryEscape(d.From)
}
