package ports

import (
	"context"

	"github.com/messmate/mess-client/internal/core/domain"
)

// AccountGateway is the slice of the backend API the session service
// needs: credential exchange, identity fetch, and ownership of the
// default outbound bearer header.
type AccountGateway interface {
	Login(ctx context.Context, username, password string) (domain.TokenPair, error)
	Profile(ctx context.Context) (*domain.Identity, error)
	SetBearer(token string)
	ClearBearer()
}

// Notifier publishes transient user-facing notices. The returned id can
// be used to dismiss early.
type Notifier interface {
	Publish(kind domain.NotificationKind, title, body string) string
}
