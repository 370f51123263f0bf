package ports

import (
	"context"
	"errors"

	"github.com/messmate/mess-client/internal/core/domain"
)

// ErrNoTokens is returned by TokenStore.Load when no credential pair has
// been persisted.
var ErrNoTokens = errors.New("no stored tokens")

// TokenStore is the durable home of the credential pair. The session
// service is the only writer; Clear must be idempotent.
type TokenStore interface {
	Load(ctx context.Context) (domain.TokenPair, error)
	Save(ctx context.Context, pair domain.TokenPair) error
	Clear(ctx context.Context) error
}
