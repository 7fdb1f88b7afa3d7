package ports

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found or expired")

// SessionStore abstracts bearer-token session persistence. Tokens expire
// after the TTL supplied on Save; Resolve never returns an expired session.
type SessionStore interface {
	Save(ctx context.Context, token string, userID int64, ttl time.Duration) error
	Resolve(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
	PurgeExpired(ctx context.Context) (int64, error)
}
