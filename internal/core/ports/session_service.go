package ports

import (
	"context"
	"time"

	"github.com/classroom/scheduler/internal/core/domain"
)

// SessionService issues, decodes and refreshes session tokens.
type SessionService interface {
	Issue(ctx context.Context, identity domain.Identity) (string, domain.SessionClaim, error)
	Decode(ctx context.Context, token string) (domain.SessionClaim, error)
	Refresh(ctx context.Context, claim domain.SessionClaim) (domain.SessionClaim, error)
	Reissue(ctx context.Context, claim domain.SessionClaim) (string, domain.SessionClaim, error)
	Revoke(ctx context.Context, claim domain.SessionClaim) error
}

// TokenRevoker remembers logged-out token ids until they would have expired.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
