package ports

import (
	"context"

	"github.com/classroom/scheduler/internal/core/domain"
)

// OAuthProvider runs the authorization-code flow against an external
// identity provider.
type OAuthProvider interface {
	Name() string
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (domain.ExternalProfile, error)
}
