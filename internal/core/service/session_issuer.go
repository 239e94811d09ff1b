package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/classroom/scheduler/internal/api/metrics"
	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

const defaultTokenTTL = 30 * 24 * time.Hour

// sessionClaims is the signed token payload.
type sessionClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SessionIssuer signs session tokens and keeps their claims in sync with the
// credential store through a RefreshStrategy.
type SessionIssuer struct {
	secret   []byte
	tokenTTL time.Duration
	strategy RefreshStrategy
	revoker  ports.TokenRevoker
	log      zerolog.Logger
	now      func() time.Time
}

var _ ports.SessionService = (*SessionIssuer)(nil)

func NewSessionIssuer(secret string, tokenTTL time.Duration, strategy RefreshStrategy, revoker ports.TokenRevoker, log zerolog.Logger) *SessionIssuer {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	if revoker == nil {
		revoker = NoopRevoker{}
	}
	return &SessionIssuer{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		strategy: strategy,
		revoker:  revoker,
		log:      log,
		now:      time.Now,
	}
}

// Issue runs the login refresh for identity and signs the resulting claim.
func (s *SessionIssuer) Issue(ctx context.Context, identity domain.Identity) (string, domain.SessionClaim, error) {
	seed := domain.SessionClaim{
		ID:    identity.ID,
		Name:  identity.Name,
		Email: identity.Email,
		Role:  identity.Role,
	}

	claim, err := s.refresh(ctx, seed, &identity)
	if err != nil {
		return "", domain.SessionClaim{}, err
	}
	if !claim.Role.Valid() {
		claim.Role = domain.RoleStudent
	}

	token, claim, err := s.sign(claim)
	if err != nil {
		return "", domain.SessionClaim{}, err
	}
	return token, claim, nil
}

// Decode verifies token and returns the claim it carries. Tokens with an
// unknown role or a revoked id are rejected.
func (s *SessionIssuer) Decode(ctx context.Context, token string) (domain.SessionClaim, error) {
	var c sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return domain.SessionClaim{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if c.Subject == "" {
		return domain.SessionClaim{}, fmt.Errorf("%w: missing subject", domain.ErrInvalidToken)
	}

	role, err := domain.ParseRole(c.Role)
	if err != nil {
		return domain.SessionClaim{}, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}

	if c.ID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, c.ID)
		if err != nil {
			return domain.SessionClaim{}, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return domain.SessionClaim{}, domain.ErrTokenRevoked
		}
	}

	claim := domain.SessionClaim{
		ID:      c.Subject,
		Name:    c.Name,
		Email:   c.Email,
		Role:    role,
		TokenID: c.ID,
	}
	if c.ExpiresAt != nil {
		claim.ExpiresAt = c.ExpiresAt.Time
	}
	return claim, nil
}

// Refresh re-derives claim without a login. Running it twice with no store
// change in between gives the same claim.
func (s *SessionIssuer) Refresh(ctx context.Context, claim domain.SessionClaim) (domain.SessionClaim, error) {
	return s.refresh(ctx, claim, nil)
}

// Reissue signs claim as a fresh token with a new id and expiry.
func (s *SessionIssuer) Reissue(_ context.Context, claim domain.SessionClaim) (string, domain.SessionClaim, error) {
	return s.sign(claim)
}

// Revoke blocks the token claim was decoded from until it would expire.
func (s *SessionIssuer) Revoke(ctx context.Context, claim domain.SessionClaim) error {
	if claim.TokenID == "" {
		return nil
	}
	ttl := claim.ExpiresAt.Sub(s.now())
	if claim.ExpiresAt.IsZero() {
		ttl = s.tokenTTL
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claim.TokenID, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	s.log.Info().Str("user_id", claim.ID).Msg("session revoked")
	return nil
}

func (s *SessionIssuer) refresh(ctx context.Context, claim domain.SessionClaim, login *domain.Identity) (domain.SessionClaim, error) {
	out, err := s.strategy.Refresh(ctx, claim, login)
	if err != nil {
		metrics.SessionRefreshTotal.WithLabelValues(s.strategy.Name(), "error").Inc()
		return domain.SessionClaim{}, err
	}
	metrics.SessionRefreshTotal.WithLabelValues(s.strategy.Name(), "ok").Inc()

	out.TokenID = claim.TokenID
	out.ExpiresAt = claim.ExpiresAt
	return out, nil
}

func (s *SessionIssuer) sign(claim domain.SessionClaim) (string, domain.SessionClaim, error) {
	now := s.now()
	claim.TokenID = uuid.NewString()
	claim.ExpiresAt = now.Add(s.tokenTTL)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claim.ID,
			ID:        claim.TokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(claim.ExpiresAt),
		},
		Name:  claim.Name,
		Email: claim.Email,
		Role:  claim.Role.String(),
	})

	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", domain.SessionClaim{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, claim, nil
}

// NoopRevoker is used when no revocation list is configured. Logout then
// relies on the client discarding its token.
type NoopRevoker struct{}

func (NoopRevoker) Revoke(context.Context, string, time.Duration) error { return nil }

func (NoopRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }
