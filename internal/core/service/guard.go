package service

import (
	"github.com/classroom/scheduler/internal/api/metrics"
	"github.com/classroom/scheduler/internal/core/domain"
)

// Authorize decides whether the session may perform action on a resource
// owned by ownerID. Admins may act on anything; everyone else only on what
// they own.
func Authorize(claim *domain.SessionClaim, action domain.Action, ownerID string) error {
	if claim == nil || claim.ID == "" {
		metrics.AuthorizationDecisionsTotal.WithLabelValues("unauthorized").Inc()
		return domain.ErrUnauthorized
	}
	if claim.IsAdmin() || claim.ID == ownerID {
		metrics.AuthorizationDecisionsTotal.WithLabelValues("allow").Inc()
		return nil
	}
	metrics.AuthorizationDecisionsTotal.WithLabelValues("forbidden").Inc()
	return domain.ErrForbidden
}

// OwnerScope returns the owner id a listing must be filtered by. The empty
// string means unscoped and is only ever returned for admins.
func OwnerScope(claim *domain.SessionClaim) (string, error) {
	if claim == nil || claim.ID == "" {
		return "", domain.ErrUnauthorized
	}
	if claim.IsAdmin() {
		return "", nil
	}
	return claim.ID, nil
}
