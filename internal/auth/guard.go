// Package auth decides who may do what. Every decision is a pure function of
// the principal and the target resource; the package never touches storage,
// so it can be exercised standalone in tests. Core operations receive their
// principal as an explicit argument rather than reading ambient state.
package auth

import (
	"github.com/travelgo/tour-booking-backend/internal/apperrors"
	"github.com/travelgo/tour-booking-backend/internal/models"
)

// Principal is the authenticated identity attached to an inbound request.
// The zero value represents an anonymous caller.
type Principal struct {
	Username string
	Roles    []string
}

// IsAnonymous reports whether no authenticated identity is present.
func (p Principal) IsAnonymous() bool {
	return p.Username == ""
}

// HasRole reports whether the principal carries the given role.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// CanRead reports whether the principal may read the booking: the owner or
// any administrator.
func CanRead(p Principal, b *models.Booking) bool {
	return p.Username == b.UserRef || p.HasRole(models.RoleAdmin)
}

// CanCancel reports whether the principal may cancel the booking. Same rule
// as CanRead.
func CanCancel(p Principal, b *models.Booking) bool {
	return CanRead(p, b)
}

// RequireAuthenticated fails with Unauthenticated when the caller is
// anonymous.
func RequireAuthenticated(p Principal) error {
	if p.IsAnonymous() {
		return apperrors.Unauthenticated("authentication required")
	}
	return nil
}

// RequireRole fails with Unauthenticated for anonymous callers and Forbidden
// for principals lacking the role.
func RequireRole(p Principal, role string) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if !p.HasRole(role) {
		return apperrors.Forbidden("role " + role + " required")
	}
	return nil
}
