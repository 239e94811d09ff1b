package domain

import (
	"strings"
	"time"
)

// Identity is the result of a successful authentication.
type Identity struct {
	ID    string
	Email string
	Name  string
	Role  Role
}

// SessionClaim is the identity and role data carried in a session token.
type SessionClaim struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  Role   `json:"role"`

	// TokenID and ExpiresAt describe the signed token the claim was decoded
	// from. Both are zero for claims that have not been issued yet.
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// IsAdmin reports whether the claim carries the ADMIN role.
func (c *SessionClaim) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// DemoUserID is the fixed id of the synthetic demo identity.
const DemoUserID = "demo-user"

// DemoUserName is the display name of the synthetic demo identity.
const DemoUserName = "Demo User"

// DemoConfig describes the configuration-gated demo login.
type DemoConfig struct {
	Enabled  bool
	Email    string
	Password string
	Role     Role
}

// Matches reports whether email and password are exactly the demo pair.
func (d DemoConfig) Matches(email, password string) bool {
	return d.Enabled && email == d.Email && password == d.Password
}

// Reserved reports whether email belongs to the demo identity. While demo
// login is on, no stored account may use it.
func (d DemoConfig) Reserved(email string) bool {
	return d.Enabled && strings.EqualFold(strings.TrimSpace(email), d.Email)
}

// Identity returns the fixed demo identity.
func (d DemoConfig) Identity() Identity {
	return Identity{ID: DemoUserID, Email: d.Email, Name: DemoUserName, Role: d.Role}
}

// Claim returns the fixed demo claim.
func (d DemoConfig) Claim() SessionClaim {
	return SessionClaim{ID: DemoUserID, Email: d.Email, Name: DemoUserName, Role: d.Role}
}

// Action is an operation on an owned resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)
