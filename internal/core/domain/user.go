package domain

import "time"

// User models an account in the credential store.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Image        string    `json:"image,omitempty"`
	School       string    `json:"school,omitempty"`
	ProfileClass string    `json:"profile_class,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasPassword is false for accounts created through OAuth.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Identity returns the minimal identity claim for u.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// ProfileUpdate carries the optional fields a user may edit on their own
// profile. Nil means "leave unchanged".
type ProfileUpdate struct {
	Name         *string
	Image        *string
	School       *string
	ProfileClass *string
	Bio          *string
}

// Empty reports whether the update touches no field.
func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.Image == nil && p.School == nil && p.ProfileClass == nil && p.Bio == nil
}

// ExternalProfile is what an OAuth provider tells us about a user.
type ExternalProfile struct {
	Provider string
	Subject  string
	Email    string
	Name     string
	Image    string
}
