package domain

import "time"

// AuthProvider represents an OAuth provider.
type AuthProvider string

const (
	AuthProviderGoogle AuthProvider = "google"
	AuthProviderGitHub AuthProvider = "github"
)

// User represents an authenticated user. Identity is authoritative at the
// OAuth provider; rows are created lazily on first sign-in.
type User struct {
	ID          string       `json:"id" db:"id"`
	Provider    AuthProvider `json:"provider" db:"provider"`
	ProviderID  string       `json:"provider_id" db:"provider_id"`
	Email       string       `json:"email" db:"email"`
	DisplayName string       `json:"display_name" db:"display_name"`
	AvatarURL   *string      `json:"avatar_url,omitempty" db:"avatar_url"`
	PartnerID   *string      `json:"partner_id,omitempty" db:"partner_id"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// HasPartner reports whether the user is currently paired.
func (u User) HasPartner() bool {
	return u.PartnerID != nil && *u.PartnerID != ""
}

// PartnerSummary is the subset of a partner's profile exposed alongside the
// viewing user's own profile.
type PartnerSummary struct {
	ID          string  `json:"id" db:"id"`
	Email       string  `json:"email" db:"email"`
	DisplayName string  `json:"display_name" db:"display_name"`
	AvatarURL   *string `json:"avatar_url,omitempty" db:"avatar_url"`
}
