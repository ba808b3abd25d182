package domain

import (
	"strings"
	"time"
)

// InvitationStatus represents the lifecycle state of a partner invitation.
// Transitions are monotonic: pending moves to accepted or expired, never back.
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusExpired  InvitationStatus = "expired"
)

// InvitationTTL is how long an invitation code stays redeemable.
const InvitationTTL = 7 * 24 * time.Hour

// Invitation represents a pairing offer from one user to their partner-to-be.
// The code is a bearer capability: whoever presents it within the expiry
// window gets linked to the inviter.
type Invitation struct {
	ID             string           `json:"id" db:"id"`
	InviterID      string           `json:"inviter_id" db:"inviter_id"`
	InviteeEmail   string           `json:"invitee_email" db:"invitee_email"`
	InvitationCode string           `json:"invitation_code" db:"invitation_code"`
	Status         InvitationStatus `json:"status" db:"status"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
	ExpiresAt      time.Time        `json:"expires_at" db:"expires_at"`
}

// ExpiredAt reports whether the invitation is past its expiry window at the
// given instant, regardless of the stored status.
func (i Invitation) ExpiredAt(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// NormalizeInviteCode folds a user-entered invitation code to its canonical
// stored form. Codes are stored uppercase and matched case-insensitively.
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
