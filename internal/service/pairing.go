package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ayaka/snugglespace/internal/domain"
)

// InvitationStore defines the invitation data access interface consumed by
// PairingService.
type InvitationStore interface {
	Insert(ctx context.Context, inv domain.Invitation) (*domain.Invitation, error)
	FindPendingByCode(ctx context.Context, code string) (*domain.Invitation, error)
	AcceptAndLink(ctx context.Context, invitationID, inviterID, accepterID string) error
}

// PairingUserStore is the slice of user access PairingService needs.
type PairingUserStore interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// PairingService owns the invitation lifecycle and the symmetric partner
// link.
type PairingService struct {
	invitations InvitationStore
	users       PairingUserStore

	// One-shot latch for the background auto-accept: each user gets at most
	// one accept attempt per process lifetime. Released again on transient
	// store failure so the next session start can retry.
	mu      sync.Mutex
	claimed map[string]bool
}

// NewPairingService creates a new PairingService.
func NewPairingService(invitations InvitationStore, users PairingUserStore) *PairingService {
	return &PairingService{
		invitations: invitations,
		users:       users,
		claimed:     make(map[string]bool),
	}
}

// CreateInvitation creates a pending invitation from inviterID addressed to
// inviteeEmail. The email is free text and never verified against an
// account; delivery of the code happens outside this system (copy link,
// share sheet).
func (s *PairingService) CreateInvitation(ctx context.Context, inviterID, inviteeEmail string) (*domain.Invitation, error) {
	if _, err := s.users.FindByID(ctx, inviterID); err != nil {
		return nil, err
	}

	code, err := generateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("generate invite code: %w", err)
	}

	now := time.Now()
	return s.invitations.Insert(ctx, domain.Invitation{
		InviterID:      inviterID,
		InviteeEmail:   inviteeEmail,
		InvitationCode: code,
		Status:         domain.InvitationStatusPending,
		ExpiresAt:      now.Add(domain.InvitationTTL),
	})
}

// AcceptInvitation redeems an invitation code for accepterID and links both
// users symmetrically. Returns domain.ErrNotFound for unknown, already
// accepted or expired codes, and domain.ErrConflict when either party is
// already paired (or the accepter tries to redeem their own code).
func (s *PairingService) AcceptInvitation(ctx context.Context, accepterID, code string) error {
	code = domain.NormalizeInviteCode(code)
	if code == "" {
		return domain.ErrNotFound
	}

	inv, err := s.invitations.FindPendingByCode(ctx, code)
	if err != nil {
		return err
	}

	// Expiry is evaluated at read time; there is no background sweep
	// flipping stale rows.
	if inv.ExpiredAt(time.Now()) {
		return domain.ErrNotFound
	}

	if inv.InviterID == accepterID {
		return domain.ErrConflict
	}

	accepter, err := s.users.FindByID(ctx, accepterID)
	if err != nil {
		return err
	}
	if accepter.HasPartner() {
		return domain.ErrConflict
	}

	return s.invitations.AcceptAndLink(ctx, inv.ID, inv.InviterID, accepterID)
}

// AcceptInvitationIfPresent is the background pairing step run on session
// start. It is best-effort: failures are logged, never surfaced. The
// per-user latch guarantees at most one attempt per session even under
// concurrent invocation; transient failures release the latch so a later
// session start retries, while permanent outcomes (redeemed, expired,
// already paired) keep it held.
func (s *PairingService) AcceptInvitationIfPresent(ctx context.Context, userID, code string) {
	if code == "" {
		return
	}

	if !s.tryClaim(userID) {
		return
	}

	err := s.AcceptInvitation(ctx, userID, code)
	switch {
	case err == nil:
		slog.Info("invitation accepted on session start", "user_id", userID)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrConflict):
		slog.Info("invitation not redeemable", "user_id", userID, "error", err)
	default:
		s.release(userID)
		slog.Error("invitation accept failed, will retry next session", "user_id", userID, "error", err)
	}
}

// HandleSession is the AuthService subscription hook.
func (s *PairingService) HandleSession(ctx context.Context, ev SessionEvent) {
	if ev.User == nil {
		return
	}
	s.AcceptInvitationIfPresent(ctx, ev.User.ID, ev.InviteCode)
}

func (s *PairingService) tryClaim(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claimed[userID] {
		return false
	}
	s.claimed[userID] = true
	return true
}

func (s *PairingService) release(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.claimed, userID)
}

const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const inviteCodeLength = 8

// generateInviteCode returns a fresh 8-character uppercase code. 36^8
// combinations make collisions within the 7-day active set negligible; the
// database unique index on invitation_code is the backstop.
func generateInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(buf), nil
}
