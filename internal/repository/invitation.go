package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ayaka/snugglespace/internal/domain"
)

const invitationColumns = `id, inviter_id, invitee_email, invitation_code, status, created_at, expires_at`

// InvitationRepository handles partner invitation data access operations.
type InvitationRepository struct {
	db *sqlx.DB
}

// NewInvitationRepository creates a new InvitationRepository.
func NewInvitationRepository(db *sqlx.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// Insert persists a new pending invitation.
func (r *InvitationRepository) Insert(ctx context.Context, inv domain.Invitation) (*domain.Invitation, error) {
	var result domain.Invitation
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO partner_invitations (id, inviter_id, invitee_email, invitation_code, status, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+invitationColumns,
		uuid.NewString(), inv.InviterID, inv.InviteeEmail, inv.InvitationCode, inv.Status, inv.ExpiresAt,
	).StructScan(&result)
	if err != nil {
		return nil, fmt.Errorf("insert invitation: %w", err)
	}
	return &result, nil
}

// FindPendingByCode retrieves a pending invitation by its canonical code.
func (r *InvitationRepository) FindPendingByCode(ctx context.Context, code string) (*domain.Invitation, error) {
	var inv domain.Invitation
	err := r.db.GetContext(ctx, &inv,
		`SELECT `+invitationColumns+`
		 FROM partner_invitations
		 WHERE invitation_code = $1 AND status = $2`,
		code, domain.InvitationStatusPending)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find invitation by code: %w", err)
	}
	return &inv, nil
}

// AcceptAndLink claims the invitation and links both users in one
// transaction. The status guard on the UPDATE is what makes concurrent
// acceptance safe: the second claimant matches zero rows and gets
// domain.ErrNotFound. Both partner_id columns must still be NULL; a user on
// either side who paired in the meantime fails the claim with
// domain.ErrConflict and the transaction rolls back.
func (r *InvitationRepository) AcceptAndLink(ctx context.Context, invitationID, inviterID, accepterID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin accept tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE partner_invitations
		 SET status = $2
		 WHERE id = $1 AND status = $3 AND expires_at > NOW()`,
		invitationID, domain.InvitationStatusAccepted, domain.InvitationStatusPending)
	if err != nil {
		return fmt.Errorf("claim invitation %s: %w", invitationID, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("claim invitation %s: %w", invitationID, err)
	} else if n == 0 {
		return domain.ErrNotFound
	}

	for _, link := range []struct{ userID, partnerID string }{
		{accepterID, inviterID},
		{inviterID, accepterID},
	} {
		res, err := tx.ExecContext(ctx,
			`UPDATE users
			 SET partner_id = $2, updated_at = NOW()
			 WHERE id = $1 AND partner_id IS NULL`,
			link.userID, link.partnerID)
		if err != nil {
			return fmt.Errorf("link user %s: %w", link.userID, err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("link user %s: %w", link.userID, err)
		} else if n == 0 {
			return domain.ErrConflict
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit accept tx: %w", err)
	}
	return nil
}
