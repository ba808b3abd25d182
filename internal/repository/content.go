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

const contentColumns = `c.id, c.type, c.title, c.body, c.sender_id, c.receiver_id, c.completed, c.completed_at, c.created_at, c.updated_at`

// ContentRepository handles content item data access operations.
type ContentRepository struct {
	db *sqlx.DB
}

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// Insert persists a new content item.
func (r *ContentRepository) Insert(ctx context.Context, item domain.ContentItem) (*domain.ContentItem, error) {
	var result domain.ContentItem
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO content (id, type, title, body, sender_id, receiver_id, completed)
		 VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		 RETURNING id, type, title, body, sender_id, receiver_id, completed, completed_at, created_at, updated_at`,
		uuid.NewString(), item.Type, item.Title, item.Body, item.SenderID, item.ReceiverID,
	).StructScan(&result)
	if err != nil {
		return nil, fmt.Errorf("insert content item: %w", err)
	}
	return &result, nil
}

// FindByID retrieves a content item by its ID.
func (r *ContentRepository) FindByID(ctx context.Context, id string) (*domain.ContentItem, error) {
	var item domain.ContentItem
	err := r.db.GetContext(ctx, &item,
		`SELECT id, type, title, body, sender_id, receiver_id, completed, completed_at, created_at, updated_at
		 FROM content WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find content item %s: %w", id, err)
	}
	return &item, nil
}

// ListForUser returns every item the user sent or received, newest first,
// with both participants' display names joined in.
func (r *ContentRepository) ListForUser(ctx context.Context, userID string) ([]domain.ContentFeedItem, error) {
	items := []domain.ContentFeedItem{}
	err := r.db.SelectContext(ctx, &items,
		`SELECT `+contentColumns+`,
		        s.display_name AS sender_name,
		        rc.display_name AS receiver_name
		 FROM content c
		 JOIN users s ON s.id = c.sender_id
		 JOIN users rc ON rc.id = c.receiver_id
		 WHERE c.sender_id = $1 OR c.receiver_id = $1
		 ORDER BY c.created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list content for user %s: %w", userID, err)
	}
	return items, nil
}

// MarkCompleted flips the item to completed and stamps completed_at. The
// completed guard makes the write idempotent: a second call matches zero rows
// and leaves the original completed_at untouched.
func (r *ContentRepository) MarkCompleted(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE content
		 SET completed = TRUE, completed_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND completed = FALSE`,
		id)
	if err != nil {
		return fmt.Errorf("mark content item %s completed: %w", id, err)
	}
	return nil
}
