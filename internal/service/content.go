package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ayaka/snugglespace/internal/domain"
)

// ContentStore defines the content data access interface consumed by
// ContentService.
type ContentStore interface {
	Insert(ctx context.Context, item domain.ContentItem) (*domain.ContentItem, error)
	FindByID(ctx context.Context, id string) (*domain.ContentItem, error)
	ListForUser(ctx context.Context, userID string) ([]domain.ContentFeedItem, error)
	MarkCompleted(ctx context.Context, id string) error
}

// ContentService owns creation, listing and completion of content items
// between paired users.
type ContentService struct {
	content ContentStore
	users   PairingUserStore
}

// NewContentService creates a new ContentService.
func NewContentService(content ContentStore, users PairingUserStore) *ContentService {
	return &ContentService{content: content, users: users}
}

// List returns every item the user sent or received, newest first, with the
// counterpart display names attached.
func (s *ContentService) List(ctx context.Context, userID string) ([]domain.ContentFeedItem, error) {
	return s.content.ListForUser(ctx, userID)
}

// Create inserts a new content item addressed to the sender's current
// partner. Fails with domain.ErrNoPartner when the sender is unpaired and
// domain.ErrInvalidInput on an unknown type or blank title/body.
func (s *ContentService) Create(ctx context.Context, senderID string, contentType domain.ContentType, title, body string) (*domain.ContentItem, error) {
	if !domain.ValidContentType(contentType) {
		return nil, fmt.Errorf("%w: unknown content type %q", domain.ErrInvalidInput, contentType)
	}

	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if body == "" {
		return nil, fmt.Errorf("%w: body is required", domain.ErrInvalidInput)
	}

	sender, err := s.users.FindByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if !sender.HasPartner() {
		return nil, domain.ErrNoPartner
	}

	return s.content.Insert(ctx, domain.ContentItem{
		Type:       contentType,
		Title:      title,
		Body:       body,
		SenderID:   senderID,
		ReceiverID: *sender.PartnerID,
	})
}

// Complete marks an item done on behalf of actingUserID. Only the receiver
// may complete; completing an already-completed item is a no-op success and
// leaves the original completed_at untouched.
func (s *ContentService) Complete(ctx context.Context, actingUserID, itemID string) (*domain.ContentItem, error) {
	item, err := s.content.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.ReceiverID != actingUserID {
		return nil, domain.ErrForbidden
	}

	if item.Completed {
		return item, nil
	}

	if err := s.content.MarkCompleted(ctx, itemID); err != nil {
		return nil, err
	}

	return s.content.FindByID(ctx, itemID)
}
