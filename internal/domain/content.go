package domain

import "time"

// ContentType represents the kind of content item exchanged between partners.
type ContentType string

const (
	ContentTypeDare   ContentType = "dare"
	ContentTypeOrder  ContentType = "order"
	ContentTypeMemory ContentType = "memory"
)

// ValidContentType reports whether t is one of the known content types.
func ValidContentType(t ContentType) bool {
	switch t {
	case ContentTypeDare, ContentTypeOrder, ContentTypeMemory:
		return true
	}
	return false
}

// ContentItem represents a typed message sent from one partner to the other.
// Completion is one-way: completed never flips back and completed_at is set
// exactly once.
type ContentItem struct {
	ID          string      `json:"id" db:"id"`
	Type        ContentType `json:"type" db:"type"`
	Title       string      `json:"title" db:"title"`
	Body        string      `json:"body" db:"body"`
	SenderID    string      `json:"sender_id" db:"sender_id"`
	ReceiverID  string      `json:"receiver_id" db:"receiver_id"`
	Completed   bool        `json:"completed" db:"completed"`
	CompletedAt *time.Time  `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// ContentFeedItem is a content item joined with the display names of both
// participants, as rendered in the shared feed.
type ContentFeedItem struct {
	ContentItem
	SenderName   string `json:"sender_name" db:"sender_name"`
	ReceiverName string `json:"receiver_name" db:"receiver_name"`
}

// CounterpartName returns the display name of the other participant from the
// point of view of userID.
func (c ContentFeedItem) CounterpartName(userID string) string {
	if c.SenderID == userID {
		return c.ReceiverName
	}
	return c.SenderName
}
