package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ayaka/snugglespace/internal/domain"
)

// fakeStore is an in-memory store backing all three service store
// interfaces. AcceptAndLink mirrors the repository's transactional
// semantics: the status guard decides the winner under concurrency and the
// partner columns must be unset on both sides.
type fakeStore struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	invs   map[string]*domain.Invitation
	items  map[string]*domain.ContentItem
	nextID int

	findUserErr   error
	acceptErr     error
	completeErr   error
	insertInvErr  error
	insertItemErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: make(map[string]*domain.User),
		invs:  make(map[string]*domain.Invitation),
		items: make(map[string]*domain.ContentItem),
	}
}

func (f *fakeStore) genID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeStore) addUser(id string) *domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &domain.User{
		ID:          id,
		Provider:    domain.AuthProviderGoogle,
		ProviderID:  "prov-" + id,
		Email:       id + "@example.com",
		DisplayName: "User " + id,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.users[id] = u
	return u
}

func (f *fakeStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findUserErr != nil {
		return nil, f.findUserErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) Upsert(_ context.Context, user domain.User) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Provider == user.Provider && u.ProviderID == user.ProviderID {
			u.Email = user.Email
			u.DisplayName = user.DisplayName
			u.AvatarURL = user.AvatarURL
			cp := *u
			return &cp, nil
		}
	}
	user.ID = f.genID("user")
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := user
	f.users[user.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeStore) UpdateProfile(_ context.Context, id string, displayName string, avatarURL *string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u.DisplayName = displayName
	u.AvatarURL = avatarURL
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func (f *fakeStore) FindPartnerSummary(_ context.Context, id string) (*domain.PartnerSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.PartnerSummary{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}, nil
}

func (f *fakeStore) Insert(_ context.Context, inv domain.Invitation) (*domain.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertInvErr != nil {
		return nil, f.insertInvErr
	}
	inv.ID = f.genID("inv")
	inv.CreatedAt = time.Now()
	cp := inv
	f.invs[inv.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeStore) FindPendingByCode(_ context.Context, code string) (*domain.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inv := range f.invs {
		if inv.InvitationCode == code && inv.Status == domain.InvitationStatusPending {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStore) AcceptAndLink(_ context.Context, invitationID, inviterID, accepterID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.acceptErr != nil {
		return f.acceptErr
	}
	inv, ok := f.invs[invitationID]
	if !ok || inv.Status != domain.InvitationStatusPending || time.Now().After(inv.ExpiresAt) {
		return domain.ErrNotFound
	}
	inviter, accepter := f.users[inviterID], f.users[accepterID]
	if inviter == nil || accepter == nil {
		return domain.ErrConflict
	}
	if inviter.PartnerID != nil || accepter.PartnerID != nil {
		return domain.ErrConflict
	}
	inv.Status = domain.InvitationStatusAccepted
	inviterIDCopy, accepterIDCopy := inviterID, accepterID
	accepter.PartnerID = &inviterIDCopy
	inviter.PartnerID = &accepterIDCopy
	return nil
}

func (f *fakeStore) InsertContent(ctx context.Context, item domain.ContentItem) (*domain.ContentItem, error) {
	return f.insertContent(item)
}

func (f *fakeStore) insertContent(item domain.ContentItem) (*domain.ContentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertItemErr != nil {
		return nil, f.insertItemErr
	}
	item.ID = f.genID("item")
	// Monotonic timestamps so newest-first ordering is deterministic.
	item.CreatedAt = time.Unix(int64(1_700_000_000+f.nextID), 0)
	item.UpdatedAt = item.CreatedAt
	cp := item
	f.items[item.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeStore) FindContentByID(_ context.Context, id string) (*domain.ContentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeStore) ListForUser(_ context.Context, userID string) ([]domain.ContentFeedItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ContentFeedItem
	for _, item := range f.items {
		if item.SenderID != userID && item.ReceiverID != userID {
			continue
		}
		feed := domain.ContentFeedItem{ContentItem: *item}
		if s, ok := f.users[item.SenderID]; ok {
			feed.SenderName = s.DisplayName
		}
		if r, ok := f.users[item.ReceiverID]; ok {
			feed.ReceiverName = r.DisplayName
		}
		out = append(out, feed)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeStore) MarkCompleted(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.completeErr != nil {
		return f.completeErr
	}
	item, ok := f.items[id]
	if !ok {
		return nil
	}
	if !item.Completed {
		now := time.Now()
		item.Completed = true
		item.CompletedAt = &now
		item.UpdatedAt = now
	}
	return nil
}

// contentStoreAdapter renames the content methods to the ContentStore
// interface, since fakeStore already uses Insert/FindByID for invitations
// and users.
type contentStoreAdapter struct {
	*fakeStore
}

func (a contentStoreAdapter) Insert(ctx context.Context, item domain.ContentItem) (*domain.ContentItem, error) {
	return a.fakeStore.InsertContent(ctx, item)
}

func (a contentStoreAdapter) FindByID(ctx context.Context, id string) (*domain.ContentItem, error) {
	return a.fakeStore.FindContentByID(ctx, id)
}
