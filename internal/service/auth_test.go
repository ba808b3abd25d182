package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayaka/snugglespace/internal/domain"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	return NewAuthService(store, AuthConfig{
		JWTSecret:   "test-secret",
		FrontendURL: "http://localhost:5173",
	}), store
}

func TestTokenPairRoundTrip(t *testing.T) {
	svc, _ := newAuthFixture(t)

	pair, err := svc.generateTokenPair("u1")
	require.NoError(t, err)

	userID, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestValidateToken_RejectsRefreshToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	pair, err := svc.generateTokenPair("u1")
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestValidateToken_RejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestRefreshAccessToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	pair, err := svc.generateTokenPair("u1")
	require.NoError(t, err)

	fresh, err := svc.RefreshAccessToken(pair.RefreshToken)
	require.NoError(t, err)

	userID, err := svc.ValidateToken(fresh.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestRefreshAccessToken_RejectsAccessToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	pair, err := svc.generateTokenPair("u1")
	require.NoError(t, err)

	_, err = svc.RefreshAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSubscribe_NotifyAndUnsubscribe(t *testing.T) {
	svc, store := newAuthFixture(t)
	store.addUser("u1")

	var events []SessionEvent
	unsubscribe := svc.Subscribe(func(_ context.Context, ev SessionEvent) {
		events = append(events, ev)
	})

	user, _ := store.FindByID(context.Background(), "u1")
	svc.notify(context.Background(), SessionEvent{User: user, InviteCode: "ABCD1234"})
	require.Len(t, events, 1)
	assert.Equal(t, "u1", events[0].User.ID)
	assert.Equal(t, "ABCD1234", events[0].InviteCode)

	// Unsubscribe is synchronous: no further deliveries once it returns.
	unsubscribe()
	svc.notify(context.Background(), SessionEvent{User: user})
	assert.Len(t, events, 1)
}

func TestGetProfile_WithPartner(t *testing.T) {
	svc, store := newAuthFixture(t)
	store.addUser("u1")
	store.addUser("u2")
	store.mu.Lock()
	partnerID := "u2"
	store.users["u1"].PartnerID = &partnerID
	store.mu.Unlock()

	profile, err := svc.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, profile.Partner)
	assert.Equal(t, "u2", profile.Partner.ID)
	assert.Equal(t, "User u2", profile.Partner.DisplayName)
}

func TestGetProfile_Unpaired(t *testing.T) {
	svc, store := newAuthFixture(t)
	store.addUser("u1")

	profile, err := svc.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, profile.Partner)
}

func TestGetProfile_UnknownUser(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, store := newAuthFixture(t)
	store.addUser("u1")

	avatar := "https://example.com/a.png"
	user, err := svc.UpdateProfile(context.Background(), "u1", "Moonpie", &avatar)
	require.NoError(t, err)
	assert.Equal(t, "Moonpie", user.DisplayName)
	require.NotNil(t, user.AvatarURL)
	assert.Equal(t, avatar, *user.AvatarURL)
}
