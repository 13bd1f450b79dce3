package token_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeetupServices/meetup-scheduler/internal/models"
	"github.com/MeetupServices/meetup-scheduler/internal/token"
)

func testUser() *models.User {
	return &models.User{ID: 42, Username: "anna", Role: "teacher"}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	issuer := token.NewIssuer("test-secret", 30, 7)

	signed, err := issuer.AccessToken(testUser())
	require.NoError(t, err)

	claims, err := issuer.ParseAccess(signed)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "teacher", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	issuer := token.NewIssuer("test-secret", 30, 7)

	signed, jti, ttl, err := issuer.RefreshToken(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, jti)
	assert.Positive(t, ttl)

	claims, err := issuer.ParseRefresh(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, jti, claims.ID)
}

func TestTokenTypeMismatch(t *testing.T) {
	issuer := token.NewIssuer("test-secret", 30, 7)

	access, err := issuer.AccessToken(testUser())
	require.NoError(t, err)

	refresh, _, _, err := issuer.RefreshToken(testUser())
	require.NoError(t, err)

	_, err = issuer.ParseRefresh(access)
	assert.Error(t, err, "access token must not refresh")

	_, err = issuer.ParseAccess(refresh)
	assert.Error(t, err, "refresh token must not authenticate")
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := token.NewIssuer("test-secret", 30, 7)
	other := token.NewIssuer("other-secret", 30, 7)

	signed, err := issuer.AccessToken(testUser())
	require.NoError(t, err)

	_, err = other.ParseAccess(signed)
	assert.Error(t, err)
}

func TestGarbageRejected(t *testing.T) {
	issuer := token.NewIssuer("test-secret", 30, 7)

	_, err := issuer.ParseAccess("not-a-token")
	assert.Error(t, err)
}

func TestStoreWithoutRedisIsPassThrough(t *testing.T) {
	store := token.NewStore(nil)
	ctx := context.Background()

	assert.NoError(t, store.Save(ctx, "jti", 1, 0))
	assert.NoError(t, store.Validate(ctx, "jti"))
	assert.NoError(t, store.Revoke(ctx, "jti"))
}
