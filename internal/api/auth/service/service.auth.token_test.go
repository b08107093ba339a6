package authsvc

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dhairyash-1/videotube-api/internal/api/auth/models"
	"github.com/Dhairyash-1/videotube-api/internal/common"
)

func testTokens() *TokenService {
	return NewTokenService(TokenConfig{
		AccessSecret:  "access-secret",
		AccessExpiry:  time.Hour,
		RefreshSecret: "refresh-secret",
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestTokenService_AccessRoundTrip(t *testing.T) {
	s := testTokens()
	user := &models.User{ID: primitive.NewObjectID(), Username: "alice", Email: "alice@example.com", FullName: "Alice"}

	token, err := s.IssueAccess(user)
	require.NoError(t, err)

	claims, err := s.ParseAccess(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.FullName)
}

func TestTokenService_SecretsAreNotInterchangeable(t *testing.T) {
	s := testTokens()
	user := &models.User{ID: primitive.NewObjectID()}

	refresh, err := s.IssueRefresh(user.ID.Hex())
	require.NoError(t, err)
	_, err = s.ParseAccess(refresh)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)

	access, err := s.IssueAccess(user)
	require.NoError(t, err)
	_, err = s.ParseRefresh(access)
	assert.ErrorIs(t, err, common.ErrRefreshTokenInvalid)
}

func TestTokenService_Expired(t *testing.T) {
	s := testTokens()
	issued := time.Now().Add(-2 * time.Hour)
	s.now = func() time.Time { return issued }
	token, err := s.IssueAccess(&models.User{ID: primitive.NewObjectID()})
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ParseAccess(token)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	s := testTokens()
	claims := models.AccessClaims{UserID: primitive.NewObjectID().Hex()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.ParseAccess(token)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestTokenService_RefreshTokensAreUnique(t *testing.T) {
	s := testTokens()
	fixed := time.Now()
	s.now = func() time.Time { return fixed }

	a, err := s.IssueRefresh("u1")
	require.NoError(t, err)
	b, err := s.IssueRefresh("u1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
