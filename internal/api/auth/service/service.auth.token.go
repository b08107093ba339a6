package authsvc

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Dhairyash-1/videotube-api/internal/api/auth/models"
	"github.com/Dhairyash-1/videotube-api/internal/common"
)

// TokenConfig holds the signing secrets and lifetimes.
type TokenConfig struct {
	AccessSecret  string
	AccessExpiry  time.Duration
	RefreshSecret string
	RefreshExpiry time.Duration
}

// TokenService signs and verifies HS256 session tokens.
type TokenService struct {
	cfg TokenConfig
	now func() time.Time
}

// NewTokenService returns a TokenService for cfg.
func NewTokenService(cfg TokenConfig) *TokenService {
	return &TokenService{cfg: cfg, now: time.Now}
}

func (s *TokenService) registered(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := s.now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

// IssueAccess signs an access token describing user.
func (s *TokenService) IssueAccess(user *models.User) (string, error) {
	claims := models.AccessClaims{
		UserID:           user.ID.Hex(),
		Email:            user.Email,
		Username:         user.Username,
		FullName:         user.FullName,
		RegisteredClaims: s.registered(user.ID.Hex(), s.cfg.AccessExpiry),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.AccessSecret))
}

// IssueRefresh signs a refresh token for userID.
func (s *TokenService) IssueRefresh(userID string) (string, error) {
	claims := models.RefreshClaims{
		UserID:           userID,
		RegisteredClaims: s.registered(userID, s.cfg.RefreshExpiry),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.RefreshSecret))
}

// IssuePair signs a fresh access and refresh token.
func (s *TokenService) IssuePair(user *models.User) (models.TokenPair, error) {
	access, err := s.IssueAccess(user)
	if err != nil {
		return models.TokenPair{}, common.Internal("Something went wrong while generating tokens", err)
	}
	refresh, err := s.IssueRefresh(user.ID.Hex())
	if err != nil {
		return models.TokenPair{}, common.Internal("Something went wrong while generating tokens", err)
	}
	return models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *TokenService) parse(token, secret string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	return err
}

// ParseAccess verifies an access token. Expired tokens are reported separately.
func (s *TokenService) ParseAccess(token string) (*models.AccessClaims, error) {
	claims := &models.AccessClaims{}
	if err := s.parse(token, s.cfg.AccessSecret, claims); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if claims.UserID == "" {
		return nil, common.ErrTokenInvalid
	}
	return claims, nil
}

// ParseRefresh verifies a refresh token.
func (s *TokenService) ParseRefresh(token string) (*models.RefreshClaims, error) {
	claims := &models.RefreshClaims{}
	if err := s.parse(token, s.cfg.RefreshSecret, claims); err != nil || claims.UserID == "" {
		return nil, common.ErrRefreshTokenInvalid
	}
	return claims, nil
}
