package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Claims carries the authenticated user and session identity inside a JWT.
type Claims struct {
	UID       int64  `json:"uid"`
	SID       string `json:"sid"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Manager signs and verifies access/refresh token pairs. Access and refresh
// tokens use separate secrets so a leaked access secret cannot mint
// refresh tokens.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// RefreshTTL reports how long refresh tokens (and therefore sessions) live.
func (m *Manager) RefreshTTL() time.Duration {
	return m.refreshTTL
}

// GenerateAccessToken creates a short-lived token for API requests.
func (m *Manager) GenerateAccessToken(uid int64, sid string) (string, error) {
	return m.generate(uid, sid, typeAccess, m.accessSecret, m.accessTTL)
}

// GenerateRefreshToken creates a long-lived token used only to rotate sessions.
func (m *Manager) GenerateRefreshToken(uid int64, sid string) (string, error) {
	return m.generate(uid, sid, typeRefresh, m.refreshSecret, m.refreshTTL)
}

func (m *Manager) generate(uid int64, sid, tokenType string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UID:       uid,
		SID:       sid,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyAccessToken validates an access token and returns its claims.
func (m *Manager) VerifyAccessToken(tokenString string) (*Claims, error) {
	return verify(tokenString, typeAccess, m.accessSecret)
}

// VerifyRefreshToken validates a refresh token and returns its claims.
func (m *Manager) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return verify(tokenString, typeRefresh, m.refreshSecret)
}

func verify(tokenString, wantType string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
