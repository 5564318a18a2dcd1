package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/skillforge/backend/internal/domain"
	"github.com/skillforge/backend/pkg/util"
)

// TokenManager issues and validates HMAC-signed, time-bound session tokens.
// Tokens are stateless: validity is a function of the token contents and the
// signing secret only, so validation never touches storage.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a manager for the given secret and TTL in hours.
func NewTokenManager(secret string, ttlHours int) *TokenManager {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlHours) * time.Hour}
}

// Claims describes the token payload. The registered subject holds the user ID.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token for the user, valid from now for the configured TTL.
func (tm *TokenManager) Issue(userID string, role domain.Role) (string, time.Time, error) {
	return tm.IssueAt(userID, role, time.Now())
}

// IssueAt is Issue with an explicit issuance instant.
func (tm *TokenManager) IssueAt(userID string, role domain.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Validate verifies the signature and time window, returning the claims.
func (tm *TokenManager) Validate(tokenStr string) (*Claims, error) {
	return tm.ValidateAt(tokenStr, time.Now())
}

// ValidateAt is Validate against an explicit instant. The signature is checked
// before any claim is used; expired or tampered tokens fail identically with
// an invalid-token error.
func (tm *TokenManager) ValidateAt(tokenStr string, now time.Time) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }), jwt.WithIssuedAt())
	if err != nil {
		return nil, util.NewInvalidToken("invalid or expired token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, util.NewInvalidToken("invalid token claims")
	}
	return claims, nil
}

// TTL exposes the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}
