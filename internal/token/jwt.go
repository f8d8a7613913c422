package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rosterlab/memberd/internal/model"
)

// Claims represents JWT claims with the capability role.
// The subject claim carries the member ID.
type Claims struct {
	jwt.RegisteredClaims
	Role model.Role `json:"role"`
}

// JWT implements TokenManager backed by symmetric HMAC.
// The secret key is set once at construction and read-only thereafter;
// rotating it invalidates all outstanding capabilities.
type JWT struct {
	secretKey string
	ttl       time.Duration
}

// NewJWT creates a JWT token manager with the provided secret key and
// capability lifetime. A zero ttl issues tokens without an expiry claim.
func NewJWT(secretKey string, ttl time.Duration) model.TokenManager {
	return &JWT{secretKey: secretKey, ttl: ttl}
}

// Issue creates a signed capability for the given subject and role.
func (j *JWT) Issue(memberID int64, role model.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatInt(memberID, 10),
			IssuedAt: jwt.NewNumericDate(now),
		},
		Role: role,
	}
	if j.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(j.ttl))
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks signature and expiry and extracts the acting identity.
// Bad signature, expiry, malformed input and unknown roles all collapse
// into model.ErrInvalidToken: never partially-trusted claims, never a
// detailed reason.
func (j *JWT) Verify(tokenString string) (model.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil || !token.Valid {
		return model.Anonymous(), model.ErrInvalidToken
	}

	memberID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return model.Anonymous(), model.ErrInvalidToken
	}
	if !claims.Role.Valid() {
		return model.Anonymous(), model.ErrInvalidToken
	}

	return model.Identity{MemberID: memberID, Role: claims.Role}, nil
}
