package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/dkrasnove/bloghub/internal/authz"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// BearerScheme prefixes every issued token; it is the externally visible
// credential format.
const BearerScheme = "Bearer "

var ErrUnauthenticated = errors.New("invalid or expired token")

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	JTI      string `json:"jti"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs {username, role, sub: userID} and returns the credential in
// "Bearer <token>" form.
func (m *Manager) Issue(userID int64, username, role string) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		Username: username,
		Role:     role,
		JTI:      uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			Subject:   strconv.FormatInt(userID, 10),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(m.secret)

	if err != nil {
		return "", err
	}

	return BearerScheme + signed, nil
}

// Authenticate verifies signature and expiry and resolves the caller
// identity. The scheme prefix is accepted but not required, so both the
// raw token and the issued "Bearer ..." form verify. Any failure is
// reported as ErrUnauthenticated.
func (m *Manager) Authenticate(tokenStr string) (authz.Identity, error) {
	tokenStr = strings.TrimSpace(strings.TrimPrefix(tokenStr, BearerScheme))

	if tokenStr == "" {
		return authz.Identity{}, ErrUnauthenticated
	}

	claims, err := m.parseAndValidate(tokenStr)

	if err != nil {
		return authz.Identity{}, ErrUnauthenticated
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)

	if err != nil {
		return authz.Identity{}, ErrUnauthenticated
	}

	return authz.Identity{
		UserID:   userID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

func (m *Manager) parseAndValidate(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256

		_, ok := t.Method.(*jwt.SigningMethodHMAC)

		if !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})

	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)

	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
