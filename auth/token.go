package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Identity is the authenticated principal carried inside a bearer token.
type Identity struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type claims struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 bearer tokens. With a zero ttl
// tokens never expire, matching the admin dashboard's session model.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// CreateToken signs a token embedding the user's id and username.
func (tm *TokenManager) CreateToken(id uint, username string) (string, error) {
	c := &claims{
		UserID:   id,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if tm.ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(tm.ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(tm.secret)
}

// CheckToken verifies signature and shape and returns the embedded identity.
func (tm *TokenManager) CheckToken(tokenString string) (Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil {
		return Identity{}, err
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.UserID == 0 {
		return Identity{}, ErrInvalidToken
	}

	return Identity{ID: c.UserID, Username: c.Username}, nil
}
