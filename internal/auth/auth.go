// Package auth issues and verifies access tokens for the single shop owner
// account. Credentials come from configuration; the password is compared
// through bcrypt so the plaintext never sits in the Service.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Claims is the token payload. The subject carries the username; jti makes
// every issued token distinct.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Service struct {
	username string
	hash     []byte
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewService hashes the configured password up front. An empty password
// disables login entirely rather than allowing a blank one.
func NewService(username, password, secret string, ttl time.Duration) (*Service, error) {
	var hash []byte

	if password != "" {
		var err error

		hash, err = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
	}

	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Service{
		username: username,
		hash:     hash,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

// Login checks the credentials and returns a signed token.
func (s *Service) Login(username, password string) (string, error) {
	if s.hash == nil || username != s.username {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := s.now()

	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			Issuer:    "kasbon",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// Verify parses a token string and returns its claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}

		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
