package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

var (
	ErrAuthDisabled       = errors.New("auth disabled: JWT_SECRET or API_KEY_HASH not set")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService trades the operator API key for a signed bearer token.
type AuthService struct {
	apiKeyHash []byte
	jwtSecret  []byte
	now        func() time.Time
}

func NewAuthService(apiKeyHash, secret string) *AuthService {
	return &AuthService{
		apiKeyHash: []byte(apiKeyHash),
		jwtSecret:  []byte(secret),
		now:        time.Now,
	}
}

// IssueToken checks apiKey against the bcrypt hash and returns an HS256 JWT
// with its expiry.
func (s *AuthService) IssueToken(apiKey string) (string, time.Time, error) {
	if len(s.jwtSecret) == 0 || len(s.apiKeyHash) == 0 {
		return "", time.Time{}, ErrAuthDisabled
	}
	if err := bcrypt.CompareHashAndPassword(s.apiKeyHash, []byte(apiKey)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return s.sign("api")
}

func (s *AuthService) sign(subject string) (string, time.Time, error) {
	exp := s.now().Add(tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"role": "reader",
		"exp":  exp.Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// HashAPIKey returns the bcrypt hash to put in API_KEY_HASH.
func HashAPIKey(apiKey string) (string, error) {
	if apiKey == "" {
		return "", errors.New("api key cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
