package infra_auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoUsername   = errors.New("token carries no username")
)

const usernameClaim = "username"

// Verifier checks HS256 tokens issued by the account service.
type Verifier struct {
	secret []byte
	logger *slog.Logger
}

func New(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		logger: slog.Default(),
	}
}

// Verify returns the username claim of a valid token.
func (v *Verifier) Verify(_ context.Context, token string) (string, error) {
	parsed, err := jwt.Parse(token, v.key, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		v.logger.Debug("token rejected", "error", err)
		return "", errors.Join(ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", ErrInvalidToken
	}

	username, ok := claims[usernameClaim].(string)
	if !ok || username == "" {
		return "", ErrNoUsername
	}
	return username, nil
}

// ValidateToken reports whether token is usable, for callers that need no identity.
func (v *Verifier) ValidateToken(token string) (bool, error) {
	_, err := v.Verify(context.Background(), token)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrNoUsername) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Sign issues a token for username that expires after ttl.
func (v *Verifier) Sign(username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		usernameClaim: username,
		"iat":         now.Unix(),
		"exp":         now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func (v *Verifier) key(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return v.secret, nil
}
