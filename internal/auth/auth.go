// Package auth implements the credential check for the single-user login.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	"billtrack/internal/core"
)

// SecretReader exposes the stored secret for an email.
type SecretReader interface {
	GetUserByEmail(ctx context.Context, email string) (core.User, error)
	GetUserSecret(ctx context.Context, email string) (string, error)
}

type Service struct {
	users SecretReader
}

func NewService(users SecretReader) *Service {
	return &Service{users: users}
}

// Login checks the email/secret pair and returns the matching user. Unknown
// emails and wrong secrets both yield core.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, secret string) (core.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || secret == "" {
		return core.User{}, core.ErrInvalidCredentials
	}

	stored, err := s.users.GetUserSecret(ctx, email)
	if errors.Is(err, core.ErrNotFound) {
		return core.User{}, core.ErrInvalidCredentials
	}
	if err != nil {
		return core.User{}, err
	}

	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(stored)), []byte(strings.TrimSpace(secret))) != 1 {
		slog.InfoContext(ctx, "Login rejected", "email", email)
		return core.User{}, core.ErrInvalidCredentials
	}

	return s.users.GetUserByEmail(ctx, email)
}
