package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"billtrack/internal/core"
)

type fakeUsers struct {
	users   map[string]core.User
	secrets map[string]string
}

func (f *fakeUsers) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	u, ok := f.users[email]
	if !ok {
		return core.User{}, core.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetUserSecret(ctx context.Context, email string) (string, error) {
	s, ok := f.secrets[email]
	if !ok {
		return "", core.ErrNotFound
	}
	return s, nil
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		users: map[string]core.User{
			"admin@alecrim.com": {ID: 1, Name: "Admin Alecrim", Email: "admin@alecrim.com"},
		},
		secrets: map[string]string{
			"admin@alecrim.com": "123",
		},
	}
}

func TestLogin(t *testing.T) {
	svc := NewService(newFakeUsers())
	ctx := context.Background()

	u, err := svc.Login(ctx, "admin@alecrim.com", "123")
	require.NoError(t, err)
	require.Equal(t, "Admin Alecrim", u.Name)

	// Email matching is case-insensitive and whitespace-tolerant.
	u, err = svc.Login(ctx, "  Admin@Alecrim.com ", "123")
	require.NoError(t, err)
	require.Equal(t, int64(1), u.ID)
}

func TestLoginRejections(t *testing.T) {
	svc := NewService(newFakeUsers())
	ctx := context.Background()

	tests := []struct {
		name   string
		email  string
		secret string
	}{
		{name: "wrong secret", email: "admin@alecrim.com", secret: "wrong"},
		{name: "unknown email", email: "nobody@alecrim.com", secret: "123"},
		{name: "empty email", email: "", secret: "123"},
		{name: "empty secret", email: "admin@alecrim.com", secret: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.email, tt.secret)
			require.ErrorIs(t, err, core.ErrInvalidCredentials)
		})
	}
}
