package core

import "errors"

// User is an authenticated account holder.
type User struct {
	ID    int64
	Name  string
	Email string
}

// ErrInvalidCredentials is returned for both unknown emails and wrong
// secrets, so a caller cannot distinguish the two.
var ErrInvalidCredentials = errors.New("invalid credentials")
