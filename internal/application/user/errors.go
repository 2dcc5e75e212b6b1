package user

import "errors"

var (
	ErrDuplicateUsername = errors.New("Username already taken")
	ErrUserNotFound      = errors.New("User not found")
)
