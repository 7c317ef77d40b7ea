package domain

import "errors"

var (
	// ErrDuplicateCredential signals an (email, portal) pair that is already registered.
	ErrDuplicateCredential = errors.New("accounts: duplicate credential")
	// ErrUserNotFound signals a lookup that matched no account.
	ErrUserNotFound = errors.New("accounts: user not found")
	// ErrInvalidToken indicates malformed, expired, or unverifiable tokens.
	ErrInvalidToken = errors.New("accounts: token invalid")
)
