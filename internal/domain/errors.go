package domain

import "errors"

// Business-rule failures are deterministic; callers should not retry them.
var (
	ErrNotFound             = errors.New("not found")
	ErrUniqueness           = errors.New("uniqueness violation")
	ErrReferentialIntegrity = errors.New("referential integrity violation")
	ErrAuthentication       = errors.New("authentication failed")
	ErrConfiguration        = errors.New("invalid configuration")
	ErrInvalidReading       = errors.New("reading below last liquidated reading")
)
