package service

import "errors"

// Sentinel errors handlers translate to HTTP statuses. ErrInvalidCredentials
// carries the user-visible message: it is deliberately the same for an
// unknown email and a wrong password.
var (
	ErrValidation          = errors.New("validation")             // 400
	ErrDuplicateItem       = errors.New("duplicate item")         // 400
	ErrInvalidCredentials  = errors.New("invalid email or password") // 401
	ErrInvalidToken        = errors.New("invalid or expired token")  // 401
	ErrInvalidRefreshToken = errors.New("invalid refresh token")  // 401
	ErrMissingToken        = errors.New("missing token")          // 401
	ErrForbidden           = errors.New("forbidden")              // 403
	ErrNotFound            = errors.New("not found")              // 404
)
