package services

import "errors"

// Failure modes returned by the report lifecycle and verification
// services. Controllers translate these into HTTP status codes; anything
// else is treated as an internal error.
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("report not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidStatus   = errors.New("invalid report status")
	ErrInvalidPriority = errors.New("invalid report priority")
	ErrInvalidState    = errors.New("operation not valid for current report status")
	ErrInvalidCost     = errors.New("estimated cost is not a valid number")
	ErrAlreadyVerified = errors.New("you have already verified this report")
	ErrBanned          = errors.New("account banned")
)

// Actor identifies who is performing an operation, resolved from the JWT
// by the auth middleware.
type Actor struct {
	ID   uint
	Role string
}

// IsAdmin reports whether the actor may perform admin-only transitions.
func (a Actor) IsAdmin() bool {
	return a.Role == "ADMIN" || a.Role == "SUPER_ADMIN"
}
