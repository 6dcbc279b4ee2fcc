package users

import (
	"errors"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// ErrInvalidRole is returned when an account is requested with a role
// outside the known set.
var ErrInvalidRole = errors.New("invalid role")

// ConflictError reports a registration for an email that already has an
// account. It matches common.ErrConflict.
type ConflictError struct {
	Email string
}

func (e *ConflictError) Error() string { return "email already in use" }

func (e *ConflictError) Is(target error) bool { return target == common.ErrConflict }
