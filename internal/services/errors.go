package services

import (
	"errors"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
)

// Errors shared across services. Handlers translate these into the HTTP
// error taxonomy with errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrItemNotFound      = errors.New("item not found")
	ErrReleaseNotFound   = errors.New("release not found")
	ErrReturnNotFound    = errors.New("return record not found")
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOverReturn        = errors.New("return exceeds remaining quantity")
	ErrCommitConflict    = errors.New("transaction commit failed, safe to retry")
)

// Actor is the authenticated user performing an operation, taken from the
// verified token claims by the handlers.
type Actor struct {
	ID       int64
	Username string
	Role     string
}

// IsSuperadmin reports whether the actor holds the top administrative role.
func (a Actor) IsSuperadmin() bool {
	return a.Role == models.RoleSuperadmin
}
