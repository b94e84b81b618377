package staffing

import (
	"errors"
	"fmt"
)

// ErrSlotNotFound is returned when a slot ID no longer exists on its task,
// typically because the task's role list was replaced since the caller loaded it
var ErrSlotNotFound = errors.New("role slot not found")

// ValidationError is a user-facing rejection raised before any write is attempted
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// QuotaExceededError rejects a reconciliation whose desired set is larger than the slot allows
type QuotaExceededError struct {
	SlotID    string
	RoleName  string
	Limit     int
	Requested int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("role %q allows at most %d member(s), %d selected", e.RoleName, e.Limit, e.Requested)
}

// IsValidation reports whether err is a validation or quota rejection
func IsValidation(err error) bool {
	var ve *ValidationError
	var qe *QuotaExceededError
	return errors.As(err, &ve) || errors.As(err, &qe)
}
