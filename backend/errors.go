package backend

import (
	"fmt"

	apperrors "github.com/shuzaifak/Property-Sync-Owner/internal/errors"
)

// Error is a failed backend call. Status is 0 when no response was received.
type Error struct {
	Op      string
	Status  int
	Message string // server message, or the per-call fallback
	Err     error  // transport failure, if any
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
}

// Unwrap exposes ErrNetwork and the transport cause
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{apperrors.ErrNetwork}
	}
	return []error{apperrors.ErrNetwork, e.Err}
}

// UserMessage is the text shown to the owner
func (e *Error) UserMessage() string {
	return e.Message
}
