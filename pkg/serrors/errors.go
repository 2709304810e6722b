package serrors

import "fmt"

// Base is a coded error. Code is stable and machine-checkable, Message is for
// humans, Hint optionally tells the caller what to do about it.
type Base struct {
	Code    string
	Message string
	Hint    string
}

func NewError(code, message, hint string) *Base {
	return &Base{Code: code, Message: message, Hint: hint}
}

func (e *Base) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Booking admission taxonomy. Services return these sentinels (possibly
// wrapped); callers match with errors.Is.
var (
	ErrValidation         = NewError("VALIDATION", "request is malformed", "fix the request and resubmit")
	ErrServiceBusy        = NewError("SERVICE_BUSY", "too many concurrent booking requests", "retry after a short backoff")
	ErrConflict           = NewError("CONFLICT", "room is already booked for an overlapping interval", "refresh availability and pick another slot")
	ErrNotFound           = NewError("NOT_FOUND", "reservation does not exist", "")
	ErrAlreadyDecided     = NewError("ALREADY_DECIDED", "reservation has already been approved or rejected", "")
	ErrStoreUnavailable   = NewError("STORE_UNAVAILABLE", "booking ledger is temporarily unavailable", "retry after a short backoff")
	ErrInvariantViolation = NewError("INVARIANT_VIOLATION", "approved reservations overlap", "inspect the ledger; this indicates a bug or an out-of-band write")
)
