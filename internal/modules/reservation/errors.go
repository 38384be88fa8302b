package reservation

import "errors"

var (
	ErrGuestNameRequired = errors.New("guest full name is required")
	ErrTaxIDRequired     = errors.New("tax id is required for invoice billing")
	ErrBadBillType       = errors.New("billing mode must be receipt or invoice")
	ErrBadStayInterval   = errors.New("first night must be before last night")

	// ErrUnreachable is a transport failure: the call never completed.
	ErrUnreachable = errors.New("booking service unreachable")
)

// RejectedError is the booking service's authoritative refusal, surfaced
// verbatim.
type RejectedError struct {
	Op      string
	Message string
}

func (e *RejectedError) Error() string {
	return e.Op + " rejected: " + e.Message
}
