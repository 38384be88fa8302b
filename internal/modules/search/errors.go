package search

import (
	"errors"
	"fmt"
)

type ValidationKind string

const (
	KindMissingRequired ValidationKind = "missing_required"
	KindNotANumber      ValidationKind = "not_a_number"
	KindOutOfRange      ValidationKind = "out_of_range"
	KindInvertedRange   ValidationKind = "inverted_range"
)

// ValidationError blocks dispatch entirely; it is never sent over the
// network.
type ValidationError struct {
	Kind  ValidationKind
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid filter field %q: %s", e.Field, e.Kind)
}

var (
	// ErrNoMatches is the normal empty outcome, distinct from any failure.
	ErrNoMatches = errors.New("no rooms match the given criteria")
	// ErrUnreachable is a transport failure: no response arrived.
	ErrUnreachable = errors.New("room search service unreachable")
)

// RejectedError carries a structured rejection from the search service.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return "search rejected: " + e.Message
}
