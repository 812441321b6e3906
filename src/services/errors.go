package services

import "fmt"

// ErrorKind is the enumerated failure taxonomy. Callers branch on the kind,
// never on message text.
type ErrorKind string

const (
	// ErrKindSourceUnavailable: the record source round-trip failed (auth,
	// network, malformed response). No partial dataset is returned.
	ErrKindSourceUnavailable ErrorKind = "source_unavailable"
	// ErrKindInvalidArgument: blank required argument or a field name outside
	// the enumerated set. Raised before any fetch is attempted.
	ErrKindInvalidArgument ErrorKind = "invalid_argument"
	// ErrKindInternal: unexpected fault caught at the entry-point boundary.
	ErrKindInternal ErrorKind = "internal"
)

// ServiceError is the tagged failure result of an entry point.
type ServiceError struct {
	Kind    ErrorKind
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func invalidArgf(format string, args ...any) *ServiceError {
	return &ServiceError{Kind: ErrKindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func sourceErr(err error) *ServiceError {
	return &ServiceError{Kind: ErrKindSourceUnavailable, Message: fmt.Sprintf("record source unavailable: %v", err)}
}
