// Package apperr holds the error taxonomy shared by the workflow rules and
// the transport layer.
package apperr

import (
	"errors"
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Domain identifies this service in structured error details.
const Domain = "campus-portal-api"

// Kind is a machine-readable error class.
type Kind string

const (
	KindValidation        Kind = "VALIDATION"
	KindNotFound          Kind = "NOT_FOUND"
	KindPermissionDenied  Kind = "PERMISSION_DENIED"
	KindInvalidTransition Kind = "INVALID_TRANSITION"
)

// Sentinels for errors.Is checks. Any *Error of the same kind matches.
var (
	ErrValidation        = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrNotFound          = &Error{Kind: KindNotFound, Message: "not found"}
	ErrPermissionDenied  = &Error{Kind: KindPermissionDenied, Message: "permission denied"}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition, Message: "invalid transition"}
)

// Error is a classified failure with optional metadata and cause.
type Error struct {
	Kind     Kind
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Validation reports malformed input.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports an unknown identifier of the given entity.
func NotFound(entity, id string) *Error {
	return &Error{
		Kind:     KindNotFound,
		Message:  entity + " not found",
		Metadata: map[string]string{"entity": entity, "id": id},
	}
}

// PermissionDenied reports an action the actor may not perform.
func PermissionDenied(action, entity string) *Error {
	return &Error{
		Kind:     KindPermissionDenied,
		Message:  fmt.Sprintf("not allowed to %s %s", action, entity),
		Metadata: map[string]string{"action": action, "entity": entity},
	}
}

// InvalidTransition reports a status change the current state forbids.
func InvalidTransition(entity, from, to string) *Error {
	return &Error{
		Kind:     KindInvalidTransition,
		Message:  fmt.Sprintf("%s cannot move from %s to %s", entity, from, to),
		Metadata: map[string]string{"entity": entity, "from": from, "to": to},
	}
}

// Wrap attaches a cause to a classified error.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// GRPCCode maps a kind to its transport status code.
func (k Kind) GRPCCode() codes.Code {
	switch k {
	case KindValidation:
		return codes.InvalidArgument
	case KindNotFound:
		return codes.NotFound
	case KindPermissionDenied:
		return codes.PermissionDenied
	case KindInvalidTransition:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

// ToStatus converts err to a gRPC status error. Unclassified errors become
// a generic internal error so store details never reach the caller.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	var e *Error
	if !errors.As(err, &e) {
		return status.Error(codes.Internal, "internal error")
	}
	st := status.New(e.Kind.GRPCCode(), e.Message)
	detailed, derr := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   string(e.Kind),
		Domain:   Domain,
		Metadata: e.Metadata,
	})
	if derr != nil {
		return st.Err()
	}
	return detailed.Err()
}
