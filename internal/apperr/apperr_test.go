package apperr

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NotFound("appointment", "42"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected wrapped not found to match sentinel")
	}
	if errors.Is(err, ErrPermissionDenied) {
		t.Fatal("kinds must not cross-match")
	}
	k, ok := KindOf(err)
	if !ok || k != KindNotFound {
		t.Fatalf("KindOf: got %s %v", k, ok)
	}
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"validation", Validation("title required"), codes.InvalidArgument},
		{"not found", NotFound("issue", "1"), codes.NotFound},
		{"denied", PermissionDenied("delete", "issue"), codes.PermissionDenied},
		{"transition", InvalidTransition("appointment", "accepted", "declined"), codes.FailedPrecondition},
		{"plain", errors.New("connection reset"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, _ := status.FromError(ToStatus(tt.err))
			if st.Code() != tt.code {
				t.Fatalf("expected %v, got %v", tt.code, st.Code())
			}
		})
	}
}

func TestToStatusDetails(t *testing.T) {
	st, _ := status.FromError(ToStatus(InvalidTransition("appointment", "accepted", "declined")))
	var info *errdetails.ErrorInfo
	for _, d := range st.Details() {
		if v, ok := d.(*errdetails.ErrorInfo); ok {
			info = v
		}
	}
	if info == nil {
		t.Fatal("missing ErrorInfo detail")
	}
	if info.Reason != string(KindInvalidTransition) || info.Domain != Domain {
		t.Errorf("unexpected info: %+v", info)
	}
	if info.Metadata["from"] != "accepted" {
		t.Errorf("metadata not carried: %v", info.Metadata)
	}
}

func TestToStatusPlainInternalHidesCause(t *testing.T) {
	st, _ := status.FromError(ToStatus(errors.New("pq: relation missing")))
	if st.Message() != "internal error" {
		t.Errorf("leaked message: %s", st.Message())
	}
	if ToStatus(nil) != nil {
		t.Error("nil should stay nil")
	}
}
