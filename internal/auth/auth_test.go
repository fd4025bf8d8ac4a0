package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"campus-portal-api/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	actors := []model.Actor{
		model.Student{ID: "s1", Name: "John Doe", StudentNumber: "ST12345", Faculty: "Engineering"},
		model.Lecturer{ID: "l1", Name: "Dr. Smith", StaffNumber: "LT001", Faculty: "Computer Science"},
		model.Admin{ID: "a1", Name: "Registrar", StaffNumber: "AD001"},
	}
	for _, want := range actors {
		t.Run(string(want.Role()), func(t *testing.T) {
			tok, err := MakeToken(want, "secret", time.Minute)
			if err != nil {
				t.Fatalf("make: %v", err)
			}
			c, err := ParseToken(tok, "secret")
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			got, err := c.Actor()
			if err != nil {
				t.Fatalf("actor: %v", err)
			}
			if got != want {
				t.Fatalf("got %#v, want %#v", got, want)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	s := model.Student{ID: "s1"}
	good, _ := MakeToken(s, "secret", time.Minute)
	expired, _ := MakeToken(s, "secret", -time.Minute)
	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "s1", Role: model.RoleStudent}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name, raw, secret string
	}{
		{"wrong secret", good, "other"},
		{"expired", expired, "secret"},
		{"alg none", none, "secret"},
		{"garbage", "not-a-token", "secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.raw, tt.secret); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestClaimsUnknownRole(t *testing.T) {
	c := &Claims{UserID: "x", Role: "guest"}
	if _, err := c.Actor(); err == nil {
		t.Fatal("expected error for unknown role")
	}
}
