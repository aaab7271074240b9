package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"Lister", RoleLister},
		{"Renter", RoleRenter},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		if err != nil {
			t.Fatalf("ParseRole(%q): unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRole(%q) = %v, want %v", tc.in, got, tc.want)
		}
		if got.String() != tc.in {
			t.Fatalf("String() = %q, want %q", got.String(), tc.in)
		}
	}
}

func TestParseRole_Unknown(t *testing.T) {
	for _, in := range []string{"", "lister", "Admin", " Renter"} {
		got, err := ParseRole(in)
		if !errors.Is(err, ErrUnknownRole) {
			t.Fatalf("ParseRole(%q): expected ErrUnknownRole, got %v", in, err)
		}
		if got != RoleNone {
			t.Fatalf("ParseRole(%q) = %v, want RoleNone", in, got)
		}
	}
}

func TestDecisionConstructors(t *testing.T) {
	claims := Claims{Subject: "u1", Role: RoleRenter}
	if d := Allow(claims); !d.Allowed() || d.Claims != claims || d.Location != "" {
		t.Fatalf("unexpected allow decision: %+v", d)
	}
	if d := RedirectTo("/login"); d.Allowed() || d.Location != "/login" || d.Kind.String() != "redirect" {
		t.Fatalf("unexpected redirect decision: %+v", d)
	}
}

func TestRejection(t *testing.T) {
	err := fmt.Errorf("book car: %w", Reject("Please fill in %s", "all fields"))
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("rejection should match ErrRejected")
	}
	if got := PublicMessage(err); got != "Please fill in all fields" {
		t.Fatalf("PublicMessage = %q", got)
	}
	if PublicMessage(ErrUpstream) != "" {
		t.Fatalf("plain sentinels carry no public message")
	}
}
