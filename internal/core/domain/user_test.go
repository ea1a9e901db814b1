package domain

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	for in, want := range map[string]Role{"donor": RoleDonor, " Volunteer ": RoleVolunteer, "ADMIN": RoleAdmin} {
		got, err := ParseRole(in)
		if err != nil || got != want {
			t.Errorf("ParseRole(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseRole("root"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestParseUserStatus(t *testing.T) {
	if s, err := ParseUserStatus("Blocked"); err != nil || s != UserBlocked {
		t.Errorf("unexpected result %q, %v", s, err)
	}
	if _, err := ParseUserStatus("frozen"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestActor(t *testing.T) {
	a := Actor{Email: "Karim@X.com"}
	if !a.Is("karim@x.com") || a.Is("") || (Actor{}).Is("") {
		t.Error("email comparison must be case-insensitive and never match empty")
	}
	if a.DisplayName() != "Karim" {
		t.Errorf("expected local part as display name, got %q", a.DisplayName())
	}
	a.Name = "Karim Uddin"
	if a.DisplayName() != "Karim Uddin" {
		t.Errorf("expected profile name, got %q", a.DisplayName())
	}
}

func TestParseBlogStatus(t *testing.T) {
	if s, _ := ParseBlogStatus(""); s != BlogDraft {
		t.Errorf("empty status should default to draft, got %q", s)
	}
	if _, err := ParseBlogStatus("archived"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}
