package service

import (
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewUserService(gdb)

	user, err := svc.Register("Alice", "Alice@Example.COM", "hunter22")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.UID == "" {
		t.Fatalf("expected generated uid")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Password == "hunter22" {
		t.Fatalf("password stored in plain text")
	}

	authed, err := svc.Authenticate("alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if authed.UID != user.UID {
		t.Fatalf("expected same user, got %q and %q", authed.UID, user.UID)
	}

	if _, err := svc.Authenticate("alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate("nobody@example.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewUserService(gdb)

	if _, err := svc.Register("", "bob@example.com", "secret1"); !errors.Is(err, ErrNameMissing) {
		t.Fatalf("expected ErrNameMissing, got %v", err)
	}
	if _, err := svc.Register("Bob", "not-an-email", "secret1"); !errors.Is(err, ErrEmailInvalid) {
		t.Fatalf("expected ErrEmailInvalid, got %v", err)
	}
	if _, err := svc.Register("Bob", "bob@example.com", "short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}

	if _, err := svc.Register("Bob", "bob@example.com", "secret1"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register("Bobby", "bob@example.com", "secret2"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUpdateProfileAndLookup(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewUserService(gdb)

	user, err := svc.Register("Carol", "carol@example.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	updated, err := svc.UpdateProfile(user.UID, "Caroline")
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.Name != "Caroline" {
		t.Fatalf("expected renamed profile, got %q", updated.Name)
	}

	if _, err := svc.GetByUID("missing-uid"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
