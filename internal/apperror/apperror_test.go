package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundMatchesSentinel(t *testing.T) {
	err := NotFound("club", "42")

	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFound() should match ErrNotFound via errors.Is")
	}
	if errors.Is(err, ErrConflict) {
		t.Error("NotFound() should not match ErrConflict")
	}
	if err.Error() != "club not found with id 42" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestDuplicateMatchesConflict(t *testing.T) {
	err := Duplicate("membership", "user u1 in club 3")

	if !errors.Is(err, ErrConflict) {
		t.Error("Duplicate() should match ErrConflict via errors.Is")
	}
}

func TestValidationFailedCarriesField(t *testing.T) {
	err := ValidationFailed("email", "email is required")

	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationFailed() should match ErrValidation")
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As should extract *AppError")
	}
	if appErr.Field != "email" {
		t.Errorf("Field = %q, want %q", appErr.Field, "email")
	}
}

// Sentinels must survive fmt.Errorf %w wrapping — that is how service-layer
// context gets added without losing the taxonomy.
func TestSentinelSurvivesWrapping(t *testing.T) {
	inner := Duplicate("user", "a@b.c")
	wrapped := fmt.Errorf("service/auth: signing up: %w", inner)

	if !errors.Is(wrapped, ErrConflict) {
		t.Error("wrapped error should still match ErrConflict")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As should find *AppError through the wrap")
	}
}

func TestUnauthorized(t *testing.T) {
	err := Unauthorized("invalid email or password")

	if !errors.Is(err, ErrUnauthorized) {
		t.Error("Unauthorized() should match ErrUnauthorized")
	}
	if err.Error() != "invalid email or password" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
