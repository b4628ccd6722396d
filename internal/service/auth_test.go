package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/clubmonkey/internal/apperror"
	"github.com/sakif/clubmonkey/internal/auth"
)

func newTestAuthService(t *testing.T) (*AuthService, *mockUserRepo) {
	t.Helper()
	users := newMockUserRepo()
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars")
	if err != nil {
		t.Fatalf("creating token service: %v", err)
	}
	// bcrypt cost 4 keeps the test fast; the hashing path is identical
	passwords := auth.NewPasswordServiceForTest(4)
	return NewAuthService(users, tokens, passwords, testLogger()), users
}

func TestSignup(t *testing.T) {
	svc, users := newTestAuthService(t)

	result, err := svc.Signup(context.Background(), "u1", "Ada", "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	if result.User.ID != "u1" {
		t.Errorf("ID = %q, want the caller-supplied u1", result.User.ID)
	}
	if result.Token == "" {
		t.Error("Signup() should issue a session token")
	}
	if result.User.PasswordHash == "hunter22" {
		t.Error("password stored in plaintext — must be hashed")
	}

	stored, err := users.GetByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "hunter22" {
		t.Error("persisted credential must be a bcrypt hash")
	}
}

func TestSignup_GeneratedID(t *testing.T) {
	svc, _ := newTestAuthService(t)

	result, err := svc.Signup(context.Background(), "", "Ada", "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if result.User.ID == "" {
		t.Error("Signup() with no id should get a generated one")
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Signup(context.Background(), "u1", "Ada", "taken@example.com", "pw1"); err != nil {
		t.Fatalf("first Signup() error = %v", err)
	}

	_, err := svc.Signup(context.Background(), "u2", "Eve", "taken@example.com", "pw2")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("second Signup() error = %v, want ErrConflict", err)
	}
}

func TestSignup_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	tests := []struct {
		name                  string
		userName, email, pass string
	}{
		{"missing name", "", "a@b.c", "pw"},
		{"missing email", "Ada", "", "pw"},
		{"missing password", "Ada", "a@b.c", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), "", tt.userName, tt.email, tt.pass)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)
	if _, err := svc.Signup(context.Background(), "u1", "Ada", "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	result, err := svc.Login(context.Background(), "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.User.ID != "u1" || result.Token == "" {
		t.Errorf("Login() = %+v, want user u1 with a token", result)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)
	if _, err := svc.Signup(context.Background(), "u1", "Ada", "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	_, err := svc.Login(context.Background(), "ada@example.com", "wrong")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

// Unknown email and wrong password must be the same error — the response
// must not reveal which half failed.
func TestLogin_UnknownEmailIndistinguishable(t *testing.T) {
	svc, _ := newTestAuthService(t)
	if _, err := svc.Signup(context.Background(), "u1", "Ada", "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	badEmail, err1 := svc.Login(context.Background(), "nobody@example.com", "hunter22")
	badPass, err2 := svc.Login(context.Background(), "ada@example.com", "wrong")

	if badEmail != nil || badPass != nil {
		t.Fatal("both logins should fail")
	}
	if !errors.Is(err1, apperror.ErrUnauthorized) || !errors.Is(err2, apperror.ErrUnauthorized) {
		t.Errorf("errors = %v / %v, both must be ErrUnauthorized", err1, err2)
	}
	if err1.Error() != err2.Error() {
		t.Errorf("error messages differ (%q vs %q) — leaks which half was wrong",
			err1.Error(), err2.Error())
	}
}
