package service

import (
	"context"
	"errors"
	"testing"

	"hallever/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (*AuthService, *mockUserStore, *mockStore[*domain.ForgotPasswordRequest]) {
	users := newMockUserStore()
	resets := newMockStore[*domain.ForgotPasswordRequest]()
	return NewAuthService(users, resets, "test-secret", zap.NewNop()), users, resets
}

func TestProperty_PasswordsAreHashedNotStored(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("stored credentials never contain the plaintext password", prop.ForAll(
		func(password string) bool {
			svc, users, _ := newAuthFixture()

			user, err := svc.Register(context.Background(), "admin@example.com", password, "Admin", "1")
			if err != nil {
				t.Logf("FAIL: register: %v", err)
				return false
			}
			if user.PasswordHash == password {
				t.Logf("FAIL: plaintext password stored")
				return false
			}
			stored := users.docs[0]
			return bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(password)) == nil
		},
		gen.RegexMatch(`[a-zA-Z0-9!@#]{8,24}`),
	))

	properties.TestingRun(t)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "admin@example.com", "secret123", "Admin", "1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, "admin@example.com", "other456", "Other", "2"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "admin@example.com", "secret123", "Admin", "1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(ctx, "admin@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected the registered account, got %+v", user)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != registered.ID || claims.Role != "admin" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "admin@example.com", "secret123", "Admin", "1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(ctx, "admin@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for a wrong password, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for an unknown email, got %v", err)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "admin@example.com", "secret123", "Admin", "1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, _, err := svc.Login(ctx, "admin@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.ValidateToken(token + "x"); err == nil {
		t.Error("expected a tampered token to be rejected")
	}

	other := NewAuthService(newMockUserStore(), newMockStore[*domain.ForgotPasswordRequest](), "different-secret", zap.NewNop())
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("expected a token signed with another secret to be rejected")
	}
}

func TestPasswordResetDoesNotLeakAccounts(t *testing.T) {
	svc, _, resets := newAuthFixture()
	ctx := context.Background()

	req, err := svc.RequestPasswordReset(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if req.Token == "" || req.ID == "" {
		t.Errorf("expected a recorded request with token, got %+v", req)
	}
	if len(resets.docs) != 1 {
		t.Errorf("expected the request recorded even for unknown emails, got %d", len(resets.docs))
	}
}
