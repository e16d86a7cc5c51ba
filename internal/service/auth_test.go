package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/repairhub/backend/internal/dto"
	apperrors "github.com/repairhub/backend/internal/errors"
	"github.com/repairhub/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserStore, *recordingMailer) {
	t.Helper()
	users := newFakeUserStore()
	resets := newFakeResetStore(users)
	tokens, err := NewTokenService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	mailer := &recordingMailer{}
	ledger := NewResetLedger(users, resets, nil, time.Hour)
	return NewAuthService(users, tokens, ledger, mailer), users, mailer
}

func registerUser(t *testing.T, svc *AuthService, email, password string) *dto.UserResponse {
	t.Helper()
	user, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FirstName:            "Test",
		LastName:             "User",
		Email:                email,
		Password:             password,
		PasswordConfirmation: password,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return user
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, users, _ := newTestAuthService(t)

	registerUser(t, svc, "alice@example.com", "hunter2hunter2")

	stored, err := users.GetByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if stored.Password == "hunter2hunter2" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("hunter2hunter2")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
	if stored.Role != model.RoleUser {
		t.Errorf("default role = %q, want user", stored.Role)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	registerUser(t, svc, "bob@example.com", "hunter2hunter2")

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FirstName:            "Other",
		LastName:             "Bob",
		Email:                "bob@example.com",
		Password:             "differentpass1",
		PasswordConfirmation: "differentpass1",
	})
	if !errors.Is(err, apperrors.ErrEmailExists) {
		t.Errorf("duplicate register: got %v, want ErrEmailExists", err)
	}
}

func TestLoginOutcomes(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	registerUser(t, svc, "carol@example.com", "correct-horse1")

	if _, err := svc.Login(ctx, "nobody@example.com", "whatever123"); !errors.Is(err, apperrors.ErrUnknownIdentity) {
		t.Errorf("unknown email: got %v, want ErrUnknownIdentity", err)
	}
	if _, err := svc.Login(ctx, "carol@example.com", "wrong-password"); !errors.Is(err, apperrors.ErrInvalidSecret) {
		t.Errorf("wrong password: got %v, want ErrInvalidSecret", err)
	}

	resp, err := svc.Login(ctx, "carol@example.com", "correct-horse1")
	if err != nil {
		t.Fatalf("valid login: %v", err)
	}
	if resp.Token == "" {
		t.Error("login response missing token")
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("expires_in = %d, want 3600", resp.ExpiresIn)
	}
	if resp.User.Email != "carol@example.com" {
		t.Errorf("user email = %q", resp.User.Email)
	}
}

func TestLogoutInvalidatesTokens(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	ctx := context.Background()

	registered := registerUser(t, svc, "dave@example.com", "correct-horse1")

	resp, err := svc.Login(ctx, "dave@example.com", "correct-horse1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := svc.tokens.Validate(resp.Token)
	if err != nil {
		t.Fatalf("validate issued token: %v", err)
	}

	if err := svc.Logout(ctx, registered.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	stored, _ := users.GetByID(ctx, registered.ID)
	if claims.TokenVersion == stored.TokenVersion {
		t.Error("logout did not bump the token version")
	}
}

func TestLogoutUnknownUser(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	if err := svc.Logout(context.Background(), 9999); !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Errorf("logout unknown user: got %v, want ErrUnauthenticated", err)
	}
}

func TestRequestPasswordResetDeliversSecret(t *testing.T) {
	svc, _, mailer := newTestAuthService(t)
	ctx := context.Background()

	registerUser(t, svc, "erin@example.com", "correct-horse1")

	if err := svc.RequestPasswordReset(ctx, "erin@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}

	if secret := mailer.lastSecret(); len(secret) != 100 {
		t.Errorf("mailer received secret of length %d, want 100", len(secret))
	}

	if err := svc.RequestPasswordReset(ctx, "nobody@example.com"); !errors.Is(err, apperrors.ErrUnknownIdentity) {
		t.Errorf("reset for unknown email: got %v, want ErrUnknownIdentity", err)
	}
}

func TestRequestPasswordResetMailFailure(t *testing.T) {
	svc, _, mailer := newTestAuthService(t)

	registerUser(t, svc, "frank@example.com", "correct-horse1")
	mailer.fail = errors.New("ses unavailable")

	err := svc.RequestPasswordReset(context.Background(), "frank@example.com")
	if !errors.Is(err, apperrors.ErrMailDelivery) {
		t.Errorf("mail failure: got %v, want ErrMailDelivery", err)
	}
}

func TestResetPasswordEndToEnd(t *testing.T) {
	svc, _, mailer := newTestAuthService(t)
	ctx := context.Background()

	registerUser(t, svc, "grace@example.com", "old-password1")

	if err := svc.RequestPasswordReset(ctx, "grace@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	secret := mailer.lastSecret()

	if err := svc.ResetPassword(ctx, "grace@example.com", secret, "new-password1"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	if _, err := svc.Login(ctx, "grace@example.com", "old-password1"); !errors.Is(err, apperrors.ErrInvalidSecret) {
		t.Errorf("old password after reset: got %v, want ErrInvalidSecret", err)
	}
	if _, err := svc.Login(ctx, "grace@example.com", "new-password1"); err != nil {
		t.Errorf("new password after reset: %v", err)
	}

	// The same secret cannot be replayed.
	if err := svc.ResetPassword(ctx, "grace@example.com", secret, "third-password"); !errors.Is(err, apperrors.ErrExpiredToken) {
		t.Errorf("replayed secret: got %v, want ErrExpiredToken", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	ctx := context.Background()

	registered := registerUser(t, svc, "heidi@example.com", "old-password1")
	before, _ := users.GetByID(ctx, registered.ID)

	err := svc.UpdatePassword(ctx, registered.ID, "wrong-old", "new-password1")
	if !errors.Is(err, apperrors.ErrIncorrectPassword) {
		t.Errorf("wrong old password: got %v, want ErrIncorrectPassword", err)
	}
	after, _ := users.GetByID(ctx, registered.ID)
	if before.Password != after.Password {
		t.Error("rejected change must leave the stored hash untouched")
	}

	if err := svc.UpdatePassword(ctx, registered.ID, "old-password1", "new-password1"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	if _, err := svc.Login(ctx, "heidi@example.com", "new-password1"); err != nil {
		t.Errorf("login with changed password: %v", err)
	}
}

func TestProfile(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	registered := registerUser(t, svc, "ivan@example.com", "correct-horse1")

	profile, err := svc.Profile(ctx, registered.ID)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.Email != "ivan@example.com" {
		t.Errorf("profile email = %q", profile.Email)
	}

	if _, err := svc.Profile(ctx, 9999); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("unknown profile: got %v, want ErrUserNotFound", err)
	}
}
