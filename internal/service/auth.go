package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/repairhub/backend/internal/dto"
	apperrors "github.com/repairhub/backend/internal/errors"
	"github.com/repairhub/backend/internal/model"
	ctxutil "github.com/repairhub/backend/pkg/context"
	"github.com/repairhub/backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService orchestrates registration, login/logout, and both password
// change flows. It is the only component with auth business logic; the
// stores, token service, ledger, and mailer are narrow collaborators.
type AuthService struct {
	users  UserStore
	tokens *TokenService
	ledger *ResetLedger
	mailer Mailer
}

func NewAuthService(users UserStore, tokens *TokenService, ledger *ResetLedger, mailer Mailer) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		ledger: ledger,
		mailer: mailer,
	}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func checkPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

func toUserResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      string(user.Role),
		LastLogin: user.LastLogin,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// Register creates a user with a freshly hashed password and the default
// role. Secrets never appear in the response.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Register")

	email := strings.TrimSpace(req.Email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		logger.WarnWithContext(ctx, "Registration rejected, email taken").
			String("email", email).
			Log()
		return nil, apperrors.ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Password:  hashed,
		Role:      model.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique index races ahead of the existence check above.
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return nil, apperrors.ErrEmailExists
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User registered").
		String("email", user.Email).
		Uint("user_id", user.ID).
		Log()

	return toUserResponse(user), nil
}

// Authenticate resolves credentials to a user. UnknownIdentity and
// InvalidSecret stay distinct because the login contract reports them
// differently; both stay in the 4xx class.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Authenticate")

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.InfoWithContext(ctx, "Login failed, unknown email").
				String("email", email).
				Log()
			return nil, apperrors.ErrUnknownIdentity
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !checkPassword(user.Password, password) {
		logger.WarnWithContext(ctx, "Login failed, wrong password").
			String("email", email).
			Uint("user_id", user.ID).
			Log()
		return nil, apperrors.ErrInvalidSecret
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		// Best effort; a failed timestamp must not fail the login.
		logger.WarnWithContext(ctx, "Failed to update last login").
			Uint("user_id", user.ID).
			Err(err).
			Log()
	}

	return user, nil
}

// Login authenticates and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Login")

	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, expiresIn, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User logged in").
		String("email", user.Email).
		Uint("user_id", user.ID).
		Log()

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		User:      *toUserResponse(user),
	}, nil
}

// Logout invalidates every outstanding token for the user by bumping the
// token version. Calling it for an already-logged-out user is a no-op at
// this layer; the middleware has already rejected stale tokens.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	ctx = ctxutil.WithOperation(ctx, "service", "Logout")

	if err := s.users.IncrementTokenVersion(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUnauthenticated
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User logged out").
		Uint("user_id", userID).
		Log()

	return nil
}

// RequestPasswordReset issues a reset secret and hands it to the mailer.
// The secret is never logged and never appears in the API response.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	ctx = ctxutil.WithOperation(ctx, "service", "RequestPasswordReset")

	raw, err := s.ledger.Issue(ctx, email)
	if err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, user.FirstName, raw); err != nil {
		logger.ErrorWithContext(ctx, "Failed to send reset email").
			String("email", email).
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrMailDelivery, err)
	}

	logger.InfoWithContext(ctx, "Reset link sent").
		String("email", email).
		Log()

	return nil
}

// ResetPassword consumes the secret and writes the new password hash in the
// same store transaction. Duplicate submissions of the same secret yield
// exactly one success.
func (s *AuthService) ResetPassword(ctx context.Context, email, rawSecret, newPassword string) error {
	ctx = ctxutil.WithOperation(ctx, "service", "ResetPassword")

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.ledger.Consume(ctx, email, rawSecret, hashed); err != nil {
		return err
	}

	logger.InfoWithContext(ctx, "Password reset completed").
		String("email", email).
		Log()

	return nil
}

// UpdatePassword changes the password of an authenticated user after
// verifying the old one. A wrong old password leaves the stored hash
// untouched.
func (s *AuthService) UpdatePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	ctx = ctxutil.WithOperation(ctx, "service", "UpdatePassword")

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !checkPassword(user.Password, oldPassword) {
		logger.WarnWithContext(ctx, "Password change rejected, old password mismatch").
			Uint("user_id", userID).
			Log()
		return apperrors.ErrIncorrectPassword
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hashed); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Password changed").
		Uint("user_id", userID).
		Log()

	return nil
}

// Profile returns the public view of the user record.
func (s *AuthService) Profile(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return toUserResponse(user), nil
}
