package service

import (
	"context"
	"time"

	"github.com/repairhub/backend/internal/model"
)

// Store interfaces consumed by the services. The gorm repositories satisfy
// them; tests substitute in-memory fakes.

type UserStore interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	IncrementTokenVersion(ctx context.Context, id uint) error
	UpdateLastLogin(ctx context.Context, id uint) error
}

type ResetStore interface {
	CreateSuperseding(ctx context.Context, row *model.PasswordResetToken) error
	FindByEmailAndHash(ctx context.Context, email, tokenHash string) (*model.PasswordResetToken, error)
	ConsumeAndSetPassword(ctx context.Context, email, tokenHash, newPasswordHash string) error
	SweepTerminal(ctx context.Context, before time.Time) (int64, error)
}

// Mailer delivers the raw reset secret out of band. Implementations must
// not log the secret.
type Mailer interface {
	SendPasswordResetEmail(ctx context.Context, toEmail, toName, rawSecret string) error
}

// IssueThrottle gates how often a reset secret may be issued per email.
type IssueThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
}
