package repository

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/repairhub/backend/internal/errors"
	"github.com/repairhub/backend/internal/model"
	ctxutil "github.com/repairhub/backend/pkg/context"
	"github.com/repairhub/backend/pkg/logger"
	"gorm.io/gorm"
)

// PasswordResetRepository persists the reset-token ledger. Rows are append
// only: supersession and consumption set consumed_at, nothing is deleted
// except by the retention sweep.
type PasswordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

// CreateSuperseding inserts a new ledger row and, in the same transaction,
// marks every still-live row for the email consumed. At most one live row
// per email can exist afterwards.
func (r *PasswordResetRepository) CreateSuperseding(ctx context.Context, row *model.PasswordResetToken) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "CreateSuperseding")

	now := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		superseded := tx.Model(&model.PasswordResetToken{}).
			Where("email = ? AND consumed_at IS NULL AND expires_at > ?", row.Email, now).
			Update("consumed_at", now)
		if superseded.Error != nil {
			return superseded.Error
		}

		if superseded.RowsAffected > 0 {
			logger.InfoWithContext(ctx, "Superseded outstanding reset tokens").
				String("email", row.Email).
				Int64("count", superseded.RowsAffected).
				Log()
		}

		return tx.Create(row).Error
	})
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to create reset token").
			String("email", row.Email).
			Err(err).
			Log()
		return err
	}

	return nil
}

// FindByEmailAndHash returns the ledger row for the digest regardless of its
// state, or gorm.ErrRecordNotFound.
func (r *PasswordResetRepository) FindByEmailAndHash(ctx context.Context, email, tokenHash string) (*model.PasswordResetToken, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "FindByEmailAndHash")

	var row model.PasswordResetToken
	result := r.db.WithContext(ctx).
		Where("email = ? AND token_hash = ?", email, tokenHash).
		First(&row)
	if result.Error != nil {
		return nil, result.Error
	}

	return &row, nil
}

// ConsumeAndSetPassword atomically marks the matching live row consumed and
// writes the new password hash for the user, as one transaction. The guarded
// UPDATE is the linchpin: of two racing submissions with the same secret,
// exactly one observes RowsAffected == 1.
//
// Consumption also bumps the user's token version so sessions opened with
// the old password stop working.
func (r *PasswordResetRepository) ConsumeAndSetPassword(ctx context.Context, email, tokenHash, newPasswordHash string) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "ConsumeAndSetPassword")

	now := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		consumed := tx.Model(&model.PasswordResetToken{}).
			Where("email = ? AND token_hash = ? AND consumed_at IS NULL AND expires_at > ?", email, tokenHash, now).
			Update("consumed_at", now)
		if consumed.Error != nil {
			return consumed.Error
		}

		if consumed.RowsAffected == 0 {
			// Distinguish a secret that was never issued from one that has
			// reached a terminal state.
			var row model.PasswordResetToken
			lookup := tx.Where("email = ? AND token_hash = ?", email, tokenHash).First(&row)
			if errors.Is(lookup.Error, gorm.ErrRecordNotFound) {
				return apperrors.ErrInvalidToken
			}
			if lookup.Error != nil {
				return lookup.Error
			}
			return apperrors.ErrExpiredToken
		}

		updated := tx.Model(&model.User{}).
			Where("email = ?", email).
			Updates(map[string]any{
				"password":      newPasswordHash,
				"token_version": gorm.Expr("token_version + 1"),
			})
		if updated.Error != nil {
			return updated.Error
		}
		if updated.RowsAffected == 0 {
			return apperrors.ErrUnknownIdentity
		}

		return nil
	})
	if err != nil {
		if apperrors.IsDomainError(err) {
			logger.WarnWithContext(ctx, "Reset token consumption rejected").
				String("email", email).
				String("reason", apperrors.GetErrorMessage(err)).
				Log()
		} else {
			logger.ErrorWithContext(ctx, "Reset token consumption failed").
				String("email", email).
				Err(err).
				Log()
		}
		return err
	}

	logger.InfoWithContext(ctx, "Reset token consumed, password updated").
		String("email", email).
		Log()

	return nil
}

// SweepTerminal deletes consumed or expired rows older than the retention
// cutoff. Housekeeping only; correctness never depends on it.
func (r *PasswordResetRepository) SweepTerminal(ctx context.Context, before time.Time) (int64, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "SweepTerminal")

	result := r.db.WithContext(ctx).
		Where("(consumed_at IS NOT NULL OR expires_at < ?) AND created_at < ?", time.Now(), before).
		Delete(&model.PasswordResetToken{})
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Reset ledger sweep failed").
			Err(result.Error).
			Log()
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
