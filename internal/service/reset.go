package service

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/repairhub/backend/internal/errors"
	"github.com/repairhub/backend/internal/model"
	ctxutil "github.com/repairhub/backend/pkg/context"
	"github.com/repairhub/backend/pkg/logger"
	"gorm.io/gorm"
)

// rawSecretBytes matches the historical secret size: 50 random bytes,
// hex-encoded to a 100-character string (400 bits of entropy).
const rawSecretBytes = 50

// ResetLedger manages the lifecycle of password-reset secrets: issuance,
// verification, and single-use consumption. Only SHA-256 digests of secrets
// are persisted; a digest is deterministic so the store can look rows up by
// equality, and comparisons here use constant-time hmac.Equal.
type ResetLedger struct {
	users    UserStore
	resets   ResetStore
	throttle IssueThrottle
	ttl      time.Duration
}

func NewResetLedger(users UserStore, resets ResetStore, throttle IssueThrottle, ttl time.Duration) *ResetLedger {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ResetLedger{
		users:    users,
		resets:   resets,
		throttle: throttle,
		ttl:      ttl,
	}
}

func digestSecret(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Issue creates a fresh secret for the email and returns the raw value for
// one-time transmission. Issuing supersedes any outstanding live request
// for the same email, so at most one secret can ever be consumed.
func (l *ResetLedger) Issue(ctx context.Context, email string) (string, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "IssueReset")

	if _, err := l.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.InfoWithContext(ctx, "Reset requested for unknown email").
				String("email", email).
				Log()
			return "", apperrors.ErrUnknownIdentity
		}
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if l.throttle != nil {
		allowed, err := l.throttle.Allow(ctx, email)
		if err != nil {
			// Throttling is a hardening layer; a broken throttle must not
			// take the reset flow down with it.
			logger.WarnWithContext(ctx, "Reset throttle unavailable, allowing request").
				String("email", email).
				Err(err).
				Log()
		} else if !allowed {
			logger.WarnWithContext(ctx, "Reset issuance throttled").
				String("email", email).
				Log()
			return "", apperrors.ErrTooManyRequests
		}
	}

	buf := make([]byte, rawSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, fmt.Errorf("failed to generate reset secret: %w", err))
	}
	raw := hex.EncodeToString(buf)

	now := time.Now()
	row := &model.PasswordResetToken{
		Email:     email,
		TokenHash: digestSecret(raw),
		CreatedAt: now,
		ExpiresAt: now.Add(l.ttl),
	}
	if err := l.resets.CreateSuperseding(ctx, row); err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Reset token issued").
		String("email", email).
		Duration(l.ttl).
		Log()

	return raw, nil
}

// Verify checks a candidate secret without consuming it.
func (l *ResetLedger) Verify(ctx context.Context, email, raw string) error {
	ctx = ctxutil.WithOperation(ctx, "service", "VerifyReset")

	if _, err := l.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUnknownIdentity
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	digest := digestSecret(raw)
	row, err := l.resets.FindByEmailAndHash(ctx, email, digest)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !hmac.Equal([]byte(row.TokenHash), []byte(digest)) {
		return apperrors.ErrInvalidToken
	}
	if !row.Live(time.Now()) {
		return apperrors.ErrExpiredToken
	}

	return nil
}

// Consume atomically validates the secret, marks it consumed, and writes
// the new password hash. At most one call for a given secret ever succeeds;
// racing duplicates fail with ExpiredToken.
func (l *ResetLedger) Consume(ctx context.Context, email, raw, newPasswordHash string) error {
	ctx = ctxutil.WithOperation(ctx, "service", "ConsumeReset")

	err := l.resets.ConsumeAndSetPassword(ctx, email, digestSecret(raw), newPasswordHash)
	if err != nil {
		if apperrors.IsDomainError(err) {
			return err
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return nil
}

// Sweep removes terminal ledger rows older than the retention cutoff.
func (l *ResetLedger) Sweep(ctx context.Context, retention time.Duration) (int64, error) {
	return l.resets.SweepTerminal(ctx, time.Now().Add(-retention))
}
