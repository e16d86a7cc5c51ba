package model

import "time"

// ResetState is derived from the row's timestamps; rows are never hard
// deleted, they only move to a terminal state.
type ResetState string

const (
	ResetIssued   ResetState = "issued"
	ResetConsumed ResetState = "consumed"
	ResetExpired  ResetState = "expired"
)

// PasswordResetToken is one ledger row per issued reset secret. Only the
// SHA-256 digest of the secret is stored; the raw value leaves the process
// exactly once, inside the reset email.
type PasswordResetToken struct {
	ID         uint       `gorm:"primaryKey"`
	Email      string     `gorm:"column:email;index;not null"`
	TokenHash  string     `gorm:"column:token_hash;uniqueIndex;not null"`
	CreatedAt  time.Time  `gorm:"column:created_at;not null"`
	ExpiresAt  time.Time  `gorm:"column:expires_at;not null"`
	ConsumedAt *time.Time `gorm:"column:consumed_at"`
}

// State reports the row's lifecycle state at the given instant.
func (t *PasswordResetToken) State(now time.Time) ResetState {
	if t.ConsumedAt != nil {
		return ResetConsumed
	}
	if now.After(t.ExpiresAt) {
		return ResetExpired
	}
	return ResetIssued
}

// Live reports whether the row can still authorize a password change.
func (t *PasswordResetToken) Live(now time.Time) bool {
	return t.State(now) == ResetIssued
}
