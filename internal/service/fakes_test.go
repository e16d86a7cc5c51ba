package service

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/repairhub/backend/internal/errors"
	"github.com/repairhub/backend/internal/model"
	"gorm.io/gorm"
)

// In-memory stores backing the service tests. They mirror the repository
// semantics, including the exactly-once guarantee of consumption.

type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: make(map[uint]*model.User)}
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.nextID
	s.nextID++
	if user.TokenVersion == 0 {
		user.TokenVersion = 1
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Password = passwordHash
	return nil
}

func (s *fakeUserStore) IncrementTokenVersion(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.TokenVersion++
	return nil
}

func (s *fakeUserStore) UpdateLastLogin(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.LastLogin = time.Now()
	return nil
}

type fakeResetStore struct {
	mu     sync.Mutex
	nextID uint
	rows   []*model.PasswordResetToken
	users  *fakeUserStore
}

func newFakeResetStore(users *fakeUserStore) *fakeResetStore {
	return &fakeResetStore{nextID: 1, users: users}
}

func (s *fakeResetStore) CreateSuperseding(ctx context.Context, row *model.PasswordResetToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, existing := range s.rows {
		if existing.Email == row.Email && existing.Live(now) {
			consumedAt := now
			existing.ConsumedAt = &consumedAt
		}
	}
	row.ID = s.nextID
	s.nextID++
	copied := *row
	s.rows = append(s.rows, &copied)
	return nil
}

func (s *fakeResetStore) FindByEmailAndHash(ctx context.Context, email, tokenHash string) (*model.PasswordResetToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.Email == email && row.TokenHash == tokenHash {
			copied := *row
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeResetStore) ConsumeAndSetPassword(ctx context.Context, email, tokenHash, newPasswordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var match *model.PasswordResetToken
	for _, row := range s.rows {
		if row.Email == email && row.TokenHash == tokenHash {
			match = row
			break
		}
	}
	if match == nil {
		return apperrors.ErrInvalidToken
	}
	if !match.Live(now) {
		return apperrors.ErrExpiredToken
	}

	consumedAt := now
	match.ConsumedAt = &consumedAt

	s.users.mu.Lock()
	defer s.users.mu.Unlock()
	for _, user := range s.users.users {
		if user.Email == email {
			user.Password = newPasswordHash
			user.TokenVersion++
			return nil
		}
	}
	return apperrors.ErrUnknownIdentity
}

func (s *fakeResetStore) SweepTerminal(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var kept []*model.PasswordResetToken
	var removed int64
	for _, row := range s.rows {
		terminal := row.ConsumedAt != nil || row.ExpiresAt.Before(now)
		if terminal && row.CreatedAt.Before(before) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	s.rows = kept
	return removed, nil
}

// recordingMailer captures the raw secrets handed to it.
type recordingMailer struct {
	mu      sync.Mutex
	secrets []string
	emails  []string
	fail    error
}

func (m *recordingMailer) SendPasswordResetEmail(ctx context.Context, toEmail, toName, rawSecret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.emails = append(m.emails, toEmail)
	m.secrets = append(m.secrets, rawSecret)
	return nil
}

func (m *recordingMailer) lastSecret() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.secrets) == 0 {
		return ""
	}
	return m.secrets[len(m.secrets)-1]
}

// stubThrottle answers with a fixed verdict.
type stubThrottle struct {
	allowed bool
	err     error
}

func (t *stubThrottle) Allow(ctx context.Context, email string) (bool, error) {
	return t.allowed, t.err
}
