package auth

import (
	"sync"
	"time"

	"github.com/fquiz/fquiz/internal/repository"
)

// ResetTokenStore abstracts where password-reset tokens live. Production
// persists them on the users table; tests and dev use the in-memory store.
type ResetTokenStore interface {
	Put(email, token string, expiresAt time.Time) error
	// Consume returns the email the token belongs to and invalidates it.
	// An unknown or expired token returns ok=false.
	Consume(token string) (email string, ok bool, err error)
}

type dbResetTokenStore struct {
	userRepo repository.UserRepository
}

func NewDBResetTokenStore(userRepo repository.UserRepository) ResetTokenStore {
	return &dbResetTokenStore{userRepo: userRepo}
}

func (s *dbResetTokenStore) Put(email, token string, expiresAt time.Time) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return err
	}
	user.PasswordResetToken = &token
	user.PasswordResetExpires = &expiresAt
	return s.userRepo.Update(user)
}

func (s *dbResetTokenStore) Consume(token string) (string, bool, error) {
	user, err := s.userRepo.FindByResetToken(token)
	if err != nil {
		return "", false, nil
	}
	if user.PasswordResetExpires == nil || user.PasswordResetExpires.Before(time.Now()) {
		return "", false, nil
	}
	user.PasswordResetToken = nil
	user.PasswordResetExpires = nil
	if err := s.userRepo.Update(user); err != nil {
		return "", false, err
	}
	return user.Email, true, nil
}

type memoryResetTokenStore struct {
	mu      sync.Mutex
	entries map[string]memoryResetEntry
}

type memoryResetEntry struct {
	email     string
	expiresAt time.Time
}

// NewMemoryResetTokenStore backs the reset flow without a database. Tokens
// vanish on restart, which is acceptable for dev and tests.
func NewMemoryResetTokenStore() ResetTokenStore {
	return &memoryResetTokenStore{entries: make(map[string]memoryResetEntry)}
}

func (s *memoryResetTokenStore) Put(email, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryResetEntry{email: email, expiresAt: expiresAt}
	return nil
}

func (s *memoryResetTokenStore) Consume(token string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[token]
	if !ok {
		return "", false, nil
	}
	delete(s.entries, token)
	if entry.expiresAt.Before(time.Now()) {
		return "", false, nil
	}
	return entry.email, true, nil
}
