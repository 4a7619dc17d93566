package session

import (
	"fmt"
	"sync"
	"time"
)

// Store is the only writer of session state. Reads go straight to the
// underlying Storage so a logout from another process is seen immediately.
type Store struct {
	mu      sync.Mutex
	storage Storage
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, for simulating expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns a Store over storage.
func NewStore(storage Storage, opts ...Option) *Store {
	s := &Store{storage: storage, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set records a new session expiring ttl from now. All four slots are
// written in one Save.
func (s *Store) Set(token string, ttl time.Duration, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := Record{
		AccessToken: token,
		TokenExpiry: s.now().Add(ttl).UnixMilli(),
		AdminEmail:  identity,
		IsLoggedIn:  true,
	}
	if err := s.storage.Save(r); err != nil {
		return fmt.Errorf("session.Set: %w", err)
	}
	return nil
}

// Clear removes every slot. Clearing an empty session is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Delete(); err != nil {
		return fmt.Errorf("session.Clear: %w", err)
	}
	return nil
}

// Load returns the current record.
func (s *Store) Load() (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.storage.Load()
	if err != nil {
		return Record{}, fmt.Errorf("session.Load: %w", err)
	}
	return r, nil
}

// IsExpired returns true if no expiry is recorded, the expiry has passed,
// or the record cannot be read.
func (s *Store) IsExpired() bool {
	r, err := s.Load()
	if err != nil {
		return true
	}
	return r.ExpiredAt(s.now())
}

// Authenticated returns true if the stored session is logged in, carries a
// token, and has not expired.
func (s *Store) Authenticated() bool {
	r, err := s.Load()
	if err != nil {
		return false
	}
	return r.AuthenticatedAt(s.now())
}

// Token returns the stored access token, or "" when there is none.
func (s *Store) Token() string {
	r, err := s.Load()
	if err != nil {
		return ""
	}
	return r.AccessToken
}

// Now returns the store's clock reading.
func (s *Store) Now() time.Time {
	return s.now()
}
