// Package session persists the signed in store account between runs
package session

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/tienda/internal/models"
)

// Session is the on-disk record of who is signed in
type Session struct {
	UserID     int       `yaml:"user_id"`
	Username   string    `yaml:"username"`
	SignedInAt time.Time `yaml:"signed_in_at"`
}

// Store reads and writes the session file. It is safe for concurrent use.
type Store struct {
	path string

	mu      sync.Mutex
	current *Session
}

// DefaultPath returns ~/.tienda/session.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".tienda", "session.yaml"), nil
}

// Open loads the session at path. A missing file means nobody is signed in.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var sess Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	if sess.UserID > 0 {
		s.current = &sess
	}
	return s, nil
}

// Current returns a copy of the active session, or nil
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// CurrentUserID returns the signed in user's id
func (s *Store) CurrentUserID() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return 0, false
	}
	return s.current.UserID, true
}

// SignIn records user as the active account and writes the file
func (s *Store) SignIn(u *models.User) error {
	if u == nil || u.ID <= 0 {
		return errors.New("cannot sign in without a user")
	}

	sess := &Session{UserID: u.ID, Username: u.Username, SignedInAt: time.Now().UTC()}

	data, err := yaml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	return nil
}

// SignOut forgets the active account
func (s *Store) SignOut() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// SuggestedUsername returns the OS account name, used to prefill login.
// It tries user.Current, then $USER, then gives up with "".
func SuggestedUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
