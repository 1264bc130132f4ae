// Package session persists the member's login session between runs.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Session is the locally held proof of authentication.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// Store keeps the current session in memory and mirrors it to a JSON file,
// the single "user" slot the whole application shares. A missing file means
// logged out. Writes are last-write-wins across processes.
type Store struct {
	mu   sync.RWMutex
	file string
	user *Session
}

func NewStore(dir string) *Store {
	return &Store{file: filepath.Join(dir, "user.json")}
}

// Load reads the session file if it exists. A corrupt file is treated as
// logged out rather than an error.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.user = nil
		return nil
	}
	s.user = &sess
	return nil
}

// Current returns the stored session. The second return is false when logged
// out; a present session with an empty token also counts as logged out.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil || s.user.Token == "" {
		return Session{}, false
	}
	return *s.user, true
}

// Save stores a new session and persists it.
func (s *Store) Save(token, userID, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.user
	s.user = &Session{Token: token, UserID: userID, Role: role}
	if err := s.saveInternal(); err != nil {
		s.user = prev // Rollback
		return err
	}
	return nil
}

// UpdateToken replaces the token on the current session. No-op when logged out.
func (s *Store) UpdateToken(token string) error {
	return s.update(func(sess *Session) { sess.Token = token })
}

// UpdateRole replaces the role on the current session. No-op when logged out.
func (s *Store) UpdateRole(role string) error {
	return s.update(func(sess *Session) { sess.Role = role })
}

func (s *Store) update(apply func(*Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	prev := *s.user
	apply(s.user)
	if err := s.saveInternal(); err != nil {
		*s.user = prev
		return err
	}
	return nil
}

// Delete logs out: clears the in-memory session and removes the file.
func (s *Store) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	if err := os.Remove(s.file); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Authenticated reports whether a session with a non-empty token is held.
func (s *Store) Authenticated() bool {
	_, ok := s.Current()
	return ok
}

// Must be called with the lock held.
func (s *Store) saveInternal() error {
	if err := os.MkdirAll(filepath.Dir(s.file), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.user, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.file, data, 0600)
}
