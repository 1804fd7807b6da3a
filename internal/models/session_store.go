package models

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Session is the verified user of this client together with its expiry
type Session struct {
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is no longer valid at now
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// SessionStore keeps the current session in a file readable only by the owner
type SessionStore struct {
	SessionFile string
	TTL         time.Duration
	now         func() time.Time
}

func NewSessionStore(configDir string, ttl time.Duration) *SessionStore {
	return &SessionStore{
		SessionFile: filepath.Join(configDir, "session.json"),
		TTL:         ttl,
		now:         time.Now,
	}
}

// Save stores a new session for user, starting now
func (ss *SessionStore) Save(user User) (*Session, error) {
	now := ss.now()
	session := &Session{User: user, CreatedAt: now}
	if ss.TTL > 0 {
		session.ExpiresAt = now.Add(ss.TTL)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(ss.SessionFile), 0700); err != nil {
		return nil, err
	}
	if err := os.WriteFile(ss.SessionFile, data, 0600); err != nil {
		return nil, err
	}
	return session, nil
}

// Load returns the stored session, ErrNotLoggedIn when there is none and
// ErrSessionExpired when it has expired.
func (ss *SessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(ss.SessionFile)
	if os.IsNotExist(err) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	if session.User.ID == 0 {
		return nil, ErrNotLoggedIn
	}
	if session.Expired(ss.now()) {
		return nil, ErrSessionExpired
	}
	return &session, nil
}

func (ss *SessionStore) Clear() error {
	if _, err := os.Stat(ss.SessionFile); os.IsNotExist(err) {
		return nil // nothing to clear
	}
	return os.Remove(ss.SessionFile)
}
