// Package session holds the recruiter's authentication state for one running
// client, backed by a durable file so a restart restores the session.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hireova/screening-desk/internal/logger"
)

const fileName = "session.json"

// persisted is the on-disk shape. The two keys live and die together.
type persisted struct {
	Token         string `json:"token"`
	RecruiterName string `json:"recruiterName"`
}

// Store is the single authoritative holder of the session token and recruiter
// identity. The auth workflow writes it; every other controller only reads.
type Store struct {
	mu   sync.RWMutex
	path string
	cur  persisted
}

// NewStore creates a store persisting under dir.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, fileName)}
}

// Restore reads the durable file once at startup. A missing or unreadable
// file yields an empty session rather than an error; a stale half-written
// session must never block startup.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Get().Warn().Err(err).Msg("could not read stored session")
		}
		return
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		logger.Get().Warn().Err(err).Msg("stored session is corrupt, ignoring")
		return
	}
	// Token and recruiter name are both present or both absent.
	if p.Token == "" || p.RecruiterName == "" {
		return
	}
	s.cur = p
}

// Set stores a new session in memory and on disk. On a write failure the
// in-memory session is cleared as well, so observers never see a session that
// would not survive a restart.
func (s *Store) Set(token, recruiterName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := persisted{Token: token, RecruiterName: recruiterName}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		s.cur = persisted{}
		return fmt.Errorf("failed to persist session: %w", err)
	}
	s.cur = p
	return nil
}

// Clear drops the session from memory and disk.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = persisted{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		logger.Get().Warn().Err(err).Msg("could not remove stored session")
	}
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token
}

// RecruiterName returns the logged-in recruiter's display name.
func (s *Store) RecruiterName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.RecruiterName
}

// Authenticated reports whether a session is present.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}
