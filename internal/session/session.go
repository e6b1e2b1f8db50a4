// Package session holds the bearer token returned by login. It is the
// terminal counterpart of the browser's auth cookie: one per process,
// set on login, cleared on logout, and persisted between runs when a
// database is available.
package session

import (
	"database/sql"
	"sync"
	"time"

	"unifiedai/internal/db"
)

type Store struct {
	mu       sync.RWMutex
	conn     *sql.DB
	token    string
	identity string
}

// New restores any persisted session from conn. conn may be nil, in which
// case the session lives in memory only.
func New(conn *sql.DB) (*Store, error) {
	s := &Store{conn: conn}
	if conn == nil {
		return s, nil
	}
	row, ok, err := db.LoadSession(conn)
	if err != nil {
		return s, err
	}
	if ok {
		s.token = row.AccessToken
		s.identity = row.Identity
	}
	return s, nil
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Identity is the username or email the token was issued for.
func (s *Store) Identity() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *Store) LoggedIn() bool {
	return s.Token() != ""
}

// Set replaces the session. The in-memory value is updated even when
// persisting fails.
func (s *Store) Set(token, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.identity = identity
	if s.conn == nil {
		return nil
	}
	return db.SaveSession(s.conn, token, identity, time.Now().Unix())
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.identity = ""
	if s.conn == nil {
		return nil
	}
	return db.ClearSession(s.conn)
}
