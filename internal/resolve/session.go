package resolve

import (
	"sync"

	"github.com/jcvalerio/moneywiz-mcp-server/internal/models"
)

// Session is the memoization cache for one store-connection lifetime.
// It is an explicit object rather than ambient state so concurrent tool
// invocations, each with their own connection, never share lookups.
// Lookups are lock-guarded and append-only; nothing is invalidated within
// a session.
type Session struct {
	mu         sync.RWMutex
	categories map[int64]string
	payees     map[int64]string
	accounts   map[int64]models.Account
}

// NewSession creates an empty resolution session
func NewSession() *Session {
	return &Session{
		categories: make(map[int64]string),
		payees:     make(map[int64]string),
		accounts:   make(map[int64]models.Account),
	}
}

func (s *Session) category(id int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.categories[id]
	return name, ok
}

func (s *Session) setCategory(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[id] = name
}

func (s *Session) payee(id int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.payees[id]
	return name, ok
}

func (s *Session) setPayee(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payees[id] = name
}

func (s *Session) account(id int64) (models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	return account, ok
}

func (s *Session) setAccount(id int64, account models.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[id] = account
}
