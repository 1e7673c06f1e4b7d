// internal/app/state/state.go

// Package state holds the mutable session picture shared across a running
// process: who is acting and which household they are working in. All
// access goes through the methods, which are safe for concurrent use.
package state

import (
	"sync"

	"github.com/tandemhq/tandem/internal/domain/models"
)

type AppState struct {
	mu        sync.RWMutex
	user      *models.User
	household *models.Household
}

func New() *AppState {
	return &AppState{}
}

// SetUser replaces the acting user. Passing nil clears both the user and
// the active household; there is no household context without a user.
func (s *AppState) SetUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	if u == nil {
		s.household = nil
	}
}

// User returns the acting user, or nil when signed out. Callers get a copy
// and cannot mutate shared state through it.
func (s *AppState) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SetHousehold replaces the active household context.
func (s *AppState) SetHousehold(h *models.Household) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.household = h
}

// Household returns a copy of the active household, or nil.
func (s *AppState) Household() *models.Household {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.household == nil {
		return nil
	}
	h := *s.household
	return &h
}

// Clear resets to signed-out.
func (s *AppState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.household = nil
}
