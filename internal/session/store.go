// Package session holds the current user identity and access token,
// persisted to local storage so a restart keeps the user signed in.
package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/fracki1010/edu-cart-app/internal/domain"
	"github.com/fracki1010/edu-cart-app/internal/localstore"
)

// Source is the read-only view consumed by the API client and the cart
// service. Injecting it keeps cart logic testable without a live store.
type Source interface {
	Current() domain.Session
}

type Store struct {
	mu      sync.RWMutex
	kv      *localstore.Store
	current domain.Session
	onClear []func()
	log     *zap.Logger
}

// NewStore loads any persisted session from local storage. A corrupt
// persisted user is discarded rather than propagated.
func NewStore(kv *localstore.Store, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{kv: kv, log: log}

	token, ok, err := kv.Get(localstore.KeyToken)
	if err != nil {
		return nil, fmt.Errorf("failed to load session token: %w", err)
	}
	if !ok {
		return s, nil
	}
	s.current.Token = token

	raw, ok, err := kv.Get(localstore.KeyUser)
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	if ok {
		var user domain.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			log.Warn("discarding corrupt persisted user", zap.Error(err))
		} else {
			s.current.User = &user
		}
	}
	return s, nil
}

func (s *Store) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set establishes an authenticated session and persists it.
func (s *Store) Set(user domain.User, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.kv.Put(localstore.KeyToken, token); err != nil {
		return err
	}
	if err := s.kv.Put(localstore.KeyUser, string(raw)); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = domain.Session{User: &user, Token: token}
	s.mu.Unlock()
	return nil
}

// Clear destroys the session, wipes both storage entries and fires the
// registered hooks. Called on explicit logout and on any 401 response.
func (s *Store) Clear() {
	s.mu.Lock()
	wasActive := s.current.Authenticated()
	s.current = domain.Session{}
	hooks := s.onClear
	s.mu.Unlock()

	if err := s.kv.Delete(localstore.KeyToken); err != nil {
		s.log.Warn("failed to delete persisted token", zap.Error(err))
	}
	if err := s.kv.Delete(localstore.KeyUser); err != nil {
		s.log.Warn("failed to delete persisted user", zap.Error(err))
	}

	if !wasActive {
		return
	}
	for _, fn := range hooks {
		fn()
	}
}

// OnClear registers a hook invoked whenever an active session is destroyed.
func (s *Store) OnClear(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClear = append(s.onClear, fn)
}

// UpdateUser replaces the stored user while keeping the token, mirroring a
// successful profile edit.
func (s *Store) UpdateUser(user domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.kv.Put(localstore.KeyUser, string(raw)); err != nil {
		return err
	}

	s.mu.Lock()
	s.current.User = &user
	s.mu.Unlock()
	return nil
}
