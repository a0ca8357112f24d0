package client

import (
	"log"
)

// CommonStore owns app-wide state: the bearer token, the app-loaded flag
// and the last normalized error. It is the single owner of the token
// storage side-effect — every token change, from any call site, is mirrored
// to durable storage by a reaction registered at construction.
type CommonStore struct {
	BaseStore

	token          string
	appLoaded      bool
	lastError      *ServerErrorResponse
	tokenListeners []func(token string)
}

func newCommonStore(root *RootStore, storage TokenStorage) *CommonStore {
	s := &CommonStore{
		BaseStore: newBaseStore(root),
		token:     storage.Read(),
	}

	// Reaction: keep storage in sync with the token field, symmetrically.
	s.OnTokenChange(func(token string) {
		if token != "" {
			if err := storage.Write(token); err != nil {
				log.Printf("Error persisting token: %v", err)
			}
		} else {
			if err := storage.Clear(); err != nil {
				log.Printf("Error clearing token: %v", err)
			}
		}
	})

	return s
}

func (s *CommonStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetToken updates the token and fires the change listeners when the value
// actually changed.
func (s *CommonStore) SetToken(token string) {
	changed := false
	s.batch(func() {
		changed = s.token != token
		s.token = token
	})
	if !changed {
		return
	}

	s.mu.Lock()
	listeners := make([]func(string), len(s.tokenListeners))
	copy(listeners, s.tokenListeners)
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(token)
	}
}

// OnTokenChange registers a listener fired on every token change.
func (s *CommonStore) OnTokenChange(fn func(token string)) {
	s.mu.Lock()
	s.tokenListeners = append(s.tokenListeners, fn)
	s.mu.Unlock()
}

func (s *CommonStore) AppLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appLoaded
}

func (s *CommonStore) SetAppLoaded() {
	s.batch(func() {
		s.appLoaded = true
	})
}

func (s *CommonStore) LastError() *ServerErrorResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *CommonStore) SetError(err *ServerErrorResponse) {
	s.batch(func() {
		s.lastError = err
	})
}
