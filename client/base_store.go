package client

import (
	"log"
	"sync"
)

// BaseStore carries the state shared by every domain store: the per-key
// loading map, the batching mutex, change subscribers, and per-key request
// fencing tokens. All observable mutations happen inside one batch per
// transition, so subscribers only ever see a consistent snapshot.
type BaseStore struct {
	root *RootStore

	mu        sync.Mutex
	loading   map[string]bool
	requests  map[string]uint64
	listeners []func()
}

func newBaseStore(root *RootStore) BaseStore {
	return BaseStore{
		root:     root,
		loading:  make(map[string]bool),
		requests: make(map[string]uint64),
	}
}

// Subscribe registers fn to run after every mutation batch.
func (s *BaseStore) Subscribe(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// batch runs fn while holding the store lock and notifies subscribers once
// afterwards.
func (s *BaseStore) batch(fn func()) {
	s.mu.Lock()
	fn()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, listener := range listeners {
		listener()
	}
}

// GetLoadingState returns the loading flag for key. Unknown keys are simply
// not loading.
func (s *BaseStore) GetLoadingState(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading[key]
}

// setLoadingState must only be called inside a batch.
func (s *BaseStore) setLoadingState(key string, state bool) {
	s.loading[key] = state
}

// beginRequest issues a fencing token for key. A response is applied only
// while its token is still the latest issued for that key, which keeps a
// slow stale response from clobbering newer state.
func (s *BaseStore) beginRequest(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[key]++
	return s.requests[key]
}

func (s *BaseStore) isCurrentRequest(key string, token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[key] == token
}

// handleError funnels every action failure through one path: normalize,
// record, log, and force a logout when the session has expired.
func (s *BaseStore) handleError(err error, context string) *ServerErrorResponse {
	serverErr := FromError(err)

	log.Printf("Error in %s: %v", context, serverErr)
	s.root.CommonStore.SetError(serverErr)

	if serverErr.IsUnauthorized() {
		s.root.UserStore.Logout()
	}

	return serverErr
}

// executeAction wraps a store action with the shared execution discipline:
// the loading flag for key is set on entry and cleared on every exit path,
// and the caller always receives a normalized *ServerErrorResponse, never
// the raw transport error.
func executeAction[T any](s *BaseStore, key string, operation func() (T, error), context string) (T, error) {
	s.batch(func() {
		s.setLoadingState(key, true)
	})

	result, err := operation()
	if err != nil {
		serverErr := s.handleError(err, context)
		s.batch(func() {
			s.setLoadingState(key, false)
		})
		var zero T
		return zero, serverErr
	}

	s.batch(func() {
		s.setLoadingState(key, false)
	})
	return result, nil
}
