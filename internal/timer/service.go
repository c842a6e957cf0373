package timer

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Service hands out one Engine per user, created lazily on first touch and
// kept for the life of the process.
type Service struct {
	mu      sync.Mutex
	engines map[uuid.UUID]*Engine

	remote         StateChannel
	recorder       SessionRecorder
	clock          Clock
	defaultMinutes int
}

func NewService(remote StateChannel, recorder SessionRecorder, clock Clock, defaultMinutes int) *Service {
	return &Service{
		engines:        make(map[uuid.UUID]*Engine),
		remote:         remote,
		recorder:       recorder,
		clock:          clock,
		defaultMinutes: defaultMinutes,
	}
}

// Engine returns the user's engine, opening a new one against the shared
// record on first use.
func (s *Service) Engine(ctx context.Context, userID uuid.UUID) (*Engine, error) {
	s.mu.Lock()
	if e, ok := s.engines[userID]; ok {
		s.mu.Unlock()
		return e, nil
	}
	s.mu.Unlock()

	e := New(userID, s.remote, s.recorder, s.clock, s.defaultMinutes)
	if err := e.Open(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.engines[userID]; ok {
		// Lost the race to another request for the same user.
		e.Close()
		return existing, nil
	}
	s.engines[userID] = e
	return e, nil
}

// Has reports whether a live engine exists for the user.
func (s *Service) Has(userID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.engines[userID]
	return ok
}

// Close tears down every engine and its subscription.
func (s *Service) Close() {
	s.mu.Lock()
	engines := make([]*Engine, 0, len(s.engines))
	for _, e := range s.engines {
		engines = append(engines, e)
	}
	s.engines = make(map[uuid.UUID]*Engine)
	s.mu.Unlock()

	for _, e := range engines {
		e.Close()
	}
}
