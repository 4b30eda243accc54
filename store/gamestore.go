package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/minaorangina/fanren/engine"
)

var ErrUnknownGameID = errors.New("unknown game ID")

// GameStore finds running games by id
type GameStore interface {
	FindGame(gameID string) *engine.GameEngine
	AddGame(ge *engine.GameEngine) error
	Games() []engine.Summary
}

// InMemoryGameStore maps game id to game engine
type InMemoryGameStore struct {
	mu    sync.RWMutex
	games map[string]*engine.GameEngine
	order []string
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		games: map[string]*engine.GameEngine{},
		order: []string{},
	}
}

func (s *InMemoryGameStore) FindGame(gameID string) *engine.GameEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.games[gameID]
}

func (s *InMemoryGameStore) AddGame(ge *engine.GameEngine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[ge.ID()]; exists {
		return fmt.Errorf("game with id %s already exists", ge.ID())
	}

	s.games[ge.ID()] = ge
	s.order = append(s.order, ge.ID())
	return nil
}

// Games summarises every game, oldest first
func (s *InMemoryGameStore) Games() []engine.Summary {
	s.mu.RLock()
	engines := make([]*engine.GameEngine, 0, len(s.order))
	for _, id := range s.order {
		engines = append(engines, s.games[id])
	}
	s.mu.RUnlock()

	summaries := make([]engine.Summary, 0, len(engines))
	for _, ge := range engines {
		summaries = append(summaries, ge.Summary())
	}
	return summaries
}

// Stop stops every game
func (s *InMemoryGameStore) Stop() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ge := range s.games {
		ge.Stop()
	}
}
