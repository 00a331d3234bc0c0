package game

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
)

// Registry manages game registration and lookup by key. It is safe for
// concurrent use, though in practice all games are registered during startup.
type Registry struct {
	games map[string]Game
	mu    sync.RWMutex
}

// NewRegistry creates a new game registry.
func NewRegistry() *Registry {
	return &Registry{
		games: make(map[string]Game),
	}
}

// Register adds a game to the registry. A game with a duplicate key replaces
// the earlier registration.
func (r *Registry) Register(g Game) error {
	if g == nil {
		return fmt.Errorf("cannot register nil game")
	}
	if g.Key() == "" {
		return fmt.Errorf("game key cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[g.Key()] = g
	return nil
}

// Get retrieves a game by its key.
func (r *Registry) Get(key string) (Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.games[key]
	return g, ok
}

// Keys returns all registered game keys, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.games))
	for k := range r.games {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// List returns all registered games. The returned slice is a copy.
func (r *Registry) List() []Game {
	r.mu.RLock()
	defer r.mu.RUnlock()

	games := make([]Game, 0, len(r.games))
	for _, k := range r.keysLocked() {
		games = append(games, r.games[k])
	}
	return games
}

// Random returns a uniformly random registered game.
func (r *Registry) Random() (Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := r.keysLocked()
	if len(keys) == 0 {
		return nil, false
	}
	return r.games[keys[rand.Intn(len(keys))]], true
}

// Count returns the number of registered games.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}

// keysLocked returns sorted keys; callers must hold at least a read lock.
func (r *Registry) keysLocked() []string {
	keys := make([]string, 0, len(r.games))
	for k := range r.games {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
