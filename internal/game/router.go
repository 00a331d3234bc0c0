package game

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"celebration-bot/internal/pkg/lock"
	"celebration-bot/internal/session"
)

// Router errors.
var (
	ErrUnknownGame = errors.New("unknown game key")
)

// Router decides whether an inbound direct message is a game move and, if so,
// dispatches it to the owning game. A user with an active session always has
// the message routed to the game, regardless of what the text looks like.
//
// The per-user lock serializes handling of one user's messages, so a session
// is never read and mutated by two handlers at once. Different users never
// block each other.
type Router struct {
	sessions *session.Manager
	registry *Registry
	locks    *lock.UserLock
}

// NewRouter creates a new Router.
func NewRouter(sessions *session.Manager, registry *Registry, locks *lock.UserLock) *Router {
	return &Router{
		sessions: sessions,
		registry: registry,
		locks:    locks,
	}
}

// Route handles one inbound direct message. It returns true if the message
// was consumed by an active game session; false means the caller should run
// its non-game flows (birthday capture and the like).
func (r *Router) Route(ctx context.Context, userID int64, text string, m Messenger) (bool, error) {
	r.locks.Lock(userID)
	defer r.locks.Unlock(userID)

	sess, ok := r.sessions.Get(userID)
	if !ok {
		return false, nil
	}

	g, ok := r.registry.Get(sess.GameKey())
	if !ok {
		// Invariant violation: a session referencing an unregistered
		// game. Drop the session so the user is not stuck.
		log.Error().Int64("user_id", userID).Str("game", sess.GameKey()).
			Msg("Session references unknown game, dropping it")
		r.sessions.Delete(userID)
		return true, fmt.Errorf("%w: %s", ErrUnknownGame, sess.GameKey())
	}

	input := strings.ToUpper(strings.TrimSpace(text))
	return true, g.Handle(ctx, userID, input, sess, m)
}

// StartGame begins the named game for a user. If the user is already mid-game
// the old session is discarded and the user is told, then the new game's
// opening prompt is sent.
func (r *Router) StartGame(ctx context.Context, key string, userID int64, m Messenger) error {
	g, ok := r.registry.Get(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGame, key)
	}

	r.locks.Lock(userID)
	defer r.locks.Unlock(userID)

	if old, exists := r.sessions.Get(userID); exists {
		r.sessions.Delete(userID)
		name := old.GameKey()
		if oldGame, ok := r.registry.Get(old.GameKey()); ok {
			name = oldGame.Name()
		}
		log.Info().Int64("user_id", userID).Str("old_game", old.GameKey()).
			Str("new_game", key).Msg("Replacing active game session")
		if err := m.SendMessage(ctx, userID, fmt.Sprintf("Your game of %s has been abandoned so we can start a new one!", name)); err != nil {
			log.Warn().Err(err).Int64("user_id", userID).Msg("Failed to send abandon notice")
		}
	}

	return g.Start(ctx, userID, m)
}

// StartRandom begins a uniformly random registered game for a user.
func (r *Router) StartRandom(ctx context.Context, userID int64, m Messenger) error {
	g, ok := r.registry.Random()
	if !ok {
		return fmt.Errorf("no games registered")
	}
	return r.StartGame(ctx, g.Key(), userID, m)
}
