// Package game defines the game interface, the registry of available games,
// and the router that dispatches a user's direct messages to their active
// game session.
package game

import (
	"context"

	"celebration-bot/internal/session"
)

// Messenger sends a text message to a user's direct-message thread. Send
// failures are logged by the caller and are not retried.
type Messenger interface {
	SendMessage(ctx context.Context, userID int64, text string) error
}

// Game defines the interface that all games implement. A game creates and
// deletes its own sessions in the shared session manager; the router only
// looks sessions up and dispatches to the owning game.
type Game interface {
	// Key returns the stable identifier used in the registry and in
	// session state (e.g. "wordle", "hangman").
	Key() string

	// Name returns the game's display name (e.g. "Higher or Lower").
	Name() string

	// Start creates a fresh session for the user and sends the opening
	// prompt. Any prior session for the user has already been removed by
	// the router.
	Start(ctx context.Context, userID int64, m Messenger) error

	// Handle advances the user's session with one normalized guess
	// (trimmed, uppercased). Invalid input must leave the session
	// untouched; a terminal outcome must delete the session.
	Handle(ctx context.Context, userID int64, input string, sess session.Session, m Messenger) error
}
