// Package numguess implements the Higher or Lower birthday game: guess a
// number between 1 and 100 in a limited number of tries.
package numguess

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/rs/zerolog/log"

	"celebration-bot/internal/game"
	"celebration-bot/internal/session"
)

const (
	// GameKey is the registry key for the number-guessing game.
	GameKey = "number_guesser"

	// DefaultLimit is the number of tries when no limit is configured.
	DefaultLimit = 7

	minTarget = 1
	maxTarget = 100
)

// State is one user's session: the fixed target, how many valid guesses have
// been made, and the try limit.
type State struct {
	Target  int
	Guesses int
	Limit   int
}

// GameKey implements session.Session.
func (*State) GameKey() string { return GameKey }

// Game implements the number-guessing game.
type Game struct {
	sessions *session.Manager
	limit    int
}

// New creates the game. A non-positive limit falls back to DefaultLimit.
func New(sessions *session.Manager, limit int) *Game {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Game{
		sessions: sessions,
		limit:    limit,
	}
}

// Key implements game.Game.
func (g *Game) Key() string { return GameKey }

// Name implements game.Game.
func (g *Game) Name() string { return "Higher or Lower" }

// Start picks a uniformly random target and sends the opening prompt.
func (g *Game) Start(ctx context.Context, userID int64, m game.Messenger) error {
	target := minTarget + rand.Intn(maxTarget-minTarget+1)
	g.sessions.Put(userID, &State{Target: target, Limit: g.limit})

	log.Info().Int64("user_id", userID).Int("target", target).Msg("Starting Higher or Lower game")

	msg := fmt.Sprintf("Happy Birthday! 🎉 For a bit of fun, let's play Higher or Lower!\n\n"+
		"I'm thinking of a number between %d and %d. You have %d tries to guess it.\n"+
		"What's your first guess?", minTarget, maxTarget, g.limit)
	return m.SendMessage(ctx, userID, msg)
}

// Handle applies one guess. Non-numeric input does not consume a try.
func (g *Game) Handle(ctx context.Context, userID int64, input string, sess session.Session, m game.Messenger) error {
	st, ok := sess.(*State)
	if !ok {
		return fmt.Errorf("numguess: unexpected session state %T", sess)
	}

	guess, err := strconv.Atoi(input)
	if err != nil {
		return m.SendMessage(ctx, userID, fmt.Sprintf("That's not a number! Please guess a number between %d and %d.", minTarget, maxTarget))
	}

	st.Guesses++

	switch {
	case guess == st.Target:
		g.sessions.Delete(userID)
		return m.SendMessage(ctx, userID, fmt.Sprintf("You got it! The number was %d. You guessed it in %d tries! 🎊", st.Target, st.Guesses))
	case st.Guesses >= st.Limit:
		g.sessions.Delete(userID)
		return m.SendMessage(ctx, userID, fmt.Sprintf("Nice try! You're out of guesses. The number I was thinking of was %d. Better luck next time!", st.Target))
	case guess < st.Target:
		return m.SendMessage(ctx, userID, fmt.Sprintf("%d is too low. Guess higher! You have %d tries left.", guess, st.Limit-st.Guesses))
	default:
		return m.SendMessage(ctx, userID, fmt.Sprintf("%d is too high. Guess lower! You have %d tries left.", guess, st.Limit-st.Guesses))
	}
}
