// Package wordle implements the Wordle-clone birthday game: guess a 5-letter
// word in 6 tries with per-letter feedback after every guess.
package wordle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"celebration-bot/internal/session"
	"celebration-bot/internal/words"

	"celebration-bot/internal/game"
)

const (
	// GameKey is the registry key for the Wordle game.
	GameKey = "wordle"

	wordLen    = 5
	maxGuesses = 6
)

// Suggester proposes a word of the day from a candidate pool.
type Suggester interface {
	SuggestAnswer(ctx context.Context, pool []string) (string, error)
}

// Validator checks whether a word outside the local dictionary is a real
// English word.
type Validator interface {
	IsRealWord(ctx context.Context, word string) (bool, error)
}

// State is one user's Wordle session: the fixed target and the append-only
// guess history.
type State struct {
	Target  string
	Guesses []string
}

// GameKey implements session.Session.
func (*State) GameKey() string { return GameKey }

// Game implements the Wordle game.
type Game struct {
	pools     *words.Pools
	sessions  *session.Manager
	suggester Suggester
	validator Validator
	now       func() time.Time
}

// New creates the Wordle game. suggester and validator may be nil, in which
// case the local fallbacks are used unconditionally.
func New(pools *words.Pools, sessions *session.Manager, suggester Suggester, validator Validator) *Game {
	return &Game{
		pools:     pools,
		sessions:  sessions,
		suggester: suggester,
		validator: validator,
		now:       time.Now,
	}
}

// Key implements game.Game.
func (g *Game) Key() string { return GameKey }

// Name implements game.Game.
func (g *Game) Name() string { return "Wordle" }

// Start picks the word of the day, creates the session, and sends the rules.
func (g *Game) Start(ctx context.Context, userID int64, m game.Messenger) error {
	target := g.pickTarget(ctx)
	g.sessions.Put(userID, &State{Target: target})

	log.Info().Int64("user_id", userID).Str("word", target).Msg("Starting Wordle game")

	msg := "Happy Birthday! 🎉 For a bit of fun, let's play a game of Wordle!\n\n" +
		"Guess the 5-letter word in 6 tries.\n" +
		"Reply with your first guess. Good luck!"
	return m.SendMessage(ctx, userID, msg)
}

// pickTarget prefers the external suggester; its answer must be a valid
// dictionary word of the right shape. Otherwise the deterministic per-day
// fallback is used so all users see the same word that day.
func (g *Game) pickTarget(ctx context.Context) string {
	if g.suggester != nil {
		w, err := g.suggester.SuggestAnswer(ctx, g.pools.Answers())
		if err == nil {
			w = strings.ToUpper(strings.TrimSpace(w))
			if len(w) == wordLen && isAlpha(w) && g.pools.IsValidGuess(w) {
				return w
			}
			log.Warn().Str("word", w).Msg("Suggested word rejected, using daily fallback")
		} else {
			log.Warn().Err(err).Msg("Word suggestion failed, using daily fallback")
		}
	}
	return g.pools.DailyAnswer(g.now())
}

// Handle applies one guess. Malformed or unknown words do not consume a turn.
func (g *Game) Handle(ctx context.Context, userID int64, input string, sess session.Session, m game.Messenger) error {
	st, ok := sess.(*State)
	if !ok {
		return fmt.Errorf("wordle: unexpected session state %T", sess)
	}

	if len(input) != wordLen || !isAlpha(input) {
		return m.SendMessage(ctx, userID, "That's not a 5-letter word. Please try again.")
	}

	if !g.pools.IsValidGuess(input) {
		if !g.validateExternally(ctx, input) {
			return m.SendMessage(ctx, userID, "That word is not in my dictionary. Please try again.")
		}
	}

	st.Guesses = append(st.Guesses, input)
	history := renderHistory(st.Guesses, st.Target)

	switch {
	case input == st.Target:
		g.sessions.Delete(userID)
		return m.SendMessage(ctx, userID, fmt.Sprintf("%s\nCongratulations, you guessed it! The word was %s! 🎉", history, st.Target))
	case len(st.Guesses) >= maxGuesses:
		g.sessions.Delete(userID)
		return m.SendMessage(ctx, userID, fmt.Sprintf("%s\nNice try! You've used all your guesses. The word was %s. Better luck next time!", history, st.Target))
	default:
		remaining := maxGuesses - len(st.Guesses)
		return m.SendMessage(ctx, userID, fmt.Sprintf("%s\nYou have %d guess(es) left.", history, remaining))
	}
}

// validateExternally asks the validator about an out-of-dictionary word and,
// on a yes, adds it to the dictionary for all future games.
func (g *Game) validateExternally(ctx context.Context, word string) bool {
	if g.validator == nil {
		return false
	}
	real, err := g.validator.IsRealWord(ctx, word)
	if err != nil {
		log.Warn().Err(err).Str("word", word).Msg("Word validation failed")
		return false
	}
	if !real {
		return false
	}
	if err := g.pools.AddGuess(word); err != nil {
		log.Error().Err(err).Str("word", word).Msg("Failed to persist validated word")
	}
	return true
}

// renderHistory renders every prior guess with its feedback line.
func renderHistory(guesses []string, target string) string {
	var b strings.Builder
	for _, guess := range guesses {
		fmt.Fprintf(&b, "%s -> %s\n", guess, Score(guess, target))
	}
	return b.String()
}

// Score computes the per-letter feedback for a guess using the two-pass
// accounting algorithm: exact-position matches consume their target letter
// first, then remaining guess letters match leftover target letters at most
// once each.
func Score(guess, target string) string {
	const (
		hit     = "🟩"
		present = "🟨"
		miss    = "⬛"
	)

	n := len(guess)
	marks := make([]string, n)
	var counts [26]int

	for i := 0; i < n; i++ {
		if guess[i] == target[i] {
			marks[i] = hit
		} else {
			counts[target[i]-'A']++
		}
	}
	for i := 0; i < n; i++ {
		if marks[i] != "" {
			continue
		}
		j := guess[i] - 'A'
		if counts[j] > 0 {
			marks[i] = present
			counts[j]--
		} else {
			marks[i] = miss
		}
	}
	return strings.Join(marks, "")
}

// isAlpha reports whether s consists only of ASCII letters A-Z.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
