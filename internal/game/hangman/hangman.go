// Package hangman implements the hangman birthday game: reveal a hidden word
// letter by letter with six lives, or win outright by guessing the full word.
package hangman

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"celebration-bot/internal/game"
	"celebration-bot/internal/session"
	"celebration-bot/internal/words"
)

const (
	// GameKey is the registry key for the hangman game.
	GameKey = "hangman"

	// Lives is the number of wrong letters allowed.
	Lives = 6

	minWordLen = 5
	maxWordLen = 8
)

// Suggester proposes a word of an exact length.
type Suggester interface {
	SuggestWordOfLength(ctx context.Context, n int) (string, error)
}

// State is one user's session: the fixed target, the monotonically growing
// set of guessed letters, and the remaining lives.
type State struct {
	Target  string
	Guessed map[byte]struct{}
	Lives   int
}

// GameKey implements session.Session.
func (*State) GameKey() string { return GameKey }

// Game implements the hangman game.
type Game struct {
	pools     *words.Pools
	sessions  *session.Manager
	suggester Suggester
}

// New creates the hangman game. suggester may be nil, in which case the
// local pool is used unconditionally.
func New(pools *words.Pools, sessions *session.Manager, suggester Suggester) *Game {
	return &Game{
		pools:     pools,
		sessions:  sessions,
		suggester: suggester,
	}
}

// Key implements game.Game.
func (g *Game) Key() string { return GameKey }

// Name implements game.Game.
func (g *Game) Name() string { return "Hangman" }

// Start picks a target word, creates the session, and sends the empty board.
func (g *Game) Start(ctx context.Context, userID int64, m game.Messenger) error {
	target := g.pickTarget(ctx)
	g.sessions.Put(userID, &State{
		Target:  target,
		Guessed: make(map[byte]struct{}),
		Lives:   Lives,
	})

	log.Info().Int64("user_id", userID).Str("word", target).Msg("Starting Hangman game")

	msg := fmt.Sprintf("Happy Birthday! 🎉 Let's play a game of Hangman!\n\n"+
		"I'm thinking of a %d-letter word.\n\n%s\n\n"+
		"You have %d lives. Guess a letter!", len(target), renderBoard(target, nil), Lives)
	return m.SendMessage(ctx, userID, msg)
}

// pickTarget chooses a word length uniformly from [minWordLen, maxWordLen]
// and prefers the external suggester for a word of exactly that length. A
// rejected or failed suggestion falls back to the local pool, which broadens
// its search if it has no word of the requested length.
func (g *Game) pickTarget(ctx context.Context) string {
	n := minWordLen + rand.Intn(maxWordLen-minWordLen+1)

	if g.suggester != nil {
		w, err := g.suggester.SuggestWordOfLength(ctx, n)
		if err == nil {
			w = strings.ToUpper(strings.TrimSpace(w))
			if len(w) == n && isAlpha(w) {
				return w
			}
			log.Warn().Str("word", w).Int("want_len", n).Msg("Suggested hangman word rejected, using local pool")
		} else {
			log.Warn().Err(err).Msg("Hangman word suggestion failed, using local pool")
		}
	}
	return g.pools.HangmanWord(n, minWordLen, maxWordLen)
}

// Handle applies one guess: either the full word or a single letter.
// Malformed input and repeated letters do not cost a life.
func (g *Game) Handle(ctx context.Context, userID int64, input string, sess session.Session, m game.Messenger) error {
	st, ok := sess.(*State)
	if !ok {
		return fmt.Errorf("hangman: unexpected session state %T", sess)
	}

	// Full-word guess wins immediately; a wrong full word falls through to
	// the single-letter validation below.
	if len(input) == len(st.Target) && input == st.Target {
		g.sessions.Delete(userID)
		return m.SendMessage(ctx, userID, fmt.Sprintf("You got it! The word was %s. You win! 🏆", st.Target))
	}

	if len(input) != 1 || !isAlpha(input) {
		return m.SendMessage(ctx, userID, "Please guess a single letter or the full word.")
	}

	letter := input[0]
	if _, already := st.Guessed[letter]; already {
		return m.SendMessage(ctx, userID, fmt.Sprintf("You already guessed '%c'. Try again!", letter))
	}

	st.Guessed[letter] = struct{}{}
	var feedback string
	if strings.IndexByte(st.Target, letter) < 0 {
		st.Lives--
		feedback = fmt.Sprintf("Sorry, no '%c'. You have %d lives left.", letter, st.Lives)
	} else {
		feedback = fmt.Sprintf("Good guess! '%c' is in the word.", letter)
	}

	board := renderBoard(st.Target, st.Guessed)

	if revealed(st.Target, st.Guessed) {
		g.sessions.Delete(userID)
		return m.SendMessage(ctx, userID, fmt.Sprintf("%s\n\n%s\n\nYou figured it out! The word was %s. You win! 🏆", board, feedback, st.Target))
	}
	if st.Lives <= 0 {
		g.sessions.Delete(userID)
		return m.SendMessage(ctx, userID, fmt.Sprintf("%s\n\n%s\n\nOh no, you're out of lives! The word was %s. Better luck next time!", board, feedback, st.Target))
	}

	return m.SendMessage(ctx, userID, fmt.Sprintf("%s\n\n%s\n\nGuessed letters: %s", board, feedback, guessedList(st.Guessed)))
}

// renderBoard shows revealed letters in place and underscores elsewhere.
func renderBoard(target string, guessed map[byte]struct{}) string {
	parts := make([]string, 0, len(target))
	for i := 0; i < len(target); i++ {
		if _, ok := guessed[target[i]]; ok {
			parts = append(parts, string(target[i]))
		} else {
			parts = append(parts, "_")
		}
	}
	return strings.Join(parts, " ")
}

// revealed reports whether every letter of the target has been guessed.
func revealed(target string, guessed map[byte]struct{}) bool {
	for i := 0; i < len(target); i++ {
		if _, ok := guessed[target[i]]; !ok {
			return false
		}
	}
	return true
}

// guessedList renders the guessed letters sorted and comma-separated.
func guessedList(guessed map[byte]struct{}) string {
	letters := make([]string, 0, len(guessed))
	for b := range guessed {
		letters = append(letters, string(b))
	}
	sort.Strings(letters)
	return strings.Join(letters, ", ")
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
