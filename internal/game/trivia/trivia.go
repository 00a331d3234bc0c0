// Package trivia implements the multi-round trivia birthday game: five
// multiple-choice questions fetched from an external trivia source, answered
// by letter, number, or the option text itself.
package trivia

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog/log"

	"celebration-bot/internal/game"
	"celebration-bot/internal/opentdb"
	"celebration-bot/internal/session"
)

const (
	// GameKey is the registry key for the trivia game.
	GameKey = "trivia"

	// DefaultRounds is the number of questions per game.
	DefaultRounds = 5

	optionCount = 4
)

// Fetcher retrieves a batch of multiple-choice questions.
type Fetcher interface {
	FetchQuestions(ctx context.Context, count int) ([]opentdb.Question, error)
}

// Round is one pre-shuffled question: four options with the index of the
// correct one recorded at shuffle time.
type Round struct {
	Category     string
	Question     string
	Options      []string
	CorrectIndex int
}

// State is one user's session: the full question batch, the cursor, and the
// running score.
type State struct {
	Rounds []Round
	Index  int
	Score  int
}

// GameKey implements session.Session.
func (*State) GameKey() string { return GameKey }

// Game implements the trivia game.
type Game struct {
	sessions *session.Manager
	fetcher  Fetcher
	rounds   int
}

// New creates the trivia game. A non-positive rounds count falls back to
// DefaultRounds.
func New(sessions *session.Manager, fetcher Fetcher, rounds int) *Game {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	return &Game{
		sessions: sessions,
		fetcher:  fetcher,
		rounds:   rounds,
	}
}

// Key implements game.Game.
func (g *Game) Key() string { return GameKey }

// Name implements game.Game.
func (g *Game) Name() string { return "Trivia" }

// Start fetches the question batch and sends the first question. If the
// fetch fails no session is created and the user gets an apology.
func (g *Game) Start(ctx context.Context, userID int64, m game.Messenger) error {
	questions, err := g.fetcher.FetchQuestions(ctx, g.rounds)
	if err != nil || len(questions) < g.rounds {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to fetch trivia questions")
		return m.SendMessage(ctx, userID, "Sorry, I couldn't get trivia questions right now. Maybe try again later!")
	}

	rounds := make([]Round, 0, g.rounds)
	for _, q := range questions[:g.rounds] {
		rounds = append(rounds, shuffleRound(q))
	}
	g.sessions.Put(userID, &State{Rounds: rounds})

	log.Info().Int64("user_id", userID).Int("rounds", len(rounds)).Msg("Starting Trivia game")

	msg := fmt.Sprintf("Happy Birthday! 🎉 Time for a little Trivia!\n\n"+
		"I'll ask you %d questions. Answer with the letter, the number, or the answer itself.\n\n%s",
		g.rounds, formatRound(rounds[0], 0, g.rounds))
	return m.SendMessage(ctx, userID, msg)
}

// Handle applies one answer. Input that doesn't resolve to one of the four
// options leaves the round unanswered.
func (g *Game) Handle(ctx context.Context, userID int64, input string, sess session.Session, m game.Messenger) error {
	st, ok := sess.(*State)
	if !ok {
		return fmt.Errorf("trivia: unexpected session state %T", sess)
	}

	round := st.Rounds[st.Index]
	idx, ok := ParseAnswer(input, round.Options)
	if !ok {
		return m.SendMessage(ctx, userID, "I didn't catch that. Answer with A-D, 1-4, or the answer text.")
	}

	var verdict string
	if idx == round.CorrectIndex {
		st.Score++
		verdict = fmt.Sprintf("That's correct! 🌟 The answer was %s.", round.Options[round.CorrectIndex])
	} else {
		verdict = fmt.Sprintf("Sorry, that's not right. The correct answer was %s.", round.Options[round.CorrectIndex])
	}

	st.Index++
	if st.Index >= len(st.Rounds) {
		g.sessions.Delete(userID)
		return m.SendMessage(ctx, userID, fmt.Sprintf("%s\n\nThat's the end of the quiz! You scored %d out of %d. 🎉", verdict, st.Score, len(st.Rounds)))
	}

	next := formatRound(st.Rounds[st.Index], st.Index, len(st.Rounds))
	return m.SendMessage(ctx, userID, fmt.Sprintf("%s\n\n%s", verdict, next))
}

// shuffleRound mixes the correct answer in with the incorrect ones and
// records where it landed.
func shuffleRound(q opentdb.Question) Round {
	options := make([]string, 0, optionCount)
	options = append(options, q.IncorrectAnswers...)
	options = append(options, q.CorrectAnswer)
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correct := 0
	for i, opt := range options {
		if opt == q.CorrectAnswer {
			correct = i
			break
		}
	}
	return Round{
		Category:     q.Category,
		Question:     q.Question,
		Options:      options,
		CorrectIndex: correct,
	}
}

// formatRound renders one question with lettered options.
func formatRound(r Round, index, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question %d of %d - %s\n%s\n", index+1, total, r.Category, r.Question)
	for i, opt := range r.Options {
		fmt.Fprintf(&b, "%c) %s\n", 'A'+i, opt)
	}
	b.WriteString("\nReply with your answer!")
	return b.String()
}

// ParseAnswer resolves user input to an option index. Accepted forms: the
// literal option text (case-insensitive exact match), a letter A-D, or a
// 1-based digit 1-4. Literal text is checked first so that an option that
// happens to read "4" is matched by value, not by position.
func ParseAnswer(input string, options []string) (int, bool) {
	input = strings.TrimSpace(input)
	for i, opt := range options {
		if strings.EqualFold(input, opt) {
			return i, true
		}
	}
	if len(input) == 1 {
		c := input[0]
		switch {
		case c >= 'A' && c < 'A'+byte(len(options)):
			return int(c - 'A'), true
		case c >= 'a' && c < 'a'+byte(len(options)):
			return int(c - 'a'), true
		case c >= '1' && c < '1'+byte(len(options)):
			return int(c - '1'), true
		}
	}
	return 0, false
}
