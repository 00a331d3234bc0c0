package trivia

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"celebration-bot/internal/opentdb"
	"celebration-bot/internal/session"
)

type fakeMessenger struct {
	sent []string
}

func (f *fakeMessenger) SendMessage(_ context.Context, _ int64, text string) error {
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeMessenger) last() string {
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1]
}

// fakeFetcher serves a canned question batch.
type fakeFetcher struct {
	questions []opentdb.Question
	err       error
}

func (f *fakeFetcher) FetchQuestions(_ context.Context, count int) ([]opentdb.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	if count > len(f.questions) {
		count = len(f.questions)
	}
	return f.questions[:count], nil
}

func questionBatch(n int) []opentdb.Question {
	qs := make([]opentdb.Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, opentdb.Question{
			Category:         "General Knowledge",
			Question:         fmt.Sprintf("Question number %d?", i+1),
			CorrectAnswer:    fmt.Sprintf("Right %d", i+1),
			IncorrectAnswers: []string{"Wrong A", "Wrong B", "Wrong C"},
		})
	}
	return qs
}

// testRounds builds a deterministic two-round state without shuffling.
func testRounds() []Round {
	return []Round{
		{
			Category:     "Science",
			Question:     "What gas do plants absorb?",
			Options:      []string{"Oxygen", "Carbon Dioxide", "Nitrogen", "Helium"},
			CorrectIndex: 1,
		},
		{
			Category:     "Geography",
			Question:     "Capital of France?",
			Options:      []string{"Paris", "Lyon", "Nice", "Lille"},
			CorrectIndex: 0,
		},
	}
}

// TestParseAnswer covers every accepted input form.
func TestParseAnswer(t *testing.T) {
	options := []string{"Oxygen", "Carbon Dioxide", "Nitrogen", "Helium"}

	tests := []struct {
		name   string
		input  string
		want   int
		wantOK bool
	}{
		{"uppercase letter", "B", 1, true},
		{"lowercase letter", "d", 3, true},
		{"digit", "1", 0, true},
		{"last digit", "4", 3, true},
		{"literal text", "Nitrogen", 2, true},
		{"literal text case-insensitive", "CARBON DIOXIDE", 1, true},
		{"literal text with spaces", "  helium  ", 3, true},
		{"letter out of range", "E", 0, false},
		{"digit out of range", "5", 0, false},
		{"zero", "0", 0, false},
		{"unrelated text", "maybe B", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAnswer(tt.input, options)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// TestParseAnswer_LiteralBeatsPosition pins the precedence rule: when the
// options themselves are single characters, the input matches the option by
// value rather than by list position.
func TestParseAnswer_LiteralBeatsPosition(t *testing.T) {
	numeric := []string{"2", "4", "6", "8"}

	got, ok := ParseAnswer("4", numeric)
	require.True(t, ok)
	assert.Equal(t, 1, got, `"4" names the second option, not the fourth`)

	got, ok = ParseAnswer("2", numeric)
	require.True(t, ok)
	assert.Equal(t, 0, got)

	// Positional forms still work when no option reads that way.
	got, ok = ParseAnswer("1", numeric)
	require.True(t, ok)
	assert.Equal(t, 0, got)

	lettered := []string{"A", "C", "B", "D"}
	got, ok = ParseAnswer("b", lettered)
	require.True(t, ok)
	assert.Equal(t, 2, got, `"b" names the third option, not the second`)
}

// TestGame_Start_FetchFailure verifies no session is created when questions
// cannot be fetched.
func TestGame_Start_FetchFailure(t *testing.T) {
	ctx := context.Background()
	const userID = int64(301)

	tests := []struct {
		name    string
		fetcher Fetcher
	}{
		{"fetch error", &fakeFetcher{err: fmt.Errorf("service unavailable")}},
		{"short batch", &fakeFetcher{questions: questionBatch(2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := session.NewManager()
			g := New(sessions, tt.fetcher, DefaultRounds)
			m := &fakeMessenger{}

			require.NoError(t, g.Start(ctx, userID, m))
			assert.Contains(t, m.last(), "couldn't get trivia questions")

			_, active := sessions.Get(userID)
			assert.False(t, active, "failed start must not leave a session")
		})
	}
}

// TestGame_Start_Success verifies a full batch creates a session and asks
// the first question.
func TestGame_Start_Success(t *testing.T) {
	ctx := context.Background()
	const userID = int64(302)

	sessions := session.NewManager()
	g := New(sessions, &fakeFetcher{questions: questionBatch(5)}, 5)
	m := &fakeMessenger{}

	require.NoError(t, g.Start(ctx, userID, m))
	assert.Contains(t, m.last(), "Question 1 of 5")

	sess, ok := sessions.Get(userID)
	require.True(t, ok)
	st := sess.(*State)
	assert.Len(t, st.Rounds, 5)
	assert.Zero(t, st.Index)
	assert.Zero(t, st.Score)

	// Every round holds all four options, including the correct one at the
	// recorded index.
	for i, r := range st.Rounds {
		assert.Len(t, r.Options, 4)
		assert.Equal(t, fmt.Sprintf("Right %d", i+1), r.Options[r.CorrectIndex])
	}
}

// TestGame_Handle_FullQuiz plays a two-round quiz, one right and one wrong
// answer, and checks progression and the final score.
func TestGame_Handle_FullQuiz(t *testing.T) {
	ctx := context.Background()
	const userID = int64(303)

	sessions := session.NewManager()
	g := New(sessions, &fakeFetcher{}, DefaultRounds)
	m := &fakeMessenger{}

	st := &State{Rounds: testRounds()}
	sessions.Put(userID, st)

	// Right answer to round 1.
	require.NoError(t, g.Handle(ctx, userID, "B", st, m))
	assert.Contains(t, m.last(), "That's correct!")
	assert.Contains(t, m.last(), "Question 2 of 2")
	assert.Equal(t, 1, st.Score)
	assert.Equal(t, 1, st.Index)

	// Wrong answer to round 2 ends the quiz.
	require.NoError(t, g.Handle(ctx, userID, "Lyon", st, m))
	assert.Contains(t, m.last(), "The correct answer was Paris")
	assert.Contains(t, m.last(), "You scored 1 out of 2")

	_, active := sessions.Get(userID)
	assert.False(t, active, "session should be cleared at quiz end")
}

// TestGame_Handle_UnrecognizedAnswer verifies unparseable input leaves the
// round open.
func TestGame_Handle_UnrecognizedAnswer(t *testing.T) {
	ctx := context.Background()
	const userID = int64(304)

	sessions := session.NewManager()
	g := New(sessions, &fakeFetcher{}, DefaultRounds)
	m := &fakeMessenger{}

	st := &State{Rounds: testRounds()}
	sessions.Put(userID, st)

	require.NoError(t, g.Handle(ctx, userID, "WHAT?", st, m))
	assert.Contains(t, m.last(), "I didn't catch that")
	assert.Zero(t, st.Index, "unrecognized input must not advance the round")
	assert.Zero(t, st.Score)
}

// TestShuffleRound verifies the shuffle keeps all options and tracks the
// correct answer.
func TestShuffleRound(t *testing.T) {
	q := opentdb.Question{
		Category:         "Science",
		Question:         "What gas do plants absorb?",
		CorrectAnswer:    "Carbon Dioxide",
		IncorrectAnswers: []string{"Oxygen", "Nitrogen", "Helium"},
	}

	for i := 0; i < 50; i++ {
		r := shuffleRound(q)
		require.Len(t, r.Options, 4)
		assert.Equal(t, "Carbon Dioxide", r.Options[r.CorrectIndex])
		assert.ElementsMatch(t, []string{"Oxygen", "Nitrogen", "Helium", "Carbon Dioxide"}, r.Options)
	}
}
