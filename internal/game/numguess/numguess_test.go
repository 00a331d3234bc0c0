package numguess

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

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

// TestGame_Handle_Feedback checks the higher/lower hints and the win case.
func TestGame_Handle_Feedback(t *testing.T) {
	ctx := context.Background()
	const userID = int64(201)

	tests := []struct {
		name      string
		input     string
		wantReply string
		wantEnded bool
	}{
		{"too low", "25", "25 is too low. Guess higher!", false},
		{"too high", "75", "75 is too high. Guess lower!", false},
		{"exact", "50", "You got it! The number was 50", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := session.NewManager()
			g := New(sessions, DefaultLimit)
			m := &fakeMessenger{}

			st := &State{Target: 50, Limit: DefaultLimit}
			sessions.Put(userID, st)

			require.NoError(t, g.Handle(ctx, userID, tt.input, st, m))
			assert.Contains(t, m.last(), tt.wantReply)

			_, active := sessions.Get(userID)
			assert.Equal(t, !tt.wantEnded, active)
		})
	}
}

// TestGame_Handle_LossOnLastTry verifies the game ends exactly when the
// limit is reached, not before.
func TestGame_Handle_LossOnLastTry(t *testing.T) {
	ctx := context.Background()
	const userID = int64(202)

	sessions := session.NewManager()
	g := New(sessions, 6)
	m := &fakeMessenger{}

	st := &State{Target: 50, Limit: 6}
	sessions.Put(userID, st)

	for i := 1; i < 6; i++ {
		require.NoError(t, g.Handle(ctx, userID, "1", st, m))
		_, active := sessions.Get(userID)
		require.True(t, active, "game must still be running after try %d", i)
	}

	require.NoError(t, g.Handle(ctx, userID, "1", st, m))
	assert.Contains(t, m.last(), "out of guesses")
	assert.Contains(t, m.last(), "50")

	_, active := sessions.Get(userID)
	assert.False(t, active, "session should be cleared after the last try")
}

// TestGame_Handle_NonNumericInput verifies non-numbers never consume a try.
func TestGame_Handle_NonNumericInput(t *testing.T) {
	ctx := context.Background()
	const userID = int64(203)

	sessions := session.NewManager()
	g := New(sessions, DefaultLimit)
	m := &fakeMessenger{}

	st := &State{Target: 50, Limit: DefaultLimit}
	sessions.Put(userID, st)

	for _, input := range []string{"FIFTY", "", "12.5", "1 2"} {
		require.NoError(t, g.Handle(ctx, userID, input, st, m))
		assert.Contains(t, m.last(), "That's not a number!")
	}
	assert.Zero(t, st.Guesses, "non-numeric input must not consume a try")
}

// TestNew_LimitFallback verifies non-positive limits fall back to the
// default.
func TestNew_LimitFallback(t *testing.T) {
	sessions := session.NewManager()
	for _, limit := range []int{0, -3} {
		g := New(sessions, limit)
		assert.Equal(t, DefaultLimit, g.limit)
	}
}

// TestGame_Start_TargetInRange verifies every started game has a target
// within bounds and the configured limit.
func TestGame_Start_TargetInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		sessions := session.NewManager()
		limit := rapid.IntRange(1, 20).Draw(t, "limit")
		userID := rapid.Int64Range(1, 1_000_000).Draw(t, "userID")

		g := New(sessions, limit)
		m := &fakeMessenger{}
		if err := g.Start(ctx, userID, m); err != nil {
			t.Fatalf("Start failed: %v", err)
		}

		sess, ok := sessions.Get(userID)
		if !ok {
			t.Fatal("no session created")
		}
		st := sess.(*State)
		if st.Target < 1 || st.Target > 100 {
			t.Fatalf("target %d out of range", st.Target)
		}
		if st.Limit != limit {
			t.Fatalf("limit %d, want %d", st.Limit, limit)
		}
	})
}
