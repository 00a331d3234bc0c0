package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(&stubGame{key: "wordle", name: "Wordle"}))
	require.NoError(t, r.Register(&stubGame{key: "hangman", name: "Hangman"}))

	g, ok := r.Get("wordle")
	require.True(t, ok)
	assert.Equal(t, "Wordle", g.Name())

	_, ok = r.Get("chess")
	assert.False(t, ok)

	assert.Equal(t, 2, r.Count())
	assert.Equal(t, []string{"hangman", "wordle"}, r.Keys())
}

func TestRegistry_RegisterInvalid(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.Register(nil))
	assert.Error(t, r.Register(&stubGame{key: "", name: "Anonymous"}))
}

func TestRegistry_DuplicateKeyReplaces(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&stubGame{key: "quiz", name: "First"}))
	require.NoError(t, r.Register(&stubGame{key: "quiz", name: "Second"}))

	g, ok := r.Get("quiz")
	require.True(t, ok)
	assert.Equal(t, "Second", g.Name())
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_List(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&stubGame{key: "b", name: "B"}))
	require.NoError(t, r.Register(&stubGame{key: "a", name: "A"}))

	games := r.List()
	require.Len(t, games, 2)
	assert.Equal(t, "a", games[0].Key())
	assert.Equal(t, "b", games[1].Key())
}

func TestRegistry_Random(t *testing.T) {
	empty := NewRegistry()
	_, ok := empty.Random()
	assert.False(t, ok)

	r := NewRegistry()
	require.NoError(t, r.Register(&stubGame{key: "quiz", name: "Quiz"}))
	for i := 0; i < 10; i++ {
		g, ok := r.Random()
		require.True(t, ok)
		assert.Equal(t, "quiz", g.Key())
	}
}
