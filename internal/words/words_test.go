package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeList(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestLoad_EmbeddedDefaults(t *testing.T) {
	pools, err := Load(Config{})
	require.NoError(t, err)

	assert.NotEmpty(t, pools.Answers())
	assert.True(t, pools.IsValidGuess("CRANE"), "answers belong to the guess set")
	assert.True(t, pools.IsValidGuess("crate"), "lookup is case-insensitive")
	assert.False(t, pools.IsValidGuess("ZZZZZ"))
}

func TestLoad_FromFiles(t *testing.T) {
	answers := writeList(t, "crane", "BRAVE", "", "  allow  ")
	guesses := writeList(t, "crate")

	pools, err := Load(Config{AnswersFile: answers, GuessesFile: guesses})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"CRANE", "BRAVE", "ALLOW"}, pools.Answers())
	assert.True(t, pools.IsValidGuess("CRATE"))
	assert.True(t, pools.IsValidGuess("BRAVE"))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(Config{AnswersFile: filepath.Join(t.TempDir(), "missing.txt")})
	assert.Error(t, err)

	empty := writeList(t, "")
	_, err = Load(Config{AnswersFile: empty})
	assert.Error(t, err, "an empty answers list is unusable")

	// A list with no usable 5-letter word is as bad as an empty one.
	junk := writeList(t, "cat", "cr4ne", "crimson")
	_, err = Load(Config{AnswersFile: junk})
	assert.Error(t, err)
}

// TestLoad_FiltersMalformedWords verifies entries that do not fit their game
// are dropped at load time instead of becoming unplayable targets.
func TestLoad_FiltersMalformedWords(t *testing.T) {
	answers := writeList(t, "cat", "crane", "cr4ne", "it's", "crimson")
	hangman := writeList(t, "bee", "crane", "daydreams", "crimson", "cr4ne")

	pools, err := Load(Config{AnswersFile: answers, HangmanFile: hangman})
	require.NoError(t, err)

	assert.Equal(t, []string{"CRANE"}, pools.Answers())
	assert.False(t, pools.IsValidGuess("CAT"))
	assert.False(t, pools.IsValidGuess("CRIMSON"))

	// Hangman keeps only 5-8 letter A-Z words.
	assert.Equal(t, []int{5, 7}, pools.HangmanLengths(1, 20))
}

func TestPools_AddGuess(t *testing.T) {
	guesses := writeList(t, "crate")
	pools, err := Load(Config{GuessesFile: guesses})
	require.NoError(t, err)

	require.False(t, pools.IsValidGuess("QAJAQ"))
	require.NoError(t, pools.AddGuess("qajaq"))
	assert.True(t, pools.IsValidGuess("QAJAQ"))

	// A second add is a no-op and must not append again.
	require.NoError(t, pools.AddGuess("QAJAQ"))

	data, err := os.ReadFile(guesses)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "qajaq"), "idempotent add must write the file once")
}

func TestPools_AddGuess_NoBackingFile(t *testing.T) {
	pools, err := Load(Config{})
	require.NoError(t, err)

	require.NoError(t, pools.AddGuess("QAJAQ"))
	assert.True(t, pools.IsValidGuess("QAJAQ"))
	require.NoError(t, pools.AddGuess(""))
}

func TestPools_AddGuess_RejectsMalformed(t *testing.T) {
	pools, err := Load(Config{})
	require.NoError(t, err)

	for _, w := range []string{"cat", "crimson", "cr4ne", "it's"} {
		assert.Error(t, pools.AddGuess(w), "word %q must not enter the guess set", w)
	}
}

func TestPools_DailyAnswer(t *testing.T) {
	pools, err := Load(Config{})
	require.NoError(t, err)

	day := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	first := pools.DailyAnswer(day)

	// Same calendar day, any time of day: same word.
	later := time.Date(2026, time.March, 14, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, first, pools.DailyAnswer(later))

	assert.Contains(t, pools.Answers(), first)
}

func TestPools_HangmanWord(t *testing.T) {
	hangman := writeList(t, "crane", "crimson")
	pools, err := Load(Config{HangmanFile: hangman})
	require.NoError(t, err)

	// Exact length available.
	assert.Equal(t, "CRANE", pools.HangmanWord(5, 5, 8))
	assert.Equal(t, "CRIMSON", pools.HangmanWord(7, 5, 8))

	// No 6-letter word: broadened to the range.
	w := pools.HangmanWord(6, 5, 8)
	assert.Contains(t, []string{"CRANE", "CRIMSON"}, w)

	// Nothing in range at all: any word.
	w = pools.HangmanWord(10, 10, 12)
	assert.Contains(t, []string{"CRANE", "CRIMSON"}, w)
}

func TestPools_HangmanLengths(t *testing.T) {
	hangman := writeList(t, "crane", "crimson", "braves", "mountain")
	pools, err := Load(Config{HangmanFile: hangman})
	require.NoError(t, err)

	assert.Equal(t, []int{5, 6, 7, 8}, pools.HangmanLengths(5, 8))
	assert.Equal(t, []int{6, 7}, pools.HangmanLengths(6, 7))
}
