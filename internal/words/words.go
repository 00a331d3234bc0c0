// Package words manages the flat word lists used by the word games.
// Lists are newline-delimited, one word per line, case-insensitive; they are
// loaded once at startup and the valid-guess set can grow at runtime when an
// external validation accepts a new word.
package words

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	_ "embed"
)

//go:embed default_answers.txt
var embeddedAnswers string

//go:embed default_guesses.txt
var embeddedGuesses string

//go:embed default_hangman.txt
var embeddedHangman string

const (
	answerLen     = 5
	hangmanMinLen = 5
	hangmanMaxLen = 8
)

// Pools holds the word lists for the word games. Answers is the pool Wordle
// draws targets from; the guess set always contains the answers. The hangman
// pool is a separate mixed-length list.
type Pools struct {
	mu          sync.RWMutex
	answers     []string
	guesses     map[string]struct{}
	hangman     []string
	guessesPath string // file to append newly validated words to, may be empty
}

// Config points Pools at the backing word list files. Any empty path falls
// back to the embedded default list.
type Config struct {
	AnswersFile string
	GuessesFile string
	HangmanFile string
}

// Load reads the word lists and builds the lookup sets. Entries that do not
// fit their game are dropped: answers and guesses must be exactly 5 letters
// A-Z, hangman words 5 to 8 letters A-Z. A target outside those shapes would
// break the guess feedback.
func Load(cfg Config) (*Pools, error) {
	answers, err := loadList(cfg.AnswersFile, embeddedAnswers, answerLen, answerLen)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers list: %w", err)
	}
	if len(answers) == 0 {
		return nil, fmt.Errorf("answers list has no valid %d-letter words", answerLen)
	}

	guesses, err := loadList(cfg.GuessesFile, embeddedGuesses, answerLen, answerLen)
	if err != nil {
		return nil, fmt.Errorf("failed to load guesses list: %w", err)
	}

	hangman, err := loadList(cfg.HangmanFile, embeddedHangman, hangmanMinLen, hangmanMaxLen)
	if err != nil {
		return nil, fmt.Errorf("failed to load hangman list: %w", err)
	}
	if len(hangman) == 0 {
		hangman = answers
	}

	p := &Pools{
		answers:     answers,
		guesses:     make(map[string]struct{}, len(guesses)+len(answers)),
		hangman:     hangman,
		guessesPath: cfg.GuessesFile,
	}
	for _, w := range guesses {
		p.guesses[w] = struct{}{}
	}
	// The guess set always includes the answers.
	for _, w := range answers {
		p.guesses[w] = struct{}{}
	}
	return p, nil
}

// loadList reads a newline-delimited word list, normalizing to uppercase and
// skipping blank lines and words outside the accepted shape. If path is empty
// the embedded fallback is used.
func loadList(path, fallback string, minLen, maxLen int) ([]string, error) {
	var r *strings.Reader
	if path == "" {
		r = strings.NewReader(fallback)
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		r = strings.NewReader(string(data))
	}

	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if w == "" {
			continue
		}
		if !isWord(w, minLen, maxLen) {
			log.Warn().Str("word", w).Str("file", path).Msg("Skipping malformed word list entry")
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// isWord reports whether w consists only of ASCII letters A-Z with a length
// in [minLen, maxLen].
func isWord(w string, minLen, maxLen int) bool {
	if len(w) < minLen || len(w) > maxLen {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return false
		}
	}
	return true
}

// Answers returns a copy of the answer pool.
func (p *Pools) Answers() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, len(p.answers))
	copy(out, p.answers)
	return out
}

// IsValidGuess reports whether the word is in the valid-guess set.
func (p *Pools) IsValidGuess(word string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.guesses[strings.ToUpper(word)]
	return ok
}

// AddGuess inserts a newly validated word into the guess set and appends it
// to the backing file so it survives restarts. The insert is idempotent:
// adding a word that is already present is a no-op and does not touch the
// file.
func (p *Pools) AddGuess(word string) error {
	word = strings.ToUpper(strings.TrimSpace(word))
	if word == "" {
		return nil
	}
	if !isWord(word, answerLen, answerLen) {
		return fmt.Errorf("invalid guess word %q", word)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.guesses[word]; ok {
		return nil
	}
	p.guesses[word] = struct{}{}

	if p.guessesPath == "" {
		return nil
	}
	f, err := os.OpenFile(p.guessesPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open guesses file: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "%s\n", strings.ToLower(word)); err != nil {
		return fmt.Errorf("failed to append to guesses file: %w", err)
	}
	return nil
}

// RandomAnswer picks a uniformly random answer.
func (p *Pools) RandomAnswer() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.answers[rand.Intn(len(p.answers))]
}

// DailyAnswer picks the deterministic fallback answer for the given day. The
// choice is seeded by the calendar date so every user sees the same fallback
// word on a given day, across processes.
func (p *Pools) DailyAnswer(day time.Time) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	seed := int64(day.Year())*10000 + int64(day.YearDay())
	rng := rand.New(rand.NewSource(seed))
	return p.answers[rng.Intn(len(p.answers))]
}

// HangmanWord picks a random word of exactly n letters from the hangman pool.
// If no word of that length exists the pool is broadened to lengths within
// [minLen, maxLen], and as a last resort any word is returned.
func (p *Pools) HangmanWord(n, minLen, maxLen int) string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	exact := filterLen(p.hangman, n, n)
	if len(exact) > 0 {
		return exact[rand.Intn(len(exact))]
	}
	ranged := filterLen(p.hangman, minLen, maxLen)
	if len(ranged) > 0 {
		return ranged[rand.Intn(len(ranged))]
	}
	return p.hangman[rand.Intn(len(p.hangman))]
}

// HangmanLengths returns the sorted set of word lengths available in the
// hangman pool, clamped to [minLen, maxLen].
func (p *Pools) HangmanLengths(minLen, maxLen int) []int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	seen := make(map[int]struct{})
	for _, w := range p.hangman {
		if n := len(w); n >= minLen && n <= maxLen {
			seen[n] = struct{}{}
		}
	}
	lengths := make([]int, 0, len(seen))
	for n := range seen {
		lengths = append(lengths, n)
	}
	sort.Ints(lengths)
	return lengths
}

func filterLen(words []string, minLen, maxLen int) []string {
	var out []string
	for _, w := range words {
		if len(w) >= minLen && len(w) <= maxLen {
			out = append(out, w)
		}
	}
	return out
}
