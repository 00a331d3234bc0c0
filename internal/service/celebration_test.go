package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeGenerator returns canned celebration text or a fixed error.
type fakeGenerator struct {
	err error
}

func (f *fakeGenerator) BirthdayMessage(_ context.Context, name string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("A splendid birthday to %s!", name), nil
}

func (f *fakeGenerator) AnniversaryMessage(_ context.Context, name string, years int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("%d wonderful years, %s!", years, name), nil
}

// fakeNames resolves every user to the same name, or fails.
type fakeNames struct {
	name string
	err  error
}

func (f *fakeNames) DisplayName(_ context.Context, _ int64) (string, error) {
	return f.name, f.err
}

func newMessageService(gen MessageGenerator, names NameLookup) *CelebrationService {
	return &CelebrationService{
		generator: gen,
		names:     names,
		now:       time.Now,
	}
}

func TestYearsBetween(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		now   time.Time
		want  int
	}{
		{
			"three full years",
			time.Date(2023, time.May, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC),
			3,
		},
		{
			"day before the anniversary",
			time.Date(2023, time.May, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.May, 9, 0, 0, 0, 0, time.UTC),
			2,
		},
		{
			"same day same year",
			time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC),
			0,
		},
		{
			"first anniversary",
			time.Date(2025, time.August, 30, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC),
			1,
		},
		{
			"leap-day start checked on march first",
			time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, YearsBetween(tt.start, tt.now))
		})
	}
}

func TestGenerateBirthdayMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("generated text is used", func(t *testing.T) {
		s := newMessageService(&fakeGenerator{}, &fakeNames{name: "Jamie"})
		assert.Equal(t, "A splendid birthday to Jamie!", s.GenerateBirthdayMessage(ctx, 1))
	})

	t.Run("generation failure falls back", func(t *testing.T) {
		s := newMessageService(&fakeGenerator{err: fmt.Errorf("quota exceeded")}, &fakeNames{name: "Jamie"})
		assert.Equal(t, "Happy Birthday, Jamie! 🎉", s.GenerateBirthdayMessage(ctx, 1))
	})

	t.Run("name lookup failure uses placeholder", func(t *testing.T) {
		s := newMessageService(&fakeGenerator{}, &fakeNames{err: fmt.Errorf("user not found")})
		assert.Equal(t, "A splendid birthday to our teammate!", s.GenerateBirthdayMessage(ctx, 1))
	})
}

func TestGenerateAnniversaryMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("generated text is used", func(t *testing.T) {
		s := newMessageService(&fakeGenerator{}, &fakeNames{name: "Jamie"})
		assert.Equal(t, "3 wonderful years, Jamie!", s.GenerateAnniversaryMessage(ctx, 1, 3))
	})

	t.Run("generation failure falls back", func(t *testing.T) {
		s := newMessageService(&fakeGenerator{err: fmt.Errorf("quota exceeded")}, &fakeNames{name: "Jamie"})
		assert.Equal(t, "Happy 3-year anniversary, Jamie! 🎉", s.GenerateAnniversaryMessage(ctx, 1, 3))
	})

	t.Run("empty name uses placeholder", func(t *testing.T) {
		s := newMessageService(&fakeGenerator{}, &fakeNames{name: ""})
		assert.Equal(t, "5 wonderful years, our teammate!", s.GenerateAnniversaryMessage(ctx, 1, 5))
	})
}
