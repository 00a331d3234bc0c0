// Package service provides business logic implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"celebration-bot/internal/game"
	"celebration-bot/internal/model"
	"celebration-bot/internal/repository"
	"celebration-bot/internal/scheduler"
)

// Scheduler job names.
const (
	JobBirthdayCheck    = "daily_birthday_check"
	JobAnniversaryCheck = "daily_anniversary_check"
)

// MessageGenerator writes the celebratory announcement text. Failures fall
// back to a static message.
type MessageGenerator interface {
	BirthdayMessage(ctx context.Context, name string) (string, error)
	AnniversaryMessage(ctx context.Context, name string, years int) (string, error)
}

// Announcer posts a message to a channel chat.
type Announcer interface {
	SendToChat(ctx context.Context, chatID int64, text string) error
}

// NameLookup resolves a user ID to a display name.
type NameLookup interface {
	DisplayName(ctx context.Context, userID int64) (string, error)
}

// GameStarter launches a random birthday game in a user's DM thread.
type GameStarter interface {
	StartRandom(ctx context.Context, userID int64, m game.Messenger) error
}

// CelebrationService runs the daily birthday and anniversary announcements
// and keeps the scheduler in sync with the configured announcement times.
type CelebrationService struct {
	birthdays     *repository.BirthdayRepository
	anniversaries *repository.AnniversaryRepository
	settings      *repository.SettingsRepository
	generator     MessageGenerator
	names         NameLookup
	announcer     Announcer
	starter       GameStarter
	messenger     game.Messenger
	now           func() time.Time
}

// NewCelebrationService creates a new CelebrationService.
func NewCelebrationService(
	birthdays *repository.BirthdayRepository,
	anniversaries *repository.AnniversaryRepository,
	settings *repository.SettingsRepository,
	generator MessageGenerator,
	names NameLookup,
	announcer Announcer,
	starter GameStarter,
	messenger game.Messenger,
) *CelebrationService {
	return &CelebrationService{
		birthdays:     birthdays,
		anniversaries: anniversaries,
		settings:      settings,
		generator:     generator,
		names:         names,
		announcer:     announcer,
		starter:       starter,
		messenger:     messenger,
		now:           time.Now,
	}
}

// AnnounceBirthdays posts an announcement for every user whose birthday is
// today and, if games are enabled, starts a random game in their DM. One
// user's failure does not stop the others.
func (s *CelebrationService) AnnounceBirthdays(ctx context.Context) error {
	settings, err := s.settings.GetAnnounce(ctx, model.KindBirthday)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Debug().Msg("Birthday announcements not configured, skipping check")
			return nil
		}
		return err
	}

	today := s.now().Format("01-02")
	userIDs, err := s.birthdays.ListByMonthDay(ctx, today)
	if err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}

	gamesEnabled, err := s.settings.GamesEnabled(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read game settings, treating games as disabled")
		gamesEnabled = false
	}

	for _, userID := range userIDs {
		msg := s.GenerateBirthdayMessage(ctx, userID)
		if err := s.announcer.SendToChat(ctx, settings.ChatID, msg); err != nil {
			log.Error().Err(err).Int64("user_id", userID).Msg("Failed to post birthday announcement")
			continue
		}
		if gamesEnabled {
			if err := s.starter.StartRandom(ctx, userID, s.messenger); err != nil {
				log.Error().Err(err).Int64("user_id", userID).Msg("Failed to start birthday game")
			}
		}
	}
	return nil
}

// AnnounceAnniversaries posts an announcement for every user whose work
// anniversary is today. First-day users (zero full years) are skipped.
func (s *CelebrationService) AnnounceAnniversaries(ctx context.Context) error {
	settings, err := s.settings.GetAnnounce(ctx, model.KindAnniversary)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Debug().Msg("Anniversary announcements not configured, skipping check")
			return nil
		}
		return err
	}

	now := s.now()
	anniversaries, err := s.anniversaries.ListByMonthDay(ctx, int(now.Month()), now.Day())
	if err != nil {
		return err
	}

	for _, a := range anniversaries {
		years := YearsBetween(a.StartDate, now)
		if years <= 0 {
			continue
		}
		msg := s.GenerateAnniversaryMessage(ctx, a.UserID, years)
		if err := s.announcer.SendToChat(ctx, settings.ChatID, msg); err != nil {
			log.Error().Err(err).Int64("user_id", a.UserID).Msg("Failed to post anniversary announcement")
		}
	}
	return nil
}

// GenerateBirthdayMessage produces the announcement text for one user,
// falling back to a static greeting if generation fails.
func (s *CelebrationService) GenerateBirthdayMessage(ctx context.Context, userID int64) string {
	name := s.displayName(ctx, userID)
	msg, err := s.generator.BirthdayMessage(ctx, name)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("Birthday message generation failed, using fallback")
		return fmt.Sprintf("Happy Birthday, %s! 🎉", name)
	}
	return msg
}

// GenerateAnniversaryMessage produces the announcement text for one user's
// anniversary, falling back to a static greeting if generation fails.
func (s *CelebrationService) GenerateAnniversaryMessage(ctx context.Context, userID int64, years int) string {
	name := s.displayName(ctx, userID)
	msg, err := s.generator.AnniversaryMessage(ctx, name, years)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("Anniversary message generation failed, using fallback")
		return fmt.Sprintf("Happy %d-year anniversary, %s! 🎉", years, name)
	}
	return msg
}

// Reschedule aligns the scheduler with the currently configured announcement
// times. Unconfigured kinds have their job removed.
func (s *CelebrationService) Reschedule(ctx context.Context, sched *scheduler.Scheduler) error {
	type kindJob struct {
		kind model.AnnounceKind
		name string
		fn   scheduler.Job
	}
	jobs := []kindJob{
		{model.KindBirthday, JobBirthdayCheck, func(ctx context.Context) {
			if err := s.AnnounceBirthdays(ctx); err != nil {
				log.Error().Err(err).Msg("Daily birthday check failed")
			}
		}},
		{model.KindAnniversary, JobAnniversaryCheck, func(ctx context.Context) {
			if err := s.AnnounceAnniversaries(ctx); err != nil {
				log.Error().Err(err).Msg("Daily anniversary check failed")
			}
		}},
	}

	for _, j := range jobs {
		settings, err := s.settings.GetAnnounce(ctx, j.kind)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				sched.Remove(j.name)
				continue
			}
			return err
		}
		if err := sched.Schedule(j.name, settings.AnnounceTime, j.fn); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", j.name, err)
		}
	}
	return nil
}

func (s *CelebrationService) displayName(ctx context.Context, userID int64) string {
	name, err := s.names.DisplayName(ctx, userID)
	if err != nil || name == "" {
		return "our teammate"
	}
	return name
}

// YearsBetween returns the number of full years elapsed between start and
// now.
func YearsBetween(start, now time.Time) int {
	years := now.Year() - start.Year()
	anniversary := start.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
