package handler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"celebration-bot/internal/model"
	"celebration-bot/internal/repository"
	"celebration-bot/internal/scheduler"
	"celebration-bot/internal/service"
)

// SettingsHandler handles announcement configuration: which chat
// announcements are posted to, at what time, and whether birthday games are
// enabled.
type SettingsHandler struct {
	settings    *repository.SettingsRepository
	celebration *service.CelebrationService
	sched       *scheduler.Scheduler
	defaultTime string
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(
	settings *repository.SettingsRepository,
	celebration *service.CelebrationService,
	sched *scheduler.Scheduler,
	defaultTime string,
) *SettingsHandler {
	return &SettingsHandler{
		settings:    settings,
		celebration: celebration,
		sched:       sched,
		defaultTime: defaultTime,
	}
}

// HandleSetupBirthdays handles /setup_birthdays [HH:MM]. Announcements are
// posted to the chat the command is issued in.
func (h *SettingsHandler) HandleSetupBirthdays(c tele.Context) error {
	return h.setup(c, model.KindBirthday)
}

// HandleSetupAnniversaries handles /setup_anniversaries [HH:MM].
func (h *SettingsHandler) HandleSetupAnniversaries(c tele.Context) error {
	return h.setup(c, model.KindAnniversary)
}

func (h *SettingsHandler) setup(c tele.Context, kind model.AnnounceKind) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}

	at := h.defaultTime
	if args := c.Args(); len(args) > 0 {
		at = args[0]
	}
	if _, _, err := scheduler.ParseTime(at); err != nil {
		return c.Reply("That time is invalid. Use HH:MM, e.g. 09:00.")
	}

	ctx := context.Background()
	if err := h.settings.SetAnnounce(ctx, kind, chat.ID, at); err != nil {
		return c.Reply("Failed to save the settings. Please try again.")
	}
	if err := h.celebration.Reschedule(ctx, h.sched); err != nil {
		log.Error().Err(err).Msg("Failed to reschedule announcement jobs")
	}
	return c.Reply(fmt.Sprintf("All set! I'll post %s announcements here every day at %s.", kind, at))
}

// HandleSetGame handles /set_game <on|off>.
func (h *SettingsHandler) HandleSetGame(c tele.Context) error {
	args := c.Args()
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		return c.Reply("Usage: /set_game <on|off>")
	}
	enabled := args[0] == "on"

	if err := h.settings.SetGamesEnabled(context.Background(), enabled); err != nil {
		return c.Reply("Failed to save the game settings. Please try again.")
	}
	if enabled {
		return c.Reply("Birthday games are now enabled! 🎮")
	}
	return c.Reply("Birthday games are now disabled.")
}

// HandleReset handles /reset_bot confirm: wipes all saved birthdays,
// anniversaries, and settings.
func (h *SettingsHandler) HandleReset(c tele.Context) error {
	args := c.Args()
	if len(args) != 1 || args[0] != "confirm" {
		return c.Reply("This deletes ALL saved birthdays, anniversaries, and settings permanently.\n" +
			"Run /reset_bot confirm if you're sure.")
	}

	ctx := context.Background()
	if err := h.settings.Reset(ctx); err != nil {
		return c.Reply("Failed to reset. Please try again.")
	}
	if err := h.celebration.Reschedule(ctx, h.sched); err != nil {
		log.Error().Err(err).Msg("Failed to reschedule announcement jobs after reset")
	}

	log.Info().Int64("user_id", c.Sender().ID).Msg("Bot data reset by admin")
	return c.Reply("The Celebration Bot has been fully reset.")
}
