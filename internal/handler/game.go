package handler

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"celebration-bot/internal/game"
	"celebration-bot/internal/service"
)

// GameHandler handles the admin game-test commands and announcement
// previews.
type GameHandler struct {
	registry    *game.Registry
	router      *game.Router
	celebration *service.CelebrationService
	messenger   game.Messenger
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(
	registry *game.Registry,
	router *game.Router,
	celebration *service.CelebrationService,
	messenger game.Messenger,
) *GameHandler {
	return &GameHandler{
		registry:    registry,
		router:      router,
		celebration: celebration,
		messenger:   messenger,
	}
}

// HandleTestGame handles /test_game [key]: starts the named game (or a
// random one) in the admin's own DM thread.
func (h *GameHandler) HandleTestGame(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	ctx := context.Background()

	args := c.Args()
	if len(args) == 0 {
		if err := h.router.StartRandom(ctx, sender.ID, h.messenger); err != nil {
			return c.Reply("Failed to start a game: " + err.Error())
		}
		return nil
	}

	key := strings.ToLower(args[0])
	if err := h.router.StartGame(ctx, key, sender.ID, h.messenger); err != nil {
		return c.Reply(fmt.Sprintf("Failed to start %q. Available games: %s",
			key, strings.Join(h.registry.Keys(), ", ")))
	}
	return nil
}

// HandleTestBirthday handles /test_birthday: sends the admin a preview of
// their generated birthday announcement.
func (h *GameHandler) HandleTestBirthday(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	msg := h.celebration.GenerateBirthdayMessage(context.Background(), sender.ID)
	return c.Reply(msg)
}

// HandleTestAnniversary handles /test_anniversary: sends the admin a preview
// of a generated 3-year anniversary announcement.
func (h *GameHandler) HandleTestAnniversary(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	msg := h.celebration.GenerateAnniversaryMessage(context.Background(), sender.ID, 3)
	return c.Reply(msg)
}

// HandleHelp handles /help.
func (h *GameHandler) HandleHelp(c tele.Context) error {
	var b strings.Builder
	b.WriteString("I announce birthdays and work anniversaries, and on your birthday I might challenge you to a game!\n\n")
	b.WriteString("Send me your birthday as a date (say, 27-08) in a private chat and I'll remember it.\n\n")
	b.WriteString("Admin commands:\n")
	for _, line := range []string{
		"/setup_birthdays [HH:MM] - post birthday announcements in this chat",
		"/setup_anniversaries [HH:MM] - post anniversary announcements in this chat",
		"/set_birthday <user_id> <date> - save a user's birthday",
		"/set_anniversary <user_id> <YYYY-MM-DD> - save a user's start date",
		"/delete_birthday <user_id> - remove a saved birthday",
		"/delete_anniversary <user_id> - remove a saved anniversary",
		"/list_birthdays - list all saved birthdays",
		"/list_anniversaries - list all saved anniversaries",
		"/set_game <on|off> - toggle birthday games",
		"/test_game [key] - try a game yourself",
		"/test_birthday - preview a birthday announcement",
		"/test_anniversary - preview an anniversary announcement",
		"/reset_bot confirm - wipe all saved data",
	} {
		b.WriteString("• " + line + "\n")
	}
	return c.Reply(b.String())
}
