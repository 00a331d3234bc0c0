// Package handler provides Telegram bot command and message handlers.
package handler

import (
	"context"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"celebration-bot/internal/game"
	"celebration-bot/internal/service"
)

// DMHandler routes free-text direct messages: an active game session always
// consumes the message; otherwise the text is checked against the birthday
// submission pattern.
type DMHandler struct {
	router    *game.Router
	dates     *service.DateService
	messenger game.Messenger
}

// NewDMHandler creates a new DMHandler.
func NewDMHandler(router *game.Router, dates *service.DateService, messenger game.Messenger) *DMHandler {
	return &DMHandler{
		router:    router,
		dates:     dates,
		messenger: messenger,
	}
}

// HandleText handles every non-command text message sent to the bot in a
// private chat.
func (h *DMHandler) HandleText(c tele.Context) error {
	chat := c.Chat()
	sender := c.Sender()
	if chat == nil || sender == nil || chat.Type != tele.ChatPrivate {
		return nil
	}

	ctx := context.Background()
	userID := sender.ID
	text := c.Text()

	// Game moves take precedence over everything, including text that
	// happens to look like a birthday date.
	handled, err := h.router.Route(ctx, userID, text, h.messenger)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Game handler failed")
		return nil
	}
	if handled {
		return nil
	}

	if h.dates.LooksLikeDate(text) {
		reply, err := h.dates.CaptureBirthday(ctx, userID, text)
		if err != nil {
			log.Error().Err(err).Int64("user_id", userID).Msg("Failed to save birthday")
			return c.Reply("Something went wrong saving your birthday. Please try again later.")
		}
		return c.Reply(reply)
	}

	return nil
}

// HandleStart greets a user in a private chat and asks for their birthday.
func (h *DMHandler) HandleStart(c tele.Context) error {
	chat := c.Chat()
	if chat == nil || chat.Type != tele.ChatPrivate {
		return nil
	}
	format, example := h.dates.Format()
	return c.Reply("Hi! I'm the Celebration Bot. To get started, please reply with your birthday in " +
		format + " format (" + example + ").")
}
