package bot

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"
)

// Messenger adapts the telebot instance to the narrow messaging interfaces
// the core needs: send a DM to a user, post to a channel chat, and resolve a
// display name. Send failures are reported to the caller and not retried.
type Messenger struct {
	bot *tele.Bot
}

// NewMessenger wraps a telebot instance.
func NewMessenger(b *tele.Bot) *Messenger {
	return &Messenger{bot: b}
}

// SendMessage sends a direct message to a user.
func (m *Messenger) SendMessage(ctx context.Context, userID int64, text string) error {
	if _, err := m.bot.Send(&tele.User{ID: userID}, text); err != nil {
		return fmt.Errorf("failed to send message to user %d: %w", userID, err)
	}
	return nil
}

// SendToChat posts a message to a channel or group chat.
func (m *Messenger) SendToChat(ctx context.Context, chatID int64, text string) error {
	if _, err := m.bot.Send(&tele.Chat{ID: chatID}, text); err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
	}
	return nil
}

// DisplayName resolves a user ID to a human-readable name.
func (m *Messenger) DisplayName(ctx context.Context, userID int64) (string, error) {
	chat, err := m.bot.ChatByID(userID)
	if err != nil {
		return "", fmt.Errorf("failed to look up user %d: %w", userID, err)
	}
	name := strings.TrimSpace(chat.FirstName + " " + chat.LastName)
	if name == "" {
		name = chat.Username
	}
	return name, nil
}
