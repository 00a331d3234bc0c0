package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"celebration-bot/internal/repository"
	"celebration-bot/internal/service"
)

// CelebrationHandler handles admin management of birthdays and
// anniversaries.
type CelebrationHandler struct {
	birthdays     *repository.BirthdayRepository
	anniversaries *repository.AnniversaryRepository
	dates         *service.DateService
}

// NewCelebrationHandler creates a new CelebrationHandler.
func NewCelebrationHandler(
	birthdays *repository.BirthdayRepository,
	anniversaries *repository.AnniversaryRepository,
	dates *service.DateService,
) *CelebrationHandler {
	return &CelebrationHandler{
		birthdays:     birthdays,
		anniversaries: anniversaries,
		dates:         dates,
	}
}

// HandleSetBirthday handles /set_birthday <user_id> <date>.
func (h *CelebrationHandler) HandleSetBirthday(c tele.Context) error {
	args := c.Args()
	format, example := h.dates.Format()
	if len(args) != 2 {
		return c.Reply(fmt.Sprintf("Usage: /set_birthday <user_id> <%s> (%s)", format, example))
	}

	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return c.Reply("That doesn't look like a user ID.")
	}
	monthDay, err := service.ParseMonthDay(args[1], format)
	if err != nil {
		return c.Reply(fmt.Sprintf("That date is invalid. Use %s (%s).", format, example))
	}

	if err := h.birthdays.Upsert(context.Background(), userID, monthDay); err != nil {
		return c.Reply("Failed to save the birthday. Please try again.")
	}
	return c.Reply(fmt.Sprintf("Saved! I'll celebrate user %d's birthday on %s.", userID, monthDay))
}

// HandleSetAnniversary handles /set_anniversary <user_id> <YYYY-MM-DD>.
func (h *CelebrationHandler) HandleSetAnniversary(c tele.Context) error {
	args := c.Args()
	if len(args) != 2 {
		return c.Reply("Usage: /set_anniversary <user_id> <YYYY-MM-DD>")
	}

	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return c.Reply("That doesn't look like a user ID.")
	}
	startDate, err := time.Parse("2006-01-02", args[1])
	if err != nil {
		return c.Reply("That date is invalid. Use YYYY-MM-DD.")
	}

	if err := h.anniversaries.Upsert(context.Background(), userID, startDate); err != nil {
		return c.Reply("Failed to save the anniversary. Please try again.")
	}
	return c.Reply(fmt.Sprintf("Saved! User %d started on %s.", userID, startDate.Format("2006-01-02")))
}

// HandleDeleteBirthday handles /delete_birthday <user_id>.
func (h *CelebrationHandler) HandleDeleteBirthday(c tele.Context) error {
	return h.handleDelete(c, "birthday", func(ctx context.Context, userID int64) error {
		return h.birthdays.Delete(ctx, userID)
	})
}

// HandleDeleteAnniversary handles /delete_anniversary <user_id>.
func (h *CelebrationHandler) HandleDeleteAnniversary(c tele.Context) error {
	return h.handleDelete(c, "anniversary", func(ctx context.Context, userID int64) error {
		return h.anniversaries.Delete(ctx, userID)
	})
}

func (h *CelebrationHandler) handleDelete(c tele.Context, what string, del func(context.Context, int64) error) error {
	args := c.Args()
	if len(args) != 1 {
		return c.Reply(fmt.Sprintf("Usage: /delete_%s <user_id>", what))
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return c.Reply("That doesn't look like a user ID.")
	}

	err = del(context.Background(), userID)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Reply(fmt.Sprintf("I don't have a %s saved for user %d.", what, userID))
	}
	if err != nil {
		return c.Reply(fmt.Sprintf("Failed to delete the %s. Please try again.", what))
	}
	return c.Reply(fmt.Sprintf("Deleted user %d's %s.", userID, what))
}

// HandleListBirthdays handles /list_birthdays.
func (h *CelebrationHandler) HandleListBirthdays(c tele.Context) error {
	birthdays, err := h.birthdays.List(context.Background())
	if err != nil {
		return c.Reply("Failed to list birthdays. Please try again.")
	}
	if len(birthdays) == 0 {
		return c.Reply("No birthdays saved yet.")
	}

	var b strings.Builder
	b.WriteString("Saved birthdays:\n")
	for _, bd := range birthdays {
		fmt.Fprintf(&b, "• user %d - %s\n", bd.UserID, bd.MonthDay)
	}
	return c.Reply(b.String())
}

// HandleListAnniversaries handles /list_anniversaries.
func (h *CelebrationHandler) HandleListAnniversaries(c tele.Context) error {
	anniversaries, err := h.anniversaries.List(context.Background())
	if err != nil {
		return c.Reply("Failed to list anniversaries. Please try again.")
	}
	if len(anniversaries) == 0 {
		return c.Reply("No anniversaries saved yet.")
	}

	var b strings.Builder
	b.WriteString("Saved anniversaries:\n")
	for _, a := range anniversaries {
		years := service.YearsBetween(a.StartDate, time.Now())
		fmt.Fprintf(&b, "• user %d - started %s (%d years)\n", a.UserID, a.StartDate.Format("2006-01-02"), years)
	}
	return c.Reply(b.String())
}
