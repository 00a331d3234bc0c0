package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"celebration-bot/internal/repository"
)

// Date capture errors.
var (
	ErrInvalidDate = errors.New("invalid date")
)

// monthDayPattern matches a bare two-number date like "05-12".
var monthDayPattern = regexp.MustCompile(`^\d{2}-\d{2}$`)

// DateService handles birthday capture from direct messages and admin date
// management.
type DateService struct {
	birthdays  *repository.BirthdayRepository
	dateFormat string // "DD-MM" or "MM-DD": how users write their birthday
}

// NewDateService creates a new DateService.
func NewDateService(birthdays *repository.BirthdayRepository, dateFormat string) *DateService {
	if dateFormat != "MM-DD" {
		dateFormat = "DD-MM"
	}
	return &DateService{
		birthdays:  birthdays,
		dateFormat: dateFormat,
	}
}

// Format returns the date format users are asked to reply in, with an
// example.
func (s *DateService) Format() (format, example string) {
	if s.dateFormat == "MM-DD" {
		return "MM-DD", "e.g. 08-27"
	}
	return "DD-MM", "e.g. 27-08"
}

// LooksLikeDate reports whether the text matches the birthday submission
// pattern. The router's game dispatch always runs first; this is only
// consulted for users with no active game session.
func (s *DateService) LooksLikeDate(text string) bool {
	return monthDayPattern.MatchString(text)
}

// CaptureBirthday parses and saves a birthday submitted via DM. Returns the
// reply to send the user.
func (s *DateService) CaptureBirthday(ctx context.Context, userID int64, text string) (string, error) {
	monthDay, err := ParseMonthDay(text, s.dateFormat)
	if err != nil {
		return "That date is invalid or in the wrong format. Please try again.", nil
	}

	err = s.birthdays.Create(ctx, userID, monthDay)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return "I already have your birthday saved! Ask an admin to update it if it's incorrect.", nil
	}
	if err != nil {
		return "", err
	}

	day, _ := time.Parse("01-02", monthDay)
	return fmt.Sprintf("Got it! I'll celebrate your birthday on %s!", day.Format("January 2")), nil
}

// ParseMonthDay parses a "NN-NN" date in the given format ("DD-MM" or
// "MM-DD") and returns the canonical "MM-DD" form. The date must exist in
// some year (leap-day birthdays are allowed).
func ParseMonthDay(text, format string) (string, error) {
	if !monthDayPattern.MatchString(text) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}

	layout := "02-01"
	if format == "MM-DD" {
		layout = "01-02"
	}
	d, err := time.Parse(layout, text)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}
	return d.Format("01-02"), nil
}
