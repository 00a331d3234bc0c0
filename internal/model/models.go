// Package model defines the persisted domain types.
package model

import "time"

// Birthday is a user's saved birthday. The date is stored as "MM-DD" so the
// year is never kept.
type Birthday struct {
	UserID    int64
	MonthDay  string
	CreatedAt time.Time
}

// Anniversary is a user's work start date.
type Anniversary struct {
	UserID    int64
	StartDate time.Time
	CreatedAt time.Time
}

// AnnounceKind selects which announcement a settings row configures.
type AnnounceKind string

// Announcement kinds.
const (
	KindBirthday    AnnounceKind = "birthday"
	KindAnniversary AnnounceKind = "anniversary"
)

// AnnounceSettings configures where and when one kind of announcement is
// posted. AnnounceTime is "HH:MM" in the bot's local time.
type AnnounceSettings struct {
	Kind         AnnounceKind
	ChatID       int64
	AnnounceTime string
	UpdatedAt    time.Time
}

// GameSettings holds the single on/off toggle for birthday games.
type GameSettings struct {
	Enabled   bool
	UpdatedAt time.Time
}
