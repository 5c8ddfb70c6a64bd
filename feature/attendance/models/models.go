// Package models contains the raid and attendance persistence models.
package models

import (
	"time"

	"guild-ledger/core/resets"

	charmodels "guild-ledger/feature/character/models"
)

// Raid is one trackable raid instance with its reset schedule.
type Raid struct {
	ID              int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"column:name;size:64;uniqueIndex" json:"name"`
	ShortName       string    `gorm:"column:short_name;size:16;uniqueIndex" json:"short_name"`
	ResetPeriodDays int       `gorm:"column:reset_period_days" json:"reset_period_days"`
	ResetStart      time.Time `gorm:"column:reset_start" json:"reset_start"`
}

// TableName overrides the default table name.
func (Raid) TableName() string {
	return "raids"
}

// Anchor returns the reset anchor of the raid.
func (r Raid) Anchor() resets.Anchor {
	return resets.Anchor{Start: r.ResetStart, PeriodDays: r.ResetPeriodDays}
}

// Attendance is one claim of raid participation inside a reset window.
type Attendance struct {
	ID          int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	GuildID     string    `gorm:"column:id_guild;size:22;index" json:"guild_id"`
	CharacterID int       `gorm:"column:id_character;uniqueIndex:uq_window" json:"character_id"`
	RaidID      int       `gorm:"column:id_raid;uniqueIndex:uq_window" json:"raid_id"`
	RaidSize    int       `gorm:"column:raid_size;uniqueIndex:uq_window" json:"raid_size"`
	RaidAt      time.Time `gorm:"column:raid_at" json:"raid_at"`
	WindowStart time.Time `gorm:"column:window_start;uniqueIndex:uq_window" json:"window_start"`
	Cancelled   bool      `gorm:"column:cancelled" json:"cancelled"`
	GuildEvent  bool      `gorm:"column:guild_event" json:"guild_event"`
	Eligible    bool      `gorm:"column:eligible" json:"eligible"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`

	Character charmodels.Character `gorm:"foreignKey:CharacterID;constraint:OnDelete:CASCADE" json:"-"`
	Raid      Raid                 `gorm:"foreignKey:RaidID" json:"-"`
}

// TableName overrides the default table name.
func (Attendance) TableName() string {
	return "attendances"
}
