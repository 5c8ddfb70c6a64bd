package models

import (
	"time"

	"guild-ledger/core/wow"
)

// Character is a guild member's character record.
type Character struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	GuildID   string    `gorm:"column:id_guild;size:22;index:idx_guild_user;uniqueIndex:uq_guild_name"`
	UserID    string    `gorm:"column:id_user;size:22;index:idx_guild_user"`
	Name      string    `gorm:"column:name;size:255;uniqueIndex:uq_guild_name"`
	Class     wow.Class `gorm:"column:class"`
	Role      wow.Role  `gorm:"column:role"`
	Spec      wow.Spec  `gorm:"column:spec"`
	Main      bool      `gorm:"column:is_main"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName overrides the table name.
func (Character) TableName() string {
	return "characters"
}

// Key returns the comparison tuple used by priorities and reconciliation.
func (c Character) Key() wow.RoleTuple {
	return wow.RoleTuple{Class: c.Class, Role: c.Role, Spec: c.Spec}
}
