// Package models contains the item and loot persistence models.
package models

import (
	"strings"
	"time"

	charmodels "guild-ledger/feature/character/models"
)

// PriorityCellSeparator joins the raw priority cells when stored. The
// character never appears inside a cell, so the join is reversible.
const PriorityCellSeparator = "|"

// Item is one lootable item with its imported priority row.
type Item struct {
	// ID is the game's item identifier, never generated locally, so
	// the composite (id, id_guild) key keeps auto-increment off.
	ID      int    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	GuildID string `gorm:"column:id_guild;size:22;primaryKey" json:"guild_id"`
	Name    string `gorm:"column:name;size:255;index" json:"name"`
	Boss    string `gorm:"column:boss;size:255" json:"boss"`
	// MaxCount caps how many times one character may loot the item.
	// Zero means unlimited.
	MaxCount int `gorm:"column:max_count" json:"max_count"`
	// PriorityRaw holds the imported priority cells, joined with
	// PriorityCellSeparator, exactly as they appeared on the sheet.
	PriorityRaw string    `gorm:"column:priority_raw;type:text" json:"-"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the default table name.
func (Item) TableName() string {
	return "items"
}

// PriorityCells splits the stored priority row back into cells.
func (i Item) PriorityCells() []string {
	if i.PriorityRaw == "" {
		return nil
	}
	return strings.Split(i.PriorityRaw, PriorityCellSeparator)
}

// RoleLabel maps one sheet label to the role tuple it denotes. The
// labels are imported alongside the priorities so stored rows stay
// interpretable after the import.
type RoleLabel struct {
	GuildID string `gorm:"column:id_guild;size:22;primaryKey" json:"guild_id"`
	Label   string `gorm:"column:label;size:64;primaryKey" json:"label"`
	Class   int    `gorm:"column:class" json:"class"`
	Role    int    `gorm:"column:role" json:"role"`
	Spec    int    `gorm:"column:spec" json:"spec"`
}

// TableName overrides the default table name.
func (RoleLabel) TableName() string {
	return "role_labels"
}

// Loot is one recorded drop assigned to a character.
type Loot struct {
	ID          int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CharacterID int       `gorm:"column:id_character;index" json:"character_id"`
	ItemID      int       `gorm:"column:id_item;index" json:"item_id"`
	InDKP       bool      `gorm:"column:in_dkp" json:"in_dkp"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`

	Character charmodels.Character `gorm:"foreignKey:CharacterID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the default table name.
func (Loot) TableName() string {
	return "loots"
}
