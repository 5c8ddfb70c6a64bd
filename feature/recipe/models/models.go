// Package models contains the recipe persistence models.
package models

import (
	"time"

	charmodels "guild-ledger/feature/character/models"
)

// Recipe is one craftable entry of the guild's catalogue.
type Recipe struct {
	ID         int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	GuildID    string    `gorm:"column:id_guild;size:22;uniqueIndex:uq_guild_recipe" json:"guild_id"`
	Name       string    `gorm:"column:name;size:255;uniqueIndex:uq_guild_recipe" json:"name"`
	Profession string    `gorm:"column:profession;size:64;index" json:"profession"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the default table name.
func (Recipe) TableName() string {
	return "recipes"
}

// CharacterRecipe links a character to a recipe it knows.
type CharacterRecipe struct {
	CharacterID int `gorm:"column:id_character;primaryKey" json:"character_id"`
	RecipeID    int `gorm:"column:id_recipe;primaryKey" json:"recipe_id"`

	Character charmodels.Character `gorm:"foreignKey:CharacterID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe    Recipe               `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the default table name.
func (CharacterRecipe) TableName() string {
	return "character_recipes"
}
