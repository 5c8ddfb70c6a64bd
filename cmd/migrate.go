package cmd

import (
	attmodels "guild-ledger/feature/attendance/models"
	charmodels "guild-ledger/feature/character/models"
	itemmodels "guild-ledger/feature/item/models"
	recipemodels "guild-ledger/feature/recipe/models"
)

// allModels lists every persisted model, in foreign key order.
func allModels() []any {
	return []any{
		&charmodels.Character{},
		&attmodels.Raid{},
		&attmodels.Attendance{},
		&itemmodels.Item{},
		&itemmodels.RoleLabel{},
		&itemmodels.Loot{},
		&recipemodels.Recipe{},
		&recipemodels.CharacterRecipe{},
	}
}
