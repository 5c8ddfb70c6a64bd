package recipe

import (
	"context"
	"errors"
	"strings"
	"time"

	charmodels "guild-ledger/feature/character/models"
	"guild-ledger/feature/recipe/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrRecipeNotFound is returned when no recipe matches the search.
var ErrRecipeNotFound = errors.New("no recipe matches")

// Crafter is one character able to craft a recipe.
type Crafter struct {
	CharacterID   int    `json:"character_id"`
	CharacterName string `json:"character"`
}

// Service manages the recipe catalogue and who knows what.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new recipe service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Add registers a recipe in the guild catalogue, idempotently.
func (s *Service) Add(ctx context.Context, guildID, name, profession string) (*models.Recipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("recipe name must not be empty")
	}

	recipe := models.Recipe{
		GuildID:    guildID,
		Name:       name,
		Profession: strings.ToLower(strings.TrimSpace(profession)),
		CreatedAt:  time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id_guild"}, {Name: "name"}},
		DoNothing: true,
	}).Create(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Search finds recipes by name, exact substring first, loose second.
// An optional profession narrows the result.
func (s *Service) Search(ctx context.Context, guildID, query, profession string, limit int) ([]models.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("search query must not be empty")
	}

	exact, err := s.searchByPattern(ctx, guildID, "%"+query+"%", profession, limit)
	if err != nil {
		return nil, err
	}
	if len(exact) > 0 {
		return exact, nil
	}

	letters := strings.Split(query, "")
	loose, err := s.searchByPattern(ctx, guildID, "%"+strings.Join(letters, "%")+"%", profession, limit)
	if err != nil {
		return nil, err
	}
	if len(loose) == 0 {
		return nil, ErrRecipeNotFound
	}
	return loose, nil
}

func (s *Service) searchByPattern(ctx context.Context, guildID, pattern, profession string, limit int) ([]models.Recipe, error) {
	tx := s.db.WithContext(ctx).
		Where("id_guild = ? AND name LIKE ?", guildID, pattern).
		Order("id ASC")
	if profession != "" {
		tx = tx.Where("profession = ?", strings.ToLower(profession))
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var recipes []models.Recipe
	err := tx.Find(&recipes).Error
	return recipes, err
}

// Learn marks recipes as known by a character. Already known recipes
// are left untouched.
func (s *Service) Learn(ctx context.Context, characterID int, recipeIDs []int) (int, error) {
	if len(recipeIDs) == 0 {
		return 0, nil
	}

	var known []models.CharacterRecipe
	err := s.db.WithContext(ctx).
		Where("id_character = ? AND id_recipe IN ?", characterID, recipeIDs).
		Find(&known).Error
	if err != nil {
		return 0, err
	}
	knownIDs := make(map[int]bool, len(known))
	for _, k := range known {
		knownIDs[k.RecipeID] = true
	}

	var links []models.CharacterRecipe
	for _, recipeID := range recipeIDs {
		if knownIDs[recipeID] {
			continue
		}
		links = append(links, models.CharacterRecipe{
			CharacterID: characterID,
			RecipeID:    recipeID,
		})
	}
	if len(links) == 0 {
		return 0, nil
	}
	if err := s.db.WithContext(ctx).Create(&links).Error; err != nil {
		return 0, err
	}
	return len(links), nil
}

// Forget removes recipes from a character's known list.
func (s *Service) Forget(ctx context.Context, characterID int, recipeIDs []int) error {
	return s.db.WithContext(ctx).
		Where("id_character = ? AND id_recipe IN ?", characterID, recipeIDs).
		Delete(&models.CharacterRecipe{}).Error
}

// Known lists the recipes a character knows, optionally narrowed to a
// profession.
func (s *Service) Known(ctx context.Context, characterID int, profession string) ([]models.Recipe, error) {
	tx := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Joins("JOIN character_recipes ON character_recipes.id_recipe = recipes.id").
		Where("character_recipes.id_character = ?", characterID).
		Order("recipes.name ASC")
	if profession != "" {
		tx = tx.Where("recipes.profession = ?", strings.ToLower(profession))
	}
	var recipes []models.Recipe
	err := tx.Find(&recipes).Error
	return recipes, err
}

// Crafters lists the characters of a guild able to craft a recipe.
func (s *Service) Crafters(ctx context.Context, guildID string, recipeID int) ([]Crafter, error) {
	var characters []charmodels.Character
	err := s.db.WithContext(ctx).
		Model(&charmodels.Character{}).
		Joins("JOIN character_recipes ON character_recipes.id_character = characters.id").
		Where("character_recipes.id_recipe = ? AND characters.id_guild = ?", recipeID, guildID).
		Order("characters.name ASC").
		Find(&characters).Error
	if err != nil {
		return nil, err
	}

	crafters := make([]Crafter, 0, len(characters))
	for _, c := range characters {
		crafters = append(crafters, Crafter{CharacterID: c.ID, CharacterName: c.Name})
	}
	return crafters, nil
}
