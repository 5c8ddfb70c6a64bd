package character

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"guild-ledger/core/wow"
	"guild-ledger/feature/character/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no character matches the lookup.
var ErrNotFound = errors.New("character not found")

// Service handles character roster operations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new character service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Add registers a character for a user. The first character a user
// registers becomes their main; later ones only when main is requested,
// in which case the previous main is demoted.
func (s *Service) Add(ctx context.Context, guildID, userID, name string, class wow.Class, role wow.Role, spec wow.Spec, main bool) (*models.Character, error) {
	if !class.Valid() {
		return nil, fmt.Errorf("invalid class %d", class)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %d", role)
	}
	if spec != wow.SpecNone && !containsSpec(wow.Specs(class, role), spec) {
		return nil, fmt.Errorf("spec %s does not belong to %s %s", spec, class, role)
	}

	name = capitalize(strings.TrimSpace(name))
	if name == "" {
		return nil, errors.New("character name must not be empty")
	}

	var created *models.Character
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Character{}).
			Where("id_guild = ? AND id_user = ?", guildID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		isMain := main || count == 0

		if isMain && count > 0 {
			if err := tx.Model(&models.Character{}).
				Where("id_guild = ? AND id_user = ?", guildID, userID).
				Update("is_main", false).Error; err != nil {
				return err
			}
		}

		character := models.Character{
			GuildID:   guildID,
			UserID:    userID,
			Name:      name,
			Class:     class,
			Role:      role,
			Spec:      spec,
			Main:      isMain,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&character).Error; err != nil {
			return fmt.Errorf("failed to create character %s: %w", name, err)
		}
		created = &character
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Character registered",
		zap.String("guild", guildID),
		zap.String("name", created.Name),
		zap.Bool("main", created.Main),
	)
	return created, nil
}

// Get finds one character of a user, by name or, when name is empty, the
// user's main character.
func (s *Service) Get(ctx context.Context, guildID, userID, name string) (*models.Character, error) {
	query := s.db.WithContext(ctx).Where("id_guild = ? AND id_user = ?", guildID, userID)
	if name == "" {
		query = query.Where("is_main = ?", true)
	} else {
		query = query.Where("LOWER(name) = ?", strings.ToLower(name))
	}

	var character models.Character
	if err := query.First(&character).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &character, nil
}

// GetByName finds a character in a guild regardless of owner.
func (s *Service) GetByName(ctx context.Context, guildID, name string) (*models.Character, error) {
	var character models.Character
	err := s.db.WithContext(ctx).
		Where("id_guild = ? AND LOWER(name) = ?", guildID, strings.ToLower(name)).
		First(&character).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &character, nil
}

// ListByUser returns all characters a user owns in a guild.
func (s *Service) ListByUser(ctx context.Context, guildID, userID string) ([]models.Character, error) {
	var characters []models.Character
	err := s.db.WithContext(ctx).
		Where("id_guild = ? AND id_user = ?", guildID, userID).
		Order("is_main DESC, name ASC").
		Find(&characters).Error
	return characters, err
}

// ListByGuild returns every character of a guild.
func (s *Service) ListByGuild(ctx context.Context, guildID string) ([]models.Character, error) {
	var characters []models.Character
	err := s.db.WithContext(ctx).
		Where("id_guild = ?", guildID).
		Order("name ASC").
		Find(&characters).Error
	return characters, err
}

// SetMain flips a user's main character to the named one.
func (s *Service) SetMain(ctx context.Context, guildID, userID, name string) (*models.Character, error) {
	character, err := s.Get(ctx, guildID, userID, name)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Character{}).
			Where("id_guild = ? AND id_user = ?", guildID, userID).
			Update("is_main", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Character{}).
			Where("id = ?", character.ID).
			Update("is_main", true).Error
	})
	if err != nil {
		return nil, err
	}
	character.Main = true
	return character, nil
}

// Remove deletes a user's character by name. The attendance and loot
// ledgers cascade at the database level.
func (s *Service) Remove(ctx context.Context, guildID, userID, name string) error {
	result := s.db.WithContext(ctx).
		Where("id_guild = ? AND id_user = ? AND LOWER(name) = ?", guildID, userID, strings.ToLower(name)).
		Delete(&models.Character{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func capitalize(name string) string {
	if name == "" {
		return name
	}
	lower := strings.ToLower(name)
	// The first rune may be multi-byte; slicing a byte would mangle it.
	first, size := utf8.DecodeRuneInString(lower)
	return strings.ToUpper(string(first)) + lower[size:]
}

func containsSpec(specs []wow.Spec, spec wow.Spec) bool {
	for _, s := range specs {
		if s == spec {
			return true
		}
	}
	return false
}
