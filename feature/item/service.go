package item

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"guild-ledger/core/priority"
	"guild-ledger/core/wow"
	"guild-ledger/feature/character"
	"guild-ledger/feature/item/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrItemNotFound is returned when no item matches the search.
var ErrItemNotFound = errors.New("no item matches")

// ErrLootCapReached is returned when a character already looted an item
// up to its cap.
var ErrLootCapReached = errors.New("loot cap reached for this item")

// Service manages the item catalogue, the loot ledger and priorities.
type Service struct {
	db         *gorm.DB
	characters *character.Service
	logger     *zap.Logger
}

// NewService creates a new item service.
func NewService(db *gorm.DB, characters *character.Service, logger *zap.Logger) *Service {
	return &Service{db: db, characters: characters, logger: logger}
}

// GetItem fetches one item of a guild by its game identifier.
func (s *Service) GetItem(ctx context.Context, guildID string, itemID int) (*models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).
		Where("id = ? AND id_guild = ?", itemID, guildID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// SearchItems finds items by name. An exact substring match is tried
// first; only when it finds nothing does the search widen to a loose
// match that tolerates characters between the query's letters.
func (s *Service) SearchItems(ctx context.Context, guildID, query string, limit int) ([]models.Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("search query must not be empty")
	}

	exact, err := s.searchByPattern(ctx, guildID, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	if len(exact) > 0 {
		return exact, nil
	}

	letters := strings.Split(query, "")
	loose, err := s.searchByPattern(ctx, guildID, "%"+strings.Join(letters, "%")+"%", limit)
	if err != nil {
		return nil, err
	}
	if len(loose) == 0 {
		return nil, ErrItemNotFound
	}
	return loose, nil
}

func (s *Service) searchByPattern(ctx context.Context, guildID, pattern string, limit int) ([]models.Item, error) {
	var items []models.Item
	tx := s.db.WithContext(ctx).
		Where("id_guild = ? AND name LIKE ?", guildID, pattern).
		Order("id ASC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Find(&items).Error
	return items, err
}

// RegisterLoot records one drop for a character. The item's cap limits
// how many copies the character may hold; zero means unlimited.
func (s *Service) RegisterLoot(ctx context.Context, guildID string, itemID, characterID int, inDKP bool) (*models.Loot, error) {
	item, err := s.GetItem(ctx, guildID, itemID)
	if err != nil {
		return nil, err
	}

	var loot models.Loot
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if item.MaxCount > 0 {
			var count int64
			err := tx.Model(&models.Loot{}).
				Where("id_item = ? AND id_character = ?", itemID, characterID).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count >= int64(item.MaxCount) {
				return ErrLootCapReached
			}
		}
		loot = models.Loot{
			CharacterID: characterID,
			ItemID:      itemID,
			InDKP:       inDKP,
			CreatedAt:   time.Now().UTC(),
		}
		return tx.Create(&loot).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Loot recorded",
		zap.String("guild", guildID),
		zap.Int("item", itemID),
		zap.Int("character", characterID),
		zap.Bool("in_dkp", inDKP),
	)
	return &loot, nil
}

// RegisterBulkLoots records drops keyed by character name. The whole
// batch fails on the first unknown character or cap overflow so the
// operator can fix the list and resubmit.
func (s *Service) RegisterBulkLoots(ctx context.Context, guildID string, lootsByName map[string][]int, inDKP bool) error {
	for name, itemIDs := range lootsByName {
		who, err := s.characters.GetByName(ctx, guildID, name)
		if err != nil {
			if errors.Is(err, character.ErrNotFound) {
				return fmt.Errorf("no character named %s in this guild", name)
			}
			return err
		}
		for _, itemID := range itemIDs {
			if _, err := s.RegisterLoot(ctx, guildID, itemID, who.ID, inDKP); err != nil {
				return fmt.Errorf("item %d for %s: %w", itemID, name, err)
			}
		}
	}
	return nil
}

// ListLoots returns a character's loots, most recent first.
func (s *Service) ListLoots(ctx context.Context, characterID, limit int) ([]models.Loot, error) {
	var loots []models.Loot
	tx := s.db.WithContext(ctx).
		Where("id_character = ?", characterID).
		Order("created_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Find(&loots).Error
	return loots, err
}

// ListGuildLoots returns every loot of a guild's characters.
func (s *Service) ListGuildLoots(ctx context.Context, guildID string) ([]models.Loot, error) {
	var loots []models.Loot
	err := s.db.WithContext(ctx).
		Joins("JOIN characters ON characters.id = loots.id_character").
		Where("characters.id_guild = ?", guildID).
		Find(&loots).Error
	return loots, err
}

// RemoveLastLoot deletes a character's most recent copy of an item.
// Loots already counted in DKP are kept unless force is set.
func (s *Service) RemoveLastLoot(ctx context.Context, characterID, itemID int, force bool) error {
	tx := s.db.WithContext(ctx).
		Where("id_character = ? AND id_item = ?", characterID, itemID)
	if !force {
		tx = tx.Where("in_dkp = ?", false)
	}

	var loot models.Loot
	if err := tx.Order("created_at DESC").First(&loot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	return s.db.WithContext(ctx).Delete(&loot).Error
}

// ImportPriorities parses the planning sheets and replaces the guild's
// item catalogue with the parsed rows. Broken rows are returned as cell
// errors and do not abort the import.
func (s *Service) ImportPriorities(ctx context.Context, guildID string, roleRows [][]string, sheets []Sheet) (int, []*CellError, error) {
	roles, err := ParseRoleMap(roleRows)
	if err != nil {
		return 0, nil, err
	}

	imported, cellErrors := ParseSheets(sheets, roles)
	if len(imported) == 0 {
		return 0, cellErrors, nil
	}

	records := make([]models.Item, 0, len(imported))
	for _, item := range imported {
		records = append(records, models.Item{
			ID:          item.ID,
			GuildID:     guildID,
			Name:        item.Name,
			Boss:        item.Boss,
			MaxCount:    item.MaxCount,
			PriorityRaw: strings.Join(item.Cells, models.PriorityCellSeparator),
			CreatedAt:   time.Now().UTC(),
		})
	}

	labels := make([]models.RoleLabel, 0, len(roles))
	for label, role := range roles {
		labels = append(labels, models.RoleLabel{
			GuildID: guildID,
			Label:   label,
			Class:   int(role.Class),
			Role:    int(role.Role),
			Spec:    int(role.Spec),
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A sheet where every row broke still yields an empty batch;
		// gorm rejects empty slice inserts.
		if len(records) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}, {Name: "id_guild"}},
				UpdateAll: true,
			}).Create(&records).Error
			if err != nil {
				return err
			}
		}
		if err := tx.Where("id_guild = ?", guildID).Delete(&models.RoleLabel{}).Error; err != nil {
			return err
		}
		if len(labels) == 0 {
			return nil
		}
		return tx.Create(&labels).Error
	})
	if err != nil {
		return 0, cellErrors, err
	}

	s.logger.Info("Priorities imported",
		zap.String("guild", guildID),
		zap.Int("items", len(records)),
		zap.Int("errors", len(cellErrors)),
	)
	return len(records), cellErrors, nil
}

// RoleMap loads the guild's imported sheet labels.
func (s *Service) RoleMap(ctx context.Context, guildID string) (map[string]wow.RoleTuple, error) {
	var labels []models.RoleLabel
	err := s.db.WithContext(ctx).
		Where("id_guild = ?", guildID).
		Find(&labels).Error
	if err != nil {
		return nil, err
	}
	roles := make(map[string]wow.RoleTuple, len(labels))
	for _, label := range labels {
		roles[label.Label] = wow.RoleTuple{
			Class: wow.Class(label.Class),
			Role:  wow.Role(label.Role),
			Spec:  wow.Spec(label.Spec),
		}
	}
	return roles, nil
}

// Priorities rebuilds the in-memory priority table from the stored
// catalogue. Items whose stored row no longer parses are skipped; the
// import validated them once already.
func (s *Service) Priorities(ctx context.Context, guildID string) (map[int]*priority.Item, error) {
	roles, err := s.RoleMap(ctx, guildID)
	if err != nil {
		return nil, err
	}

	var items []models.Item
	err = s.db.WithContext(ctx).
		Where("id_guild = ?", guildID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	table := make(map[int]*priority.Item, len(items))
	for _, item := range items {
		cells := item.PriorityCells()
		tokens := make([]priority.Token, len(cells))
		for c, raw := range cells {
			raw = strings.TrimSpace(raw)
			if role, ok := roles[raw]; ok {
				tokens[c] = priority.RoleToken(role)
			} else {
				tokens[c] = priority.TextToken(raw)
			}
		}
		list, err := priority.Parse(tokens)
		if err != nil {
			s.logger.Warn("Stored priority row no longer parses",
				zap.String("guild", guildID),
				zap.Int("item", item.ID),
				zap.Error(err),
			)
			continue
		}
		table[item.ID] = &priority.Item{
			ID:   item.ID,
			List: list,
			Metadata: map[string]string{
				"boss": item.Boss,
			},
		}
	}
	return table, nil
}
