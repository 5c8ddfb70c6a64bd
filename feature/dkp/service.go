package dkp

import (
	"context"
	"sort"

	coredkp "guild-ledger/core/dkp"
	attmodels "guild-ledger/feature/attendance/models"
	charmodels "guild-ledger/feature/character/models"
	"guild-ledger/feature/item"
	itemmodels "guild-ledger/feature/item/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Standing is one character's replayed balance.
type Standing struct {
	CharacterName string `json:"character"`
	Main          bool   `json:"main"`
	Score         int    `json:"score"`
}

// Service replays the ledgers into standings and applies resets.
type Service struct {
	db     *gorm.DB
	items  *item.Service
	policy coredkp.Policy
	logger *zap.Logger
}

// NewService creates a new DKP service. A nil policy uses the default
// point schedule.
func NewService(db *gorm.DB, items *item.Service, policy coredkp.Policy, logger *zap.Logger) *Service {
	return &Service{db: db, items: items, policy: policy, logger: logger}
}

// Standings replays both ledgers for every character of the guild and
// returns the balances, highest first.
func (s *Service) Standings(ctx context.Context, guildID string) ([]Standing, error) {
	var characters []charmodels.Character
	err := s.db.WithContext(ctx).
		Where("id_guild = ?", guildID).
		Find(&characters).Error
	if err != nil {
		return nil, err
	}
	if len(characters) == 0 {
		return nil, nil
	}

	var attendances []attmodels.Attendance
	err = s.db.WithContext(ctx).
		Where("id_guild = ?", guildID).
		Find(&attendances).Error
	if err != nil {
		return nil, err
	}

	var loots []itemmodels.Loot
	err = s.db.WithContext(ctx).
		Joins("JOIN characters ON characters.id = loots.id_character").
		Where("characters.id_guild = ?", guildID).
		Find(&loots).Error
	if err != nil {
		return nil, err
	}

	priorities, err := s.items.Priorities(ctx, guildID)
	if err != nil {
		return nil, err
	}

	attendancesByCharacter := make(map[int][]coredkp.AttendanceRecord)
	for _, a := range attendances {
		attendancesByCharacter[a.CharacterID] = append(attendancesByCharacter[a.CharacterID], coredkp.AttendanceRecord{
			CharacterID: a.CharacterID,
			RaidID:      a.RaidID,
			When:        a.RaidAt,
			Cancelled:   a.Cancelled,
			GuildEvent:  a.GuildEvent,
			Eligible:    a.Eligible,
		})
	}
	lootsByCharacter := make(map[int][]coredkp.LootRecord)
	for _, l := range loots {
		lootsByCharacter[l.CharacterID] = append(lootsByCharacter[l.CharacterID], coredkp.LootRecord{
			CharacterID: l.CharacterID,
			ItemID:      l.ItemID,
			When:        l.CreatedAt,
			InDKP:       l.InDKP,
		})
	}

	standings := make([]Standing, 0, len(characters))
	for _, c := range characters {
		score := coredkp.Score(c.Key(),
			attendancesByCharacter[c.ID],
			lootsByCharacter[c.ID],
			priorities,
			s.policy,
		)
		standings = append(standings, Standing{
			CharacterName: c.Name,
			Main:          c.Main,
			Score:         score,
		})
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Score != standings[j].Score {
			return standings[i].Score > standings[j].Score
		}
		return standings[i].CharacterName < standings[j].CharacterName
	})
	return standings, nil
}

// Reset flips every attendance and loot of the guild out of DKP
// eligibility. Records stay in the ledgers; only the flags change, and
// both updates land in one transaction.
func (s *Service) Reset(ctx context.Context, guildID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		characterIDs := tx.Model(&charmodels.Character{}).
			Select("id").
			Where("id_guild = ?", guildID)

		err := tx.Model(&attmodels.Attendance{}).
			Where("id_character IN (?)", characterIDs).
			Update("eligible", false).Error
		if err != nil {
			return err
		}

		characterIDs = tx.Model(&charmodels.Character{}).
			Select("id").
			Where("id_guild = ?", guildID)
		return tx.Model(&itemmodels.Loot{}).
			Where("id_character IN (?)", characterIDs).
			Update("in_dkp", false).Error
	})
	if err != nil {
		return err
	}

	s.logger.Info("DKP reset applied", zap.String("guild", guildID))
	return nil
}
