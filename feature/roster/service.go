package roster

import (
	"context"
	"fmt"
	"time"

	coreroster "guild-ledger/core/roster"
	"guild-ledger/feature/attendance"
	charmodels "guild-ledger/feature/character/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feed labels marking signups that did not actually attend.
const (
	roleAbsence = "Absence"
	classBench  = "Bench"
)

// ImportResult summarizes one event import.
type ImportResult struct {
	When time.Time `json:"when"`
	// Matched lists the character names whose attendance was recorded.
	Matched []string `json:"matched"`
	// Unmatched lists signup names needing manual assignment.
	Unmatched []string `json:"unmatched"`
	// Written counts newly created attendance records; duplicates within
	// the same reset window are skipped, not rewritten.
	Written int `json:"written"`
}

// Service turns raid-helper events into attendance records.
type Service struct {
	db          *gorm.DB
	client      *Client
	attendances *attendance.Service
	logger      *zap.Logger
}

// NewService creates a new roster service.
func NewService(db *gorm.DB, client *Client, attendances *attendance.Service, logger *zap.Logger) *Service {
	return &Service{db: db, client: client, attendances: attendances, logger: logger}
}

// Import fetches an event, reconciles its signups against the guild's
// characters and records attendance for every match.
func (s *Service) Import(ctx context.Context, guildID, eventID string, raidID, raidSize int) (*ImportResult, error) {
	event, err := s.client.Event(ctx, eventID)
	if err != nil {
		return nil, err
	}
	when, err := event.When()
	if err != nil {
		return nil, fmt.Errorf("event %s has a broken schedule: %w", eventID, err)
	}
	return s.ImportSignups(ctx, guildID, raidID, raidSize, when, event.Signups)
}

// ImportSignups reconciles an already fetched signup list against the
// guild's characters and records attendance for every match.
func (s *Service) ImportSignups(ctx context.Context, guildID string, raidID, raidSize int, when time.Time, feed []EventSignup) (*ImportResult, error) {
	var signups []coreroster.Signup
	for _, signup := range feed {
		if signup.Role == roleAbsence || signup.Class == classBench {
			continue
		}
		signups = append(signups, coreroster.Signup{
			Name:      signup.Name,
			UserID:    signup.UserID,
			ClassName: signup.Class,
			SpecLabel: signup.Spec,
			RoleLabel: signup.Role,
		})
	}

	candidates, err := s.candidates(ctx, guildID)
	if err != nil {
		return nil, err
	}

	outcome := coreroster.Reconcile(signups, candidates)

	inputs := make([]attendance.RecordInput, 0, len(outcome.Matched))
	for _, match := range outcome.Matched {
		inputs = append(inputs, attendance.RecordInput{
			GuildID:     guildID,
			CharacterID: match.ID,
			RaidID:      raidID,
			RaidSize:    raidSize,
			When:        when,
		})
	}
	written, err := s.attendances.RecordMany(ctx, inputs)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{When: when, Written: written}
	for _, match := range outcome.Matched {
		result.Matched = append(result.Matched, match.Name)
	}
	for _, signup := range outcome.Unmatched {
		result.Unmatched = append(result.Unmatched, signup.Name)
	}

	s.logger.Info("Roster imported",
		zap.String("guild", guildID),
		zap.Time("when", when),
		zap.Int("matched", len(result.Matched)),
		zap.Int("unmatched", len(result.Unmatched)),
		zap.Int("written", written),
	)
	return result, nil
}

// candidates groups the guild's characters by owning user for the
// matcher.
func (s *Service) candidates(ctx context.Context, guildID string) (map[string][]coreroster.CharacterRecord, error) {
	var characters []charmodels.Character
	err := s.db.WithContext(ctx).
		Where("id_guild = ?", guildID).
		Order("id ASC").
		Find(&characters).Error
	if err != nil {
		return nil, err
	}

	byUser := make(map[string][]coreroster.CharacterRecord)
	for _, c := range characters {
		byUser[c.UserID] = append(byUser[c.UserID], coreroster.CharacterRecord{
			ID:    c.ID,
			Name:  c.Name,
			Owner: c.UserID,
			Key:   c.Key(),
			Main:  c.Main,
		})
	}
	return byUser, nil
}
