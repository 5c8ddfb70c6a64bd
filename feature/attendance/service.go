package attendance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"guild-ledger/core/resets"
	"guild-ledger/feature/attendance/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrAlreadyRecorded is returned when a character already has an
// attendance for the same raid, size and reset window.
var ErrAlreadyRecorded = errors.New("attendance already recorded for this reset window")

// ErrRaidNotFound is returned when no raid matches the lookup.
var ErrRaidNotFound = errors.New("raid not found")

// ErrBeforeFirstReset is returned when a claim predates the raid's
// reset anchor.
var ErrBeforeFirstReset = errors.New("raid time predates the first reset")

// RecordInput describes one attendance claim.
type RecordInput struct {
	GuildID     string
	CharacterID int
	RaidID      int
	RaidSize    int
	When        time.Time
	Cancelled   bool
	GuildEvent  bool
}

// ReportRow is one line of the attendance report.
type ReportRow struct {
	CharacterName string `json:"character"`
	Count         int    `json:"count"`
}

// Service manages the raid catalogue and the attendance ledger.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new attendance service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// FindRaid resolves a raid by name or short name, case-insensitively.
func (s *Service) FindRaid(ctx context.Context, name string) (*models.Raid, error) {
	var raid models.Raid
	err := s.db.WithContext(ctx).
		Where("LOWER(name) = ? OR LOWER(short_name) = ?", strings.ToLower(name), strings.ToLower(name)).
		First(&raid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRaidNotFound
		}
		return nil, err
	}
	return &raid, nil
}

// ListRaids returns the raid catalogue.
func (s *Service) ListRaids(ctx context.Context) ([]models.Raid, error) {
	var raids []models.Raid
	err := s.db.WithContext(ctx).Order("name ASC").Find(&raids).Error
	return raids, err
}

// AddRaid registers a raid with its reset schedule.
func (s *Service) AddRaid(ctx context.Context, name, shortName string, periodDays int, resetStart time.Time) (*models.Raid, error) {
	if periodDays <= 0 {
		return nil, fmt.Errorf("reset period must be positive, got %d", periodDays)
	}
	raid := models.Raid{
		Name:            name,
		ShortName:       shortName,
		ResetPeriodDays: periodDays,
		ResetStart:      resetStart.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&raid).Error; err != nil {
		return nil, fmt.Errorf("failed to create raid %s: %w", name, err)
	}
	return &raid, nil
}

// Record writes one attendance claim. The claim lands in the reset
// window containing the raid time; a second claim for the same
// character, raid, size and window is rejected.
func (s *Service) Record(ctx context.Context, in RecordInput) (*models.Attendance, error) {
	var raid models.Raid
	if err := s.db.WithContext(ctx).First(&raid, in.RaidID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRaidNotFound
		}
		return nil, err
	}

	if in.When.Before(raid.ResetStart) {
		return nil, ErrBeforeFirstReset
	}

	window, err := resets.WindowFor(in.When, raid.Anchor())
	if err != nil {
		return nil, fmt.Errorf("raid %s has a broken reset schedule: %w", raid.Name, err)
	}

	record := models.Attendance{
		GuildID:     in.GuildID,
		CharacterID: in.CharacterID,
		RaidID:      in.RaidID,
		RaidSize:    in.RaidSize,
		RaidAt:      in.When.UTC(),
		WindowStart: window.Start,
		Cancelled:   in.Cancelled,
		GuildEvent:  in.GuildEvent,
		Eligible:    true,
		CreatedAt:   time.Now().UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Attendance{}).
			Where("id_character = ? AND id_raid = ? AND raid_size = ? AND window_start = ?",
				in.CharacterID, in.RaidID, in.RaidSize, window.Start).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyRecorded
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Attendance recorded",
		zap.String("guild", in.GuildID),
		zap.Int("character", in.CharacterID),
		zap.Int("raid", in.RaidID),
		zap.Time("window_start", window.Start),
	)
	return &record, nil
}

// RecordMany writes a batch of claims, skipping duplicates instead of
// failing the batch. It returns how many records were actually written.
func (s *Service) RecordMany(ctx context.Context, inputs []RecordInput) (int, error) {
	written := 0
	for _, in := range inputs {
		_, err := s.Record(ctx, in)
		if err != nil {
			if errors.Is(err, ErrAlreadyRecorded) {
				continue
			}
			return written, err
		}
		written++
	}
	return written, nil
}

// ListForGuild returns every attendance record of a guild.
func (s *Service) ListForGuild(ctx context.Context, guildID string) ([]models.Attendance, error) {
	var records []models.Attendance
	err := s.db.WithContext(ctx).
		Where("id_guild = ?", guildID).
		Find(&records).Error
	return records, err
}

// Report counts attendances per character over the reset windows that
// overlap [from, to). Each raid's range is widened to its own whole
// windows, so partial weeks at either edge still count without one
// raid's anchor pulling in another raid's edge records.
func (s *Service) Report(ctx context.Context, guildID string, from, to time.Time) ([]ReportRow, error) {
	// Only raids observed on records inside the coarse range decide
	// the widening; an idle raid's anchor must not stretch it.
	var observed []models.Raid
	err := s.db.WithContext(ctx).
		Model(&models.Raid{}).
		Distinct("raids.*").
		Joins("JOIN attendances ON attendances.id_raid = raids.id").
		Where("attendances.id_guild = ? AND attendances.raid_at >= ? AND attendances.raid_at < ?", guildID, from, to).
		Find(&observed).Error
	if err != nil {
		return nil, err
	}
	if len(observed) == 0 {
		return []ReportRow{}, nil
	}

	type bounds struct {
		lo, hi time.Time
	}
	perRaid := make(map[int]bounds, len(observed))
	anchors := make([]resets.Anchor, 0, len(observed))
	for _, raid := range observed {
		wFrom, err := resets.WindowFor(from, raid.Anchor())
		if err != nil {
			return nil, fmt.Errorf("raid %s has a broken reset schedule: %w", raid.Name, err)
		}
		wTo, err := resets.WindowFor(to, raid.Anchor())
		if err != nil {
			return nil, fmt.Errorf("raid %s has a broken reset schedule: %w", raid.Name, err)
		}
		perRaid[raid.ID] = bounds{lo: wFrom.Start, hi: wTo.End}
		anchors = append(anchors, raid.Anchor())
	}
	lo, hi, err := resets.UnionRange(from, to, anchors)
	if err != nil {
		return nil, err
	}

	type row struct {
		Name   string
		RaidID int
		RaidAt time.Time
	}
	var rows []row
	err = s.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Select("characters.name AS name, attendances.id_raid AS raid_id, attendances.raid_at AS raid_at").
		Joins("JOIN characters ON characters.id = attendances.id_character").
		Where("attendances.id_guild = ? AND attendances.raid_at >= ? AND attendances.raid_at < ?", guildID, lo, hi).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, r := range rows {
		b, ok := perRaid[r.RaidID]
		if !ok {
			continue
		}
		if r.RaidAt.Before(b.lo) || !r.RaidAt.Before(b.hi) {
			continue
		}
		counts[r.Name]++
	}

	report := make([]ReportRow, 0, len(counts))
	for name, count := range counts {
		report = append(report, ReportRow{CharacterName: name, Count: count})
	}
	sort.Slice(report, func(i, j int) bool {
		if report[i].Count != report[j].Count {
			return report[i].Count > report[j].Count
		}
		return report[i].CharacterName < report[j].CharacterName
	})
	return report, nil
}
