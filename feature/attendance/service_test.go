package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func raidRow(resetStart time.Time, periodDays int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "short_name", "reset_period_days", "reset_start"}).
		AddRow(1, "Molten Core", "mc", periodDays, resetStart)
}

func TestRecord_WritesWindowStart(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewService(db, zap.NewNop())

	anchor := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	raidAt := time.Date(2024, 1, 10, 20, 30, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT \\* FROM `raids`").
		WillReturnRows(raidRow(anchor, 7))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `attendances`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `attendances`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	record, err := service.Record(context.Background(), RecordInput{
		GuildID:     "g1",
		CharacterID: 7,
		RaidID:      1,
		RaidSize:    25,
		When:        raidAt,
	})
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), record.WindowStart)
	assert.True(t, record.Eligible)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_BeforeFirstResetRejected(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewService(db, zap.NewNop())

	anchor := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT \\* FROM `raids`").
		WillReturnRows(raidRow(anchor, 7))

	_, err := service.Record(context.Background(), RecordInput{
		GuildID:     "g1",
		CharacterID: 7,
		RaidID:      1,
		RaidSize:    25,
		When:        time.Date(2023, 12, 30, 20, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrBeforeFirstReset)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_DuplicateWindowRejected(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewService(db, zap.NewNop())

	anchor := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT \\* FROM `raids`").
		WillReturnRows(raidRow(anchor, 7))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `attendances`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := service.Record(context.Background(), RecordInput{
		GuildID:     "g1",
		CharacterID: 7,
		RaidID:      1,
		RaidSize:    25,
		When:        time.Date(2024, 1, 12, 19, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrAlreadyRecorded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_UnknownRaid(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewService(db, zap.NewNop())

	mock.ExpectQuery("SELECT \\* FROM `raids`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := service.Record(context.Background(), RecordInput{RaidID: 99, When: time.Now()})
	assert.ErrorIs(t, err, ErrRaidNotFound)
}

func TestAddRaid_RejectsNonPositivePeriod(t *testing.T) {
	db, _ := setupMockDB(t)
	service := NewService(db, zap.NewNop())

	_, err := service.AddRaid(context.Background(), "Molten Core", "mc", 0, time.Now())
	assert.Error(t, err)
}

func TestReport_SortsByCountThenName(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewService(db, zap.NewNop())

	anchor := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT DISTINCT raids\\.\\* FROM `raids`").
		WillReturnRows(raidRow(anchor, 7))

	rows := sqlmock.NewRows([]string{"name", "raid_id", "raid_at"}).
		AddRow("Sylva", 1, time.Date(2024, 1, 10, 20, 0, 0, 0, time.UTC)).
		AddRow("Ragnar", 1, time.Date(2024, 1, 10, 20, 0, 0, 0, time.UTC)).
		AddRow("Ragnar", 1, time.Date(2024, 1, 17, 20, 0, 0, 0, time.UTC)).
		AddRow("Morgra", 1, time.Date(2024, 1, 24, 20, 0, 0, 0, time.UTC))
	mock.ExpectQuery("SELECT characters.name AS name, attendances.id_raid AS raid_id, attendances.raid_at AS raid_at FROM `attendances`").
		WillReturnRows(rows)

	report, err := service.Report(context.Background(), "g1",
		time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 8, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, []ReportRow{
		{CharacterName: "Ragnar", Count: 2},
		{CharacterName: "Morgra", Count: 1},
		{CharacterName: "Sylva", Count: 1},
	}, report)
}

func TestReport_NoRecordsInRange(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewService(db, zap.NewNop())

	mock.ExpectQuery("SELECT DISTINCT raids\\.\\* FROM `raids`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "short_name", "reset_period_days", "reset_start"}))

	report, err := service.Report(context.Background(), "g1",
		time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 8, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Empty(t, report)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReport_DivergentAnchorsCountPerRaid(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewService(db, zap.NewNop())

	// Raid 1 resets weekly from Jan 3, raid 2 monthly from Jan 1. A
	// raid 1 record past its own widened range must not ride in on
	// raid 2's wider windows, and vice versa.
	raids := sqlmock.NewRows([]string{"id", "name", "short_name", "reset_period_days", "reset_start"}).
		AddRow(1, "Molten Core", "mc", 7, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)).
		AddRow(2, "Onyxia's Lair", "ony", 30, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	mock.ExpectQuery("SELECT DISTINCT raids\\.\\* FROM `raids`").
		WillReturnRows(raids)

	// For [Jan 8, Jan 20): raid 1 covers [Jan 3, Jan 24), raid 2
	// covers [Jan 1, Jan 31). The union fetch spans [Jan 1, Jan 31).
	rows := sqlmock.NewRows([]string{"name", "raid_id", "raid_at"}).
		AddRow("Ragnar", 1, time.Date(2024, 1, 18, 20, 0, 0, 0, time.UTC)).
		AddRow("Ragnar", 1, time.Date(2024, 1, 28, 20, 0, 0, 0, time.UTC)).
		AddRow("Sylva", 2, time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC))
	mock.ExpectQuery("SELECT characters.name AS name, attendances.id_raid AS raid_id, attendances.raid_at AS raid_at FROM `attendances`").
		WillReturnRows(rows)

	report, err := service.Report(context.Background(), "g1",
		time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, []ReportRow{
		{CharacterName: "Ragnar", Count: 1},
		{CharacterName: "Sylva", Count: 1},
	}, report)
}
