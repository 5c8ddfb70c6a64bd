package dkp

import (
	"context"
	"testing"
	"time"

	"guild-ledger/feature/item"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func TestStandings_ReplaysLedgers(t *testing.T) {
	db, mock := setupMockDB(t)
	items := item.NewService(db, nil, zap.NewNop())
	service := NewService(db, items, nil, zap.NewNop())

	now := time.Now()

	characterRows := sqlmock.NewRows([]string{"id", "id_guild", "id_user", "name", "class", "role", "spec", "is_main"}).
		AddRow(1, "g1", "u1", "Ragnar", 1, 1, 0, true)
	mock.ExpectQuery("SELECT \\* FROM `characters`").
		WillReturnRows(characterRows)

	attendanceRows := sqlmock.NewRows([]string{"id", "id_guild", "id_character", "id_raid", "raid_size", "raid_at", "window_start", "cancelled", "guild_event", "eligible"}).
		AddRow(1, "g1", 1, 1, 25, now, now, false, false, true).
		AddRow(2, "g1", 1, 1, 25, now, now, false, true, true).
		AddRow(3, "g1", 1, 1, 25, now, now, false, false, false)
	mock.ExpectQuery("SELECT \\* FROM `attendances`").
		WillReturnRows(attendanceRows)

	lootRows := sqlmock.NewRows([]string{"id", "id_character", "id_item", "in_dkp", "created_at"}).
		AddRow(1, 1, 10, true, now)
	mock.ExpectQuery("SELECT \\* FROM `loots`").
		WillReturnRows(lootRows)

	labelRows := sqlmock.NewRows([]string{"id_guild", "label", "class", "role", "spec"}).
		AddRow("g1", "Protection", 1, 1, 0)
	mock.ExpectQuery("SELECT \\* FROM `role_labels`").
		WillReturnRows(labelRows)

	itemRows := sqlmock.NewRows([]string{"id", "id_guild", "name", "boss", "max_count", "priority_raw", "created_at"}).
		AddRow(10, "g1", "Shield", "Boss", 0, "Protection|>>", now)
	mock.ExpectQuery("SELECT \\* FROM `items`").
		WillReturnRows(itemRows)

	standings, err := service.Standings(context.Background(), "g1")
	require.NoError(t, err)
	require.Len(t, standings, 1)

	// One raid (+5), one guild event (+3), one ineligible record (0)
	// and one best-in-slot loot (-5).
	assert.Equal(t, Standing{CharacterName: "Ragnar", Main: true, Score: 3}, standings[0])
}

func TestStandings_EmptyGuild(t *testing.T) {
	db, mock := setupMockDB(t)
	items := item.NewService(db, nil, zap.NewNop())
	service := NewService(db, items, nil, zap.NewNop())

	mock.ExpectQuery("SELECT \\* FROM `characters`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	standings, err := service.Standings(context.Background(), "g1")
	assert.NoError(t, err)
	assert.Empty(t, standings)
}

func TestReset_FlipsBothLedgersInOneTransaction(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewService(db, nil, nil, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `attendances` SET `eligible`").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("UPDATE `loots` SET `in_dkp`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := service.Reset(context.Background(), "g1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReset_RollsBackOnFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewService(db, nil, nil, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `attendances` SET `eligible`").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := service.Reset(context.Background(), "g1")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
