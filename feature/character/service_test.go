package character

import (
	"context"
	"testing"

	"guild-ledger/core/wow"

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

func TestAdd_FirstCharacterBecomesMain(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewService(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `characters`").
		WithArgs("g1", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `characters`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	character, err := service.Add(context.Background(), "g1", "u1", "ragnar", wow.ClassWarrior, wow.RoleTank, wow.SpecNone, false)
	assert.NoError(t, err)
	assert.Equal(t, "Ragnar", character.Name)
	assert.True(t, character.Main)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdd_SecondCharacterIsAlt(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewService(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `characters`").
		WithArgs("g1", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec("INSERT INTO `characters`").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	character, err := service.Add(context.Background(), "g1", "u1", "Sylva", wow.ClassHunter, wow.RoleRangedDps, wow.SpecNone, false)
	assert.NoError(t, err)
	assert.False(t, character.Main)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdd_MainRequestDemotesPrevious(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewService(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `characters`").
		WithArgs("g1", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec("UPDATE `characters` SET `is_main`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO `characters`").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	character, err := service.Add(context.Background(), "g1", "u1", "Morgra", wow.ClassPriest, wow.RoleHealer, wow.SpecPriestHoly, true)
	assert.NoError(t, err)
	assert.True(t, character.Main)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdd_RejectsWrongSpec(t *testing.T) {
	db, _ := setupMockDB(t)
	service := NewService(db, zap.NewNop())

	_, err := service.Add(context.Background(), "g1", "u1", "Bad", wow.ClassWarrior, wow.RoleTank, wow.SpecPriestHoly, false)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not belong")
}

func TestGet_MainWhenNameEmpty(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewService(db, zap.NewNop())

	rows := sqlmock.NewRows([]string{"id", "id_guild", "id_user", "name", "class", "role", "spec", "is_main"}).
		AddRow(7, "g1", "u1", "Ragnar", int(wow.ClassWarrior), int(wow.RoleTank), 0, true)
	mock.ExpectQuery("SELECT \\* FROM `characters`").
		WillReturnRows(rows)

	character, err := service.Get(context.Background(), "g1", "u1", "")
	assert.NoError(t, err)
	assert.Equal(t, "Ragnar", character.Name)
	assert.True(t, character.Main)
}

func TestGet_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewService(db, zap.NewNop())

	mock.ExpectQuery("SELECT \\* FROM `characters`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := service.Get(context.Background(), "g1", "u1", "Nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemove_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	service := NewService(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `characters`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := service.Remove(context.Background(), "g1", "u1", "Nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ragnar", "Ragnar"},
		{"RAGNAR", "Ragnar"},
		{"ärthas", "Ärthas"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, capitalize(tt.in))
	}
}
