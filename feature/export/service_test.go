package export

import (
	"context"
	"io"
	"testing"

	"guild-ledger/core/storage/mocks"
	"guild-ledger/feature/attendance"
	"guild-ledger/feature/dkp"
	"guild-ledger/feature/item"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New()
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

	return gormDB, mockDB
}

func newExportService(t *testing.T, client *mocks.Client, db *gorm.DB) *Service {
	items := item.NewService(db, nil, zap.NewNop())
	standings := dkp.NewService(db, items, nil, zap.NewNop())
	attendances := attendance.NewService(db, zap.NewNop())
	return NewService(client, "exports", standings, attendances, zap.NewNop())
}

func TestEnsureBucket_CreatesWhenMissing(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "exports").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "exports", mock.Anything).Return(nil)

	db, _ := setupMockDB(t)
	service := newExportService(t, client, db)

	err := service.EnsureBucket(context.Background())
	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestEnsureBucket_SkipsWhenPresent(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "exports").Return(true, nil)

	db, _ := setupMockDB(t)
	service := newExportService(t, client, db)

	err := service.EnsureBucket(context.Background())
	assert.NoError(t, err)
	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestExportStandings_UploadsCSV(t *testing.T) {
	db, mockDB := setupMockDB(t)

	characterRows := sqlmock.NewRows([]string{"id", "id_guild", "id_user", "name", "class", "role", "spec", "is_main"}).
		AddRow(1, "g1", "u1", "Ragnar", 1, 1, 0, true)
	mockDB.ExpectQuery("SELECT \\* FROM `characters`").
		WillReturnRows(characterRows)
	mockDB.ExpectQuery("SELECT \\* FROM `attendances`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mockDB.ExpectQuery("SELECT \\* FROM `loots`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mockDB.ExpectQuery("SELECT \\* FROM `role_labels`").
		WillReturnRows(sqlmock.NewRows([]string{"id_guild"}))
	mockDB.ExpectQuery("SELECT \\* FROM `items`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	var uploaded []byte
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "exports", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			reader := args.Get(3).(io.Reader)
			uploaded, _ = io.ReadAll(reader)
		}).
		Return(minio.UploadInfo{}, nil)

	service := newExportService(t, client, db)
	name, err := service.ExportStandings(context.Background(), "g1")
	require.NoError(t, err)

	assert.Contains(t, name, "g1/standings-")
	assert.Contains(t, string(uploaded), "character,main,score")
	assert.Contains(t, string(uploaded), "Ragnar,true,0")
	client.AssertExpectations(t)
}
