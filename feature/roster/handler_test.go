package roster_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"guild-ledger/core/bot"
	"guild-ledger/core/database"
	"guild-ledger/core/wow"
	"guild-ledger/feature/attendance"
	attmodels "guild-ledger/feature/attendance/models"
	charmodels "guild-ledger/feature/character/models"
	"guild-ledger/feature/roster"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleImport(t *testing.T) {
	// Setup Logger
	logger := zap.NewNop()

	// Setup In-Memory DB
	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   ":memory:",
	})
	require.NoError(t, err)

	// Migrate & Seed
	err = database.Migrate(db,
		&charmodels.Character{},
		&attmodels.Raid{},
		&attmodels.Attendance{},
	)
	require.NoError(t, err)

	raid := attmodels.Raid{
		Name:            "Molten Core",
		ShortName:       "mc",
		ResetPeriodDays: 7,
		ResetStart:      time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&raid).Error)

	warrior := charmodels.Character{
		GuildID: "g1",
		UserID:  "u1",
		Name:    "Ragnar",
		Class:   wow.ClassWarrior,
		Role:    wow.RoleTank,
		Spec:    wow.SpecNone,
		Main:    true,
	}
	require.NoError(t, db.Create(&warrior).Error)

	// Setup Feature
	attendances := attendance.NewService(db, logger)
	feature := roster.NewFeature(db, roster.NewClient("", time.Second), attendances, logger)

	app := fiber.New()
	require.NoError(t, feature.Load(app, bot.NewRouter("ledger")))

	body, err := json.Marshal(roster.ImportRequest{
		Raid: "mc",
		Size: 25,
		When: time.Date(2024, 1, 10, 20, 0, 0, 0, time.UTC),
		Signups: []roster.EventSignup{
			{Name: "Ragnar", UserID: "u1", Class: "Warrior", Spec: "Protection", Role: "Tank"},
			{Name: "Stranger", UserID: "u9", Class: "Mage", Spec: "Fire", Role: "Ranged"},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, "/guilds/g1/roster/import", bytes.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result roster.ImportResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 1, result.Written)
	assert.Equal(t, []string{"Ragnar"}, result.Matched)
	assert.Equal(t, []string{"Stranger"}, result.Unmatched)

	var count int64
	require.NoError(t, db.Model(&attmodels.Attendance{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestHandleImport_UnknownRaid(t *testing.T) {
	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   ":memory:",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db,
		&charmodels.Character{},
		&attmodels.Raid{},
		&attmodels.Attendance{},
	))

	logger := zap.NewNop()
	attendances := attendance.NewService(db, logger)
	feature := roster.NewFeature(db, roster.NewClient("", time.Second), attendances, logger)

	app := fiber.New()
	require.NoError(t, feature.Load(app, bot.NewRouter("ledger")))

	body, err := json.Marshal(roster.ImportRequest{
		Raid: "nope",
		Size: 25,
		When: time.Date(2024, 1, 10, 20, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, "/guilds/g1/roster/import", bytes.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
