package cmd

import (
	"context"
	"log"
	"time"

	"guild-ledger/core/config"
	"guild-ledger/core/database"
	"guild-ledger/core/logger"
	"guild-ledger/core/storage"
	"guild-ledger/feature/attendance"
	"guild-ledger/feature/dkp"
	"guild-ledger/feature/export"
	"guild-ledger/feature/item"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exportDays int

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <guild-id>",
	Short: "Upload CSV snapshots of a guild's standings and attendance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return err
		}

		items := item.NewService(db, nil, logg)
		standings := dkp.NewService(db, items, nil, logg)
		attendances := attendance.NewService(db, logg)
		service := export.NewService(store, cfg.Storage.Bucket, standings, attendances, logg)

		ctx := context.Background()
		if err := service.EnsureBucket(ctx); err != nil {
			return err
		}

		guildID := args[0]
		name, err := service.ExportStandings(ctx, guildID)
		if err != nil {
			return err
		}
		logg.Info("Standings exported", zap.String("object", name))

		to := time.Now().UTC()
		from := to.AddDate(0, 0, -exportDays)
		name, err = service.ExportAttendance(ctx, guildID, from, to)
		if err != nil {
			return err
		}
		logg.Info("Attendance exported", zap.String("object", name))
		return nil
	},
}

func init() {
	exportCmd.Flags().IntVar(&exportDays, "days", 30, "attendance report range in days")
	RootCmd.AddCommand(exportCmd)
}
