package cmd

import (
	"context"
	"fmt"
	"log"

	"guild-ledger/core/config"
	"guild-ledger/core/database"
	"guild-ledger/core/logger"
	"guild-ledger/feature/dkp"
	"guild-ledger/feature/item"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// dkpCmd represents the dkp command
var dkpCmd = &cobra.Command{
	Use:   "dkp <guild-id>",
	Short: "Print the DKP standings of a guild",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, logg, err := dkpService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		standings, err := service.Standings(context.Background(), args[0])
		if err != nil {
			return err
		}
		for _, standing := range standings {
			fmt.Printf("%s\t%d\n", standing.CharacterName, standing.Score)
		}
		return nil
	},
}

// dkpResetCmd represents the dkp reset command
var dkpResetCmd = &cobra.Command{
	Use:   "reset <guild-id>",
	Short: "Flip all of a guild's records out of DKP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service, logg, err := dkpService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		if err := service.Reset(context.Background(), args[0]); err != nil {
			return err
		}
		logg.Info("DKP reset applied", zap.String("guild", args[0]))
		return nil
	},
}

func dkpService() (*dkp.Service, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	items := item.NewService(db, nil, logg)
	return dkp.NewService(db, items, nil, logg), logg, nil
}

func init() {
	dkpCmd.AddCommand(dkpResetCmd)
	RootCmd.AddCommand(dkpCmd)
}
