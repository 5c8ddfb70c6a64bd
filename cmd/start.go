package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guild-ledger/core/bot"
	"guild-ledger/core/config"
	"guild-ledger/core/database"
	"guild-ledger/core/loader"
	"guild-ledger/core/logger"
	"guild-ledger/core/middleware/auth"
	"guild-ledger/core/middleware/traceid"
	"guild-ledger/core/storage"

	"guild-ledger/feature/attendance"
	"guild-ledger/feature/character"
	"guild-ledger/feature/dkp"
	"guild-ledger/feature/export"
	"guild-ledger/feature/item"
	"guild-ledger/feature/recipe"
	"guild-ledger/feature/roster"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the guild ledger bot",
	Long:  `Connects to Discord, starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := database.Migrate(db, allModels()...); err != nil {
			logg.Fatal("Failed to migrate database schema", zap.Error(err))
		}
		logg.Info("Connected to database")

		// 4. Initialize Storage (Optional)
		var store storage.Client
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Optional storage connection failed, exports disabled", zap.Error(err))
		} else {
			store = client
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// TraceID must come first so everything downstream is traceable.
		app.Use(traceid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithTraceID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 6. Initialize Bot Router and Features
		commands := bot.NewRouter(cfg.Discord.Prefix)

		characters := character.NewFeature(db, logg)
		attendances := attendance.NewFeature(db, characters.Service(), logg)
		items := item.NewFeature(db, characters.Service(), logg)
		standings := dkp.NewFeature(db, items.Service(), nil, logg)

		client := roster.NewClient("", 10*time.Second)
		rosters := roster.NewFeature(db, client, attendances.Service(), logg)

		mgr := loader.NewManager()
		mgr.Register(characters)
		mgr.Register(attendances)
		mgr.Register(items)
		mgr.Register(standings)
		mgr.Register(rosters)
		mgr.Register(recipe.NewFeature(db, characters.Service(), logg))
		mgr.Register(export.NewFeature(store, cfg.Storage.Bucket, standings.Service(), attendances.Service(), logg))

		if err := mgr.LoadAll(app, commands); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server and Bot
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		discord, err := bot.New(cfg.Discord, commands, logg)
		if err != nil {
			logg.Fatal("Failed to create bot", zap.Error(err))
		}
		go func() {
			if err := discord.Run(ctx); err != nil {
				logg.Fatal("Bot failed", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down...")
		cancel()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
