package cmd

import (
	"log"

	"holiday-keeper/core/config"
	"holiday-keeper/core/database"
	"holiday-keeper/core/logger"
	"holiday-keeper/core/nager"
	"holiday-keeper/feature/holiday"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// bootstrapCmd represents the bootstrap command
var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Load the historical holiday range",
	Long:  `Fetches every country and the configured year range from the Nager.Date API and stores it. Safe to re-run; existing rows are overwritten in place.`,
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

		feat, err := holiday.NewFeature(db, nager.NewClient(cfg.API), logg, cfg.API, cfg.Sync)
		if err != nil {
			return err
		}

		report, err := feat.Bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		logg.Info("Bootstrap finished",
			zap.Int("countries", report.Countries),
			zap.Int("holidays", report.Holidays),
			zap.Int("failed", report.Failed),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(bootstrapCmd)
}
