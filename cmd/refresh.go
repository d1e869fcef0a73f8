package cmd

import (
	"fmt"
	"log"
	"strconv"

	"holiday-keeper/core/config"
	"holiday-keeper/core/database"
	"holiday-keeper/core/logger"
	"holiday-keeper/core/nager"
	"holiday-keeper/feature/holiday"

	"github.com/spf13/cobra"
)

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh <countryCode> <year>",
	Short: "Re-sync one country and year",
	Long:  `Fetches the holidays of one country and year from the Nager.Date API and reconciles the stored rows against it.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("year must be an integer: %q", args[1])
		}

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
		return feat.Refresh(cmd.Context(), args[0], year)
	},
}

func init() {
	RootCmd.AddCommand(refreshCmd)
}
