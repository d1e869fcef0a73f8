// Package config provides configuration management for Holiday Keeper.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL connection details
//   - Log: Logging level and format
//   - API: External holiday API client settings (base URL, retry budget, timeout)
//   - Sync: Batch size, worker pool, bootstrap year range and refresh schedule
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
