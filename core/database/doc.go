// Package database handles database connections.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// the connection based on the application's configuration.
//
// # Connect
//
// The Connect function establishes a connection using the configured driver.
// MySQL is the production driver and gets a tuned connection pool plus a
// startup ping; sqlite backs the test suites with in-memory databases.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
