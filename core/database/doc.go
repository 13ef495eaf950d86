// Package database handles connections to the export database.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections
// from the application's configuration. Reconciliation reports can be exported
// to this database; nothing is read back from it.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
