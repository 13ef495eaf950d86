// Package config provides configuration management for table-reconcile.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from `default` struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Reconcile: default delimiter, header flag, tolerance and output prefix
//   - Server: HTTP server settings (port, API key)
//   - Storage: S3/MinIO credentials, bucket and artifact upload settings
//   - Database: export database connection details
//   - Log: Logging level and format
//
// Environment variables map to nested keys by replacing "." with "_", e.g.
// RECONCILE_TOLERANCE sets reconcile.tolerance.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Reconcile.Delimiter)
package config
