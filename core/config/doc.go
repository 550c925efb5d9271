// Package config provides configuration management for student-sync.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, body limit)
//   - Database: MySQL or SQLite connection details
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Import: chunk size, match mode, default source and upload archiving
//
// Defaults come from the `default` struct tags. Nested keys map to upper
// snake case environment variables, so import.chunk_size is read from
// IMPORT_CHUNK_SIZE.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Import.ChunkSize)
package config
