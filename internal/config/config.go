// Package config holds runtime configuration for the mindframe server.
//
// Configuration is environment-driven — there is no config file. The data
// directory defaults to ~/.mindframe and can be overridden for tests or
// multi-profile setups.
package config

import (
	"os"
	"path/filepath"
)

// Backend selects the persistence implementation for state datasets.
type Backend string

const (
	// BackendFile stores each dataset as a JSON document on disk.
	BackendFile Backend = "file"
	// BackendSQLite stores datasets as rows in a local SQLite database.
	BackendSQLite Backend = "sqlite"
)

// Config holds server configuration.
type Config struct {
	// DataDir is where state datasets live (~/.mindframe by default).
	DataDir string
	// Backend selects the blobstore implementation.
	Backend Backend
}

// Default returns the configuration with environment overrides applied.
//
//	MINDFRAME_DATA_DIR — overrides the data directory
//	MINDFRAME_STORE    — "file" (default) or "sqlite"
func Default() Config {
	home, _ := os.UserHomeDir()
	cfg := Config{
		DataDir: filepath.Join(home, ".mindframe"),
		Backend: BackendFile,
	}

	if dir := os.Getenv("MINDFRAME_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}
	if store := os.Getenv("MINDFRAME_STORE"); store == string(BackendSQLite) {
		cfg.Backend = BackendSQLite
	}

	return cfg
}
