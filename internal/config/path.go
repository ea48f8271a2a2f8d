// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DataDir returns the default directory for the invoice database and
// the knowledge base file.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "gstmind")
}

// DefaultDatabasePath is where the invoice store lives unless configured.
func DefaultDatabasePath() string {
	return filepath.Join(DataDir(), "invoices.db")
}

// DefaultKnowledgeBasePath is where the rule knowledge base lives unless
// configured.
func DefaultKnowledgeBasePath() string {
	return filepath.Join(DataDir(), "gst_kb.json")
}
