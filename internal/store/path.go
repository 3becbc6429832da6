package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDBPath returns the database location: the APP_DATABASE_DSN env var
// when set, otherwise a SQLite file under the XDG data directory.
func DefaultDBPath() (string, error) {
	if p := os.Getenv("APP_DATABASE_DSN"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "zoelive", "zoelive.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of a SQLite path if it doesn't
// exist. Postgres DSNs are left alone.
func EnsureDir(path string) error {
	if strings.HasPrefix(path, "postgres://") || strings.HasPrefix(path, "postgresql://") {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return nil
}
