// Package storage provides persistent storage for preferences, game statistics and saved games.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chessplay"

// platformDataHome returns the per-user base directory that applications keep their data in.
func platformDataHome() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "AppData", "Roaming"), nil
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}

// GetDataDir returns the chessplay data directory, creating it if needed:
// ~/Library/Application Support/chessplay on macOS, %APPDATA%\chessplay on
// Windows and $XDG_DATA_HOME/chessplay (or ~/.local/share/chessplay) elsewhere.
func GetDataDir() (string, error) {
	base, err := platformDataHome()
	if err != nil {
		return "", fmt.Errorf("locate data directory: %w", err)
	}
	return ensureDir(filepath.Join(base, appName))
}

// DatabaseDir returns the directory holding the game database. A non-empty
// override is used as given; otherwise the database lives in "db" under
// GetDataDir. The directory is created if it does not exist.
func DatabaseDir(override string) (string, error) {
	if override != "" {
		return ensureDir(override)
	}
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(dataDir, "db"))
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return dir, nil
}
