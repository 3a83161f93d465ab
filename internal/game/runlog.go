package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"swipe/internal/config"
)

// RunLog records statistics gathered during one run.
type RunLog struct {
	ID         string    `json:"id"`
	Started    time.Time `json:"started"`
	Seconds    float64   `json:"seconds"`
	Frames     uint64    `json:"frames"`
	Distance   float64   `json:"distance"`
	TopSpeed   float64   `json:"top_speed"`
	Destroyed  int       `json:"destroyed"`
	Collisions int       `json:"collisions"`
}

// saveRunLog appends the completed run as a single JSON line to the file
// named by path, resolved with runLogPath.
func saveRunLog(path string, log RunLog) error {
	path, err := runLogPath(path)
	if err != nil || path == "" {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create run log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("encode run log: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write run log: %w", err)
	}
	return nil
}

// runLogPath maps the configured run log to a file. It returns "" when run
// logging is off.
func runLogPath(configured string) (string, error) {
	switch configured {
	case config.RunLogOff:
		return "", nil
	case "":
		dir, err := runLogDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "runs.jsonl"), nil
	}
	return configured, nil
}

// runLogDir returns the directory where run logs are stored.
// It follows the XDG base directory layout: $XDG_DATA_HOME/swipe,
// defaulting to ~/.local/share/swipe.
func runLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "swipe"), nil
}
