package locations

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

// Save writes the directory to path as a flat JSON object, replacing the
// file atomically via a temp file in the same directory.
func (d *Directory) Save(path string) error {
	data, err := json.MarshalIndent(d.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal locations: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir locations dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "locations-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp locations file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp locations file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp locations file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace locations file: %w", err)
	}
	committed = true
	return nil
}

// Persist saves the directory best-effort: a few quick retries, then the
// failure is logged at debug level and dropped. In-memory state stays
// authoritative for the session; an unwritable disk must never block or
// crash an edit.
func (d *Directory) Persist(path string) {
	err := retry.Do(
		func() error { return d.Save(path) },
		retry.Attempts(3),
		retry.Delay(50*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		d.logger.Debug("locations persist failed", "path", path, "error", err)
	}
}
