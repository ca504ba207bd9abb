package cache

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// GCJob implements scheduler.Job: it sweeps Cache.Dir and removes
// entry files whose modification time is older than MaxAge, the processed-
// blob cache's only housekeeping duty. Age-based eviction is this
// engine's own addition on top of the cache's content-addressed model.
type GCJob struct {
	Cache  *Cache
	MaxAge time.Duration
	Logger *slog.Logger
}

func (j *GCJob) Name() string { return "processed-blob-cache-gc" }

func (j *GCJob) Run(ctx context.Context) error {
	if !j.Cache.Enabled {
		return nil
	}
	logger := j.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cutoff := time.Now().Add(-j.MaxAge)
	removed := 0

	err := filepath.WalkDir(j.Cache.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // best-effort: a stat failure on one entry shouldn't abort the sweep
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err == nil {
			removed++
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("processed-blob cache gc complete", "removed", removed, "max_age", j.MaxAge)
	return nil
}
