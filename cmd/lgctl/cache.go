package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/maxmoro/lg-render/internal/cache"
	"github.com/maxmoro/lg-render/internal/config"
)

func newCacheCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the processed-blob cache",
	}

	cmd.AddCommand(newCacheGCCommand(root))
	cmd.AddCommand(newCacheClearCommand(root))

	return cmd
}

func resolveCacheDir(cfg *config.Config) (string, error) {
	root, err := filepath.Abs(cfg.Repo.Root)
	if err != nil {
		return "", fmt.Errorf("resolving repo root: %w", err)
	}
	dir := cfg.Repo.CacheDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return dir, nil
}

func newCacheGCCommand(root *rootOptions) *cobra.Command {
	var maxAgeHours int

	cmd := &cobra.Command{
		Use:   "gc",
		Short: "Sweep cache entries older than --max-age-hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg
			dir, err := resolveCacheDir(cfg)
			if err != nil {
				return err
			}

			hours := maxAgeHours
			if hours <= 0 {
				hours = cfg.CacheGC.MaxAgeHours
			}

			job := &cache.GCJob{
				Cache:  cache.New(dir, true),
				MaxAge: time.Duration(hours) * time.Hour,
				Logger: newLogger(cfg),
			}
			return job.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&maxAgeHours, "max-age-hours", 0, "entries older than this are removed (default: repo.cache_gc.max_age_hours)")

	return cmd
}

func newCacheClearCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every entry from the processed-blob cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveCacheDir(root.cfg)
			if err != nil {
				return err
			}
			if err := os.RemoveAll(dir); err != nil {
				return fmt.Errorf("clearing cache dir %s: %w", dir, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", dir)
			return nil
		},
	}
}
