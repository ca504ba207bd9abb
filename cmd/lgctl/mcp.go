package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/maxmoro/lg-render/internal/cache"
	"github.com/maxmoro/lg-render/internal/content"
	"github.com/maxmoro/lg-render/internal/mcp"
	"github.com/maxmoro/lg-render/internal/renderer"
	"github.com/maxmoro/lg-render/internal/scheduler"
	rendertool "github.com/maxmoro/lg-render/internal/tools/render"
)

func newMCPCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server (stdio or http, per config)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCPServer(root)
		},
	}

	cmd.AddCommand(newMCPInfoCommand())

	return cmd
}

func runMCPServer(root *rootOptions) error {
	cfg := root.cfg
	logger := newLogger(cfg)

	version := cfg.Server.Version
	if Version != "dev" {
		version = Version
	}

	logger.Info("starting lgctl mcp", "version", version, "transport", cfg.Transport.Mode, "repo_root", cfg.Repo.Root)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rend, err := renderer.New(cfg)
	if err != nil {
		return fmt.Errorf("assembling renderer: %w", err)
	}

	if cfg.CacheGC.Enabled {
		cacheDir, err := resolveCacheDir(cfg)
		if err != nil {
			return fmt.Errorf("resolving cache dir for gc: %w", err)
		}
		gcJob := &cache.GCJob{
			Cache:  cache.New(cacheDir, cfg.Repo.CacheEnable),
			MaxAge: time.Duration(cfg.CacheGC.MaxAgeHours) * time.Hour,
			Logger: logger,
		}
		sched := scheduler.NewScheduler(logger)
		sched.AddJob(gcJob, time.Duration(cfg.CacheGC.IntervalHours)*time.Hour)
		sched.Start(ctx)
		defer sched.Stop()
	}

	registry := mcp.NewRegistry()
	registry.Register(rendertool.NewRenderContext(rend))

	registry.RegisterPrompt(&content.AuthorTemplatePrompt{})
	registry.RegisterPrompt(&content.ConfigureModesPrompt{})
	registry.RegisterPrompt(&content.DebugRenderPrompt{})

	registry.RegisterResource(&content.GrammarResource{})
	registry.RegisterResource(&content.ConditionGrammarResource{})

	server := mcp.NewServer(registry, mcp.ServerInfo{Name: cfg.Server.Name, Version: version}, logger)

	switch cfg.Transport.Mode {
	case "http":
		httpServer := mcp.NewHTTPServer(server, cfg.Transport.CORSOrigins, logger)
		addr := cfg.Transport.Host + ":" + cfg.Transport.Port
		logger.Info("listening", "addr", addr)
		srv := &http.Server{Addr: addr, Handler: httpServer.Handler()}
		go func() {
			<-ctx.Done()
			_ = srv.Close()
		}()
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	default:
		return server.Run(ctx)
	}
}
