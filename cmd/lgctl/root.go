package main

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maxmoro/lg-render/internal/config"
	"github.com/maxmoro/lg-render/internal/lgerrors"
)

// rootOptions are the flags every subcommand shares: where to find the
// config file and how to construct a logger from it.
type rootOptions struct {
	configPath string
	cfg        *config.Config
}

// NewLgctlCommand builds the lgctl root command with every subcommand
// attached, using a plain NewCmdX(...) *cobra.Command constructor per
// subcommand, without a kubectl-style factory/CommandGroups layer — this
// tool has four subcommands, not thirty.
func NewLgctlCommand() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "lgctl",
		Short:         "lgctl renders lg-render context templates and runs the MCP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(o.configPath)
			if err != nil {
				return err
			}
			o.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&o.configPath, "config", "", "path to lg-render.toml (default: search ./lg-render.toml, then ~/.config/lg-render/lg-render.toml)")

	cmd.AddCommand(newRenderCommand(o))
	cmd.AddCommand(newValidateCommand(o))
	cmd.AddCommand(newCacheCommand(o))
	cmd.AddCommand(newMCPCommand(o))

	return cmd
}

// newLogger builds the shared structured logger (stderr, JSON, level from
// config) every subcommand that talks to the engine uses.
func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// exitCodeFor maps an error to the process exit code: 2 for a
// user-syntax (lex/parse) error, 1 for every other kind, matching the
// conventional "usage error vs. everything else" split most CLIs use for
// exit code 2.
func exitCodeFor(err error) int {
	var lerr *lgerrors.Error
	if errors.As(err, &lerr) && lerr.Kind == lgerrors.KindUserSyntax {
		return 2
	}
	return 1
}
