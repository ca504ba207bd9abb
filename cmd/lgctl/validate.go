package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maxmoro/lg-render/internal/guards"
	"github.com/maxmoro/lg-render/internal/renderer"
)

type validateOptions struct {
	root         *rootOptions
	rootTemplate string
	noLint       bool
	force        bool
}

// newValidateCommand checks that a document lexes, parses, resolves, and
// renders without error, without printing the rendered output. The engine
// has no separate parse/resolve-only entry point — one pipeline runs
// lex -> parse -> resolve -> render, with no standalone checker — so
// validation is a full render whose output is discarded — any lex,
// parse, resolver, evaluator, or processor error will still surface
// exactly as it would during a real render. Ahead of that, it runs the
// internal/guards authoring-lint pass over the document's raw source
// (skip with --no-lint).
func newValidateCommand(root *rootOptions) *cobra.Command {
	o := &validateOptions{root: root}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that a document renders without error",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd)
		},
	}

	cmd.Flags().StringVar(&o.rootTemplate, "root-template", "", `document to validate, as "kind:name" or "@origin:kind:name" (required)`)
	cmd.Flags().BoolVar(&o.noLint, "no-lint", false, "skip the authoring-lint pass and only check that the document renders")
	cmd.Flags().BoolVar(&o.force, "force", false, "proceed past SOFT_BLOCK lint findings")
	_ = cmd.MarkFlagRequired("root-template")

	return cmd
}

func (o *validateOptions) Run(cmd *cobra.Command) error {
	r, err := renderer.New(o.root.cfg)
	if err != nil {
		return fmt.Errorf("assembling renderer: %w", err)
	}

	if !o.noLint {
		src, err := r.Source(o.rootTemplate)
		if err != nil {
			return err
		}
		gctx := guards.PopulateDocumentState(o.rootTemplate, src, r.Modes())
		gctx.Force = o.force
		outcome := guards.NewRunner().Run(context.Background(), gctx, guards.DocumentGuards())
		if advisory := outcome.FormatAdvisoryMessage(); advisory != "" {
			fmt.Fprint(cmd.OutOrStdout(), advisory)
		}
		if outcome.Blocked {
			return fmt.Errorf("%s", outcome.FormatBlockMessage())
		}
	}

	if _, err := r.Render(renderer.Options{RootTemplate: o.rootTemplate}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", o.rootTemplate)
	return nil
}
