package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maxmoro/lg-render/internal/renderer"
)

type renderOptions struct {
	root         *rootOptions
	rootTemplate string
	taskText     string
	tags         []string
}

func newRenderCommand(root *rootOptions) *cobra.Command {
	o := &renderOptions{root: root}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a .tpl.md/.ctx.md document to stdout",
		Long: `Render a .tpl.md or .ctx.md document into a single prompt string,
resolving section/include/markdown/task placeholders and evaluating any
conditional or mode blocks, and print the result to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd)
		},
	}

	cmd.Flags().StringVar(&o.rootTemplate, "root-template", "", `document to render, as "kind:name" or "@origin:kind:name" (required)`)
	cmd.Flags().StringVar(&o.taskText, "task", "", "task text available to ${task} placeholders")
	cmd.Flags().StringArrayVar(&o.tags, "tag", nil, "extra tag active for this render (repeatable)")
	_ = cmd.MarkFlagRequired("root-template")

	return cmd
}

func (o *renderOptions) Run(cmd *cobra.Command) error {
	r, err := renderer.New(o.root.cfg)
	if err != nil {
		return fmt.Errorf("assembling renderer: %w", err)
	}

	out, err := r.Render(renderer.Options{
		RootTemplate: o.rootTemplate,
		TaskText:     o.taskText,
		ExtraTags:    o.tags,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
