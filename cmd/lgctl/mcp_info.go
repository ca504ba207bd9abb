package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// newMCPInfoCommand prints MCP client-config snippets (internal/mcp's
// HTTP bearer-token gate is the only auth concept in this domain — there
// is no per-project token to template in, so these snippets document the
// transport choice instead of a credential).
func newMCPInfoCommand() *cobra.Command {
	var opencode, claude, cursor bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print MCP client configuration snippets",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case opencode:
				printClientConfig(out, "OpenCode", ".opencode.json or opencode.json")
			case claude:
				printClientConfig(out, "Claude Desktop", "claude_desktop_config.json")
			case cursor:
				printClientConfig(out, "Cursor", ".cursor/mcp.json")
			default:
				printGeneralInfo(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opencode, "opencode", false, "show OpenCode MCP client configuration")
	cmd.Flags().BoolVar(&claude, "claude", false, "show Claude Desktop MCP client configuration")
	cmd.Flags().BoolVar(&cursor, "cursor", false, "show Cursor MCP client configuration")

	return cmd
}

func printGeneralInfo(out io.Writer) {
	fmt.Fprintf(out, `lgctl %s — lg-render context assembler

lgctl renders .tpl.md/.ctx.md documents into a single prompt string by
resolving section/include/markdown/task placeholders and evaluating
conditional and mode blocks, then serves that same capability as an MCP
tool for editor/agent integration.

TRANSPORT MODES

  stdio (default)
    Communicates over stdin/stdout using JSON-RPC 2.0. Used when launched
    as a subprocess by an MCP client.

  http
    Runs as a standalone HTTP server (MCP Streamable HTTP transport,
    spec 2025-03-26). Every request needs a Bearer token in the
    Authorization header — checked only for presence, since this server
    has no per-request identity of its own to authorize against.

    Endpoint:      POST /mcp
    Health check:  GET /health
    Default port:  21452

TOOLS (1)

  render_context   Render a .tpl.md/.ctx.md document into a prompt string.

PROMPTS (3)

  author-template    Guide for authoring a .tpl.md/.ctx.md file
  configure-modes    Guide for writing the tag-set/mode-set YAML
  debug-render       Guide for diagnosing a rendering failure

RESOURCES (2)

  lg://grammar             Template placeholder/directive grammar
  lg://condition-grammar   Condition sub-language grammar

CLIENT CONFIGURATION

  To see configuration for a specific MCP client, run:

    lgctl mcp info --opencode    OpenCode (.opencode.json)
    lgctl mcp info --claude      Claude Desktop (claude_desktop_config.json)
    lgctl mcp info --cursor      Cursor (.cursor/mcp.json)
`, Version)
}

func printClientConfig(out io.Writer, client, file string) {
	fmt.Fprintf(out, `%s — stdio mode
%s

Add to %s:

{
  "mcpServers": {
    "lg-render": {
      "command": "lgctl",
      "args": ["mcp"]
    }
  }
}

%s — HTTP mode (remote server)
%s

Add to %s:

{
  "mcpServers": {
    "lg-render": {
      "type": "streamable-http",
      "url": "http://your-lg-render-server:21452/mcp",
      "headers": {
        "Authorization": "Bearer your-access-token"
      }
    }
  }
}
`, client, strings.Repeat("─", len(client)+14), file, client, strings.Repeat("─", len(client)+30), file)
}
