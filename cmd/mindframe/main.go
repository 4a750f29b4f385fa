// Mindframe: Structured Thinking MCP Server
//
// An MCP server that gives AI coding tools structured thinking templates,
// step-by-step reasoning sessions, and verification chains for checking
// chains of claims.
//
// Usage:
//
//	mindframe serve    # Start MCP server (stdio transport)
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mindframe-mcp/mindframe/internal/config"
	mfserver "github.com/mindframe-mcp/mindframe/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("mindframe v%s\n", mfserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	s, cleanup, err := mfserver.New(config.Default())
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Mindframe v%s — Structured Thinking MCP Server

Usage:
  mindframe serve    Start the MCP server (stdio transport)

Configuration:
  MINDFRAME_DATA_DIR   Data directory (default: ~/.mindframe)
  MINDFRAME_STORE      Persistence backend: "file" (default) or "sqlite"

  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "mindframe": {
        "command": "mindframe",
        "args": ["serve"]
      }
    }
  }
`, mfserver.Version)
}
