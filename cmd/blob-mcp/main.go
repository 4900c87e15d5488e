// Command blob-mcp runs the blob detection MCP server on stdin/stdout.
//
// The server exposes multi-scale blob detection (LoG, DoG, DoH) plus image
// inspection and overlay rendering as MCP tools. All diagnostics go to
// stderr; stdout is reserved for the protocol.
//
// Environment:
//
//	BLOB_MCP_LOG_LEVEL=debug   log every request to stderr
package main

import (
	"fmt"
	"log"
	"os"

	"blob-tools/internal/server"
)

// Set at build time via -ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetPrefix("blob-mcp: ")
	log.SetFlags(log.LstdFlags)

	for _, arg := range os.Args[1:] {
		switch arg {
		case "--version", "-v":
			fmt.Printf("blob-mcp %s (built %s, commit %s)\n", Version, BuildTime, GitCommit)
			return
		case "--help", "-h":
			fmt.Println("blob-mcp - multi-scale blob detection MCP server")
			fmt.Println()
			fmt.Println("Speaks MCP (JSON-RPC 2.0) over stdin/stdout; run it from an MCP client.")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v   print version and exit")
			fmt.Println("  --help, -h      print this help and exit")
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown option: %s\n", arg)
			os.Exit(2)
		}
	}

	log.Printf("starting %s", Version)
	if err := server.New().Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Print("shutting down")
}
