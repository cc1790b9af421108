package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mlmd/store/internal/accessobject/sqlitestore"
	"github.com/mlmd/store/internal/mdserver"
	"github.com/mlmd/store/internal/mdstore"
	"github.com/mlmd/store/internal/txn/sqlitetxn"
)

func main() {
	transport := flag.String("transport", "stdio", "Transport mode: stdio or http")
	port := flag.String("port", "8081", "HTTP port (only used with --transport http)")
	dataDir := flag.String("data-dir", "./data", "Directory for the SQLite metadata store")
	downgrade := flag.Int("downgrade-to-schema-version", -1, "If >= 0, downgrade the schema and refuse to serve")
	flag.Parse()

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data dir: %v", err)
	}

	backing, err := sqlitestore.Open(*dataDir + "/metadata.sqlite")
	if err != nil {
		log.Fatalf("Failed to open metadata store: %v", err)
	}
	defer backing.Close()

	executor := sqlitetxn.New(backing)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := mdstore.Open(ctx, executor, mdstore.MigrationOptions{
		DowngradeToSchemaVersion: int32(*downgrade),
	})
	if err != nil {
		log.Fatalf("Failed to open metadata facade: %v", err)
	}

	srv := mdserver.New(store)

	switch *transport {
	case "stdio":
		log.Println("Metadata store MCP server starting (stdio)")
		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case "http":
		addr := ":" + *port
		handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
			return srv
		}, nil)
		log.Printf("Metadata store MCP server listening on %s", addr)
		if err := http.ListenAndServe(addr, handler); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	default:
		log.Fatalf("Unknown transport: %s (use stdio or http)", *transport)
	}
}
