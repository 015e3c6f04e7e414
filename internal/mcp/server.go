package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/mortality/internal/dataset"
	"github.com/rpggio/mortality/internal/domain/comparison"
	"github.com/rpggio/mortality/internal/report"
)

// ComparisonService defines comparison operations needed by MCP.
type ComparisonService interface {
	Compare(ctx context.Context, req comparison.CompareRequest) (*comparison.Comparison, error)
	Run(ctx context.Context, rows []dataset.Row, def comparison.Definition) (*comparison.Comparison, error)
	Get(ctx context.Context, id string) (*comparison.Comparison, error)
	List(ctx context.Context, opts comparison.ListOptions) ([]comparison.Comparison, error)
}

// Config contains server configuration.
type Config struct {
	Comparisons ComparisonService
	// Rows is the loaded dataset. It is read-only once the server starts.
	Rows          []dataset.Row
	ReportOptions report.Options
	Version       string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "mortality",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, &tools{cfg: cfg})

	return server
}
