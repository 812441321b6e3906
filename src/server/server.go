// Package server binds the analytics entry points to MCP tools served over
// streamable HTTP.
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/username/stonefolio/src/services"
)

type Config struct {
	Version string
	Logger  *slog.Logger
	Service services.AnalyticsService
}

func (c Config) Validate() error {
	if c.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	if c.Service == nil {
		return fmt.Errorf("analytics service is required")
	}
	return nil
}

type Server struct {
	log *slog.Logger
	mcp *mcp.Server
}

// New builds the MCP server and registers every tool.
func New(cfg Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "Stonefolio Sales Analytics",
		Version: cfg.Version,
	}, nil)

	s := &Server{
		log: cfg.Logger,
		mcp: mcpServer,
	}

	registrations := []struct {
		name string
		fn   func(*slog.Logger, *mcp.Server, services.AnalyticsService) error
	}{
		{"get_sales_data", RegisterSalesDataTool},
		{"get_yearly_sales_trend", RegisterYearlyTrendTool},
		{"get_seasonal_sales_pattern", RegisterSeasonalPatternTool},
		{"get_top_items_summary", RegisterTopItemsTool},
		{"get_top_accounts", RegisterTopAccountsTool},
		{"get_account_summary", RegisterAccountSummaryTool},
		{"get_dimension_analysis", RegisterDimensionAnalysisTool},
		{"get_customer_history", RegisterCustomerHistoryTool},
	}
	for _, r := range registrations {
		if err := r.fn(s.log, mcpServer, cfg.Service); err != nil {
			return nil, fmt.Errorf("failed to register %s tool: %w", r.name, err)
		}
	}
	if err := RegisterDocsTools(s.log, mcpServer); err != nil {
		return nil, fmt.Errorf("failed to register docs tools: %w", err)
	}

	return s, nil
}

// Handler returns the HTTP handler: the stateless streamable MCP endpoint at
// the root plus a health probe.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.mcp
	}, &mcp.StreamableHTTPOptions{
		Stateless: true,
	})
	mux.Handle("/", handler)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok\n")); err != nil {
			s.log.Error("failed to write healthz response", "error", err)
		}
	})

	return mux
}
