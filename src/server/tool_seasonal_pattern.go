package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/username/stonefolio/src/models"
	"github.com/username/stonefolio/src/services"
)

type SeasonalPatternInput struct {
	AccountCode string `json:"account_code,omitempty"`
}

type SeasonalPatternOutput struct {
	Success   bool                   `json:"success"`
	Count     int                    `json:"count"`
	Data      []models.SeasonSummary `json:"data"`
	Message   string                 `json:"message,omitempty"`
	Error     string                 `json:"error,omitempty"`
	ErrorKind string                 `json:"error_kind,omitempty"`
}

func RegisterSeasonalPatternTool(log *slog.Logger, server *mcp.Server, svc services.AnalyticsService) error {
	req, err := jsonschema.For[SeasonalPatternInput](nil)
	if err != nil {
		return fmt.Errorf("failed to create seasonal-pattern input schema: %w", err)
	}
	res, err := jsonschema.For[SeasonalPatternOutput](nil)
	if err != nil {
		return fmt.Errorf("failed to create seasonal-pattern output schema: %w", err)
	}

	mcp.AddTool(server, &mcp.Tool{
		Name: "get_seasonal_sales_pattern",
		Description: `Sales grouped by season (Winter, Spring, Summer, Fall) with order count, quantity sum, total price sum ` +
			`and each season's percentage of the filtered row count. Optionally narrowed to one account.`,
		InputSchema:  req,
		OutputSchema: res,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in SeasonalPatternInput) (*mcp.CallToolResult, SeasonalPatternOutput, error) {
		log.Debug("mcp/tool: handling get_seasonal_sales_pattern", "accountCode", in.AccountCode)

		pattern, serr := svc.GetSeasonalPattern(ctx, in.AccountCode)
		if serr != nil {
			return nil, SeasonalPatternOutput{Data: []models.SeasonSummary{}, Error: serr.Message, ErrorKind: string(serr.Kind)}, nil
		}
		out := SeasonalPatternOutput{Success: true, Count: len(pattern), Data: pattern}
		if len(pattern) == 0 {
			out.Data = []models.SeasonSummary{}
			out.Message = "no matching sales records found"
		}
		return nil, out, nil
	})
	return nil
}
