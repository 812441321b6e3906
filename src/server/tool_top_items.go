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

type TopItemsInput struct {
	GroupBy string `json:"group_by"`
	Limit   int    `json:"limit,omitempty"`
}

type TopItemsOutput struct {
	Success   bool                  `json:"success"`
	Count     int                   `json:"count"`
	Data      []models.GroupSummary `json:"data"`
	Message   string                `json:"message,omitempty"`
	Error     string                `json:"error,omitempty"`
	ErrorKind string                `json:"error_kind,omitempty"`
}

func RegisterTopItemsTool(log *slog.Logger, server *mcp.Server, svc services.AnalyticsService) error {
	req, err := jsonschema.For[TopItemsInput](nil)
	if err != nil {
		return fmt.Errorf("failed to create top-items input schema: %w", err)
	}
	res, err := jsonschema.For[TopItemsOutput](nil)
	if err != nil {
		return fmt.Errorf("failed to create top-items output schema: %w", err)
	}

	mcp.AddTool(server, &mcp.Tool{
		Name: "get_top_items_summary",
		Description: `Top groups ranked by total price sum. group_by must be exactly one of: account_code, product_family, ` +
			`product_sku, stone_color. Each group carries order count, quantity sum, total price sum, percentage of the ` +
			`dataset's row count, and average unit price. limit defaults to 10.`,
		InputSchema:  req,
		OutputSchema: res,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in TopItemsInput) (*mcp.CallToolResult, TopItemsOutput, error) {
		log.Debug("mcp/tool: handling get_top_items_summary", "groupBy", in.GroupBy, "limit", in.Limit)

		groups, serr := svc.GetTopItems(ctx, in.GroupBy, in.Limit)
		if serr != nil {
			return nil, TopItemsOutput{Data: []models.GroupSummary{}, Error: serr.Message, ErrorKind: string(serr.Kind)}, nil
		}
		out := TopItemsOutput{Success: true, Count: len(groups), Data: groups}
		if len(groups) == 0 {
			out.Data = []models.GroupSummary{}
			out.Message = "no matching sales records found"
		}
		return nil, out, nil
	})
	return nil
}
