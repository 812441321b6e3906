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

type YearlyTrendInput struct {
	FilterField string `json:"filter_field,omitempty"`
	FilterValue string `json:"filter_value,omitempty"`
}

type YearlyTrendOutput struct {
	Success   bool                   `json:"success"`
	Count     int                    `json:"count"`
	Data      []models.YearlySummary `json:"data"`
	Message   string                 `json:"message,omitempty"`
	Error     string                 `json:"error,omitempty"`
	ErrorKind string                 `json:"error_kind,omitempty"`
}

func RegisterYearlyTrendTool(log *slog.Logger, server *mcp.Server, svc services.AnalyticsService) error {
	req, err := jsonschema.For[YearlyTrendInput](nil)
	if err != nil {
		return fmt.Errorf("failed to create yearly-trend input schema: %w", err)
	}
	res, err := jsonschema.For[YearlyTrendOutput](nil)
	if err != nil {
		return fmt.Errorf("failed to create yearly-trend output schema: %w", err)
	}

	mcp.AddTool(server, &mcp.Tool{
		Name: "get_yearly_sales_trend",
		Description: `Year-by-year sales trend (ascending): order count, quantity sum, total price sum and mean total price per year. ` +
			`Optionally filter with filter_field (one of account_code, product_family, product_sku) and filter_value.`,
		InputSchema:  req,
		OutputSchema: res,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in YearlyTrendInput) (*mcp.CallToolResult, YearlyTrendOutput, error) {
		log.Debug("mcp/tool: handling get_yearly_sales_trend", "filterField", in.FilterField)

		trend, serr := svc.GetYearlyTrend(ctx, in.FilterField, in.FilterValue)
		if serr != nil {
			return nil, YearlyTrendOutput{Data: []models.YearlySummary{}, Error: serr.Message, ErrorKind: string(serr.Kind)}, nil
		}
		out := YearlyTrendOutput{Success: true, Count: len(trend), Data: trend}
		if len(trend) == 0 {
			out.Data = []models.YearlySummary{}
			out.Message = "no matching sales records found"
		}
		return nil, out, nil
	})
	return nil
}
