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

type SalesDataInput struct {
	AccountCode string `json:"account_code,omitempty"`
}

type SalesDataOutput struct {
	Success   bool                  `json:"success"`
	Count     int                   `json:"count"`
	Data      []models.CanonicalRow `json:"data"`
	Message   string                `json:"message,omitempty"`
	Error     string                `json:"error,omitempty"`
	ErrorKind string                `json:"error_kind,omitempty"`
}

func RegisterSalesDataTool(log *slog.Logger, server *mcp.Server, svc services.AnalyticsService) error {
	req, err := jsonschema.For[SalesDataInput](nil)
	if err != nil {
		return fmt.Errorf("failed to create sales-data input schema: %w", err)
	}
	res, err := jsonschema.For[SalesDataOutput](nil)
	if err != nil {
		return fmt.Errorf("failed to create sales-data output schema: %w", err)
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:         "get_sales_data",
		Description:  `Fetch the normalized sales dataset: one typed row per contract product line, optionally narrowed to one account (case-insensitive code match). Rows are sorted by account code, then newest first.`,
		InputSchema:  req,
		OutputSchema: res,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in SalesDataInput) (*mcp.CallToolResult, SalesDataOutput, error) {
		log.Debug("mcp/tool: handling get_sales_data", "accountCode", in.AccountCode)

		rows, serr := svc.GetSalesData(ctx, in.AccountCode)
		if serr != nil {
			// The empty slice keeps data a JSON array; the output schema does
			// not admit null here.
			return nil, SalesDataOutput{Data: []models.CanonicalRow{}, Error: serr.Message, ErrorKind: string(serr.Kind)}, nil
		}
		out := SalesDataOutput{Success: true, Count: len(rows), Data: rows}
		if len(rows) == 0 {
			out.Data = []models.CanonicalRow{}
			out.Message = "no matching sales records found"
		}
		return nil, out, nil
	})
	return nil
}
