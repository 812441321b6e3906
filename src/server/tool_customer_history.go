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

type CustomerHistoryInput struct {
	AccountCode string `json:"account_code"`
	YearsBack   int    `json:"years_back,omitempty"`
}

// CustomerHistoryOutput carries the year/quarter/month tree; data is null
// when no rows fall inside the requested window.
type CustomerHistoryOutput struct {
	Success   bool                    `json:"success"`
	Count     int                     `json:"count"`
	Data      *models.CustomerHistory `json:"data"`
	Message   string                  `json:"message,omitempty"`
	Error     string                  `json:"error,omitempty"`
	ErrorKind string                  `json:"error_kind,omitempty"`
}

func RegisterCustomerHistoryTool(log *slog.Logger, server *mcp.Server, svc services.AnalyticsService) error {
	req, err := jsonschema.For[CustomerHistoryInput](nil)
	if err != nil {
		return fmt.Errorf("failed to create customer-history input schema: %w", err)
	}
	res, err := jsonschema.For[CustomerHistoryOutput](nil)
	if err != nil {
		return fmt.Errorf("failed to create customer-history output schema: %w", err)
	}

	mcp.AddTool(server, &mcp.Tool{
		Name: "get_customer_history",
		Description: `Multi-year purchase history for one account as a year → quarter → month tree with order count, ` +
			`quantity sum and value sum at every level and per-line details at the month level. years_back defaults to 3.`,
		InputSchema:  req,
		OutputSchema: res,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in CustomerHistoryInput) (*mcp.CallToolResult, CustomerHistoryOutput, error) {
		log.Debug("mcp/tool: handling get_customer_history", "accountCode", in.AccountCode, "yearsBack", in.YearsBack)

		yearsBack := in.YearsBack
		if yearsBack == 0 {
			yearsBack = services.DefaultYearsBack
		}

		history, serr := svc.GetCustomerHistory(ctx, in.AccountCode, yearsBack)
		if serr != nil {
			return nil, CustomerHistoryOutput{Error: serr.Message, ErrorKind: string(serr.Kind)}, nil
		}
		out := CustomerHistoryOutput{Success: true}
		if history == nil || history.OrderCount == 0 {
			out.Message = "no sales records found for this account in the requested window"
			return nil, out, nil
		}
		out.Count = history.OrderCount
		out.Data = history
		return nil, out, nil
	})
	return nil
}
