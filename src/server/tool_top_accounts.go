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

type TopAccountsInput struct{}

type TopAccountsOutput struct {
	Success   bool                  `json:"success"`
	Count     int                   `json:"count"`
	Data      []models.GroupSummary `json:"data"`
	Message   string                `json:"message,omitempty"`
	Error     string                `json:"error,omitempty"`
	ErrorKind string                `json:"error_kind,omitempty"`
}

func RegisterTopAccountsTool(log *slog.Logger, server *mcp.Server, svc services.AnalyticsService) error {
	req, err := jsonschema.For[TopAccountsInput](nil)
	if err != nil {
		return fmt.Errorf("failed to create top-accounts input schema: %w", err)
	}
	res, err := jsonschema.For[TopAccountsOutput](nil)
	if err != nil {
		return fmt.Errorf("failed to create top-accounts output schema: %w", err)
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:         "get_top_accounts",
		Description:  `The five accounts with the highest total price sum, with order count, quantity sum, percentage of all rows, and average unit price.`,
		InputSchema:  req,
		OutputSchema: res,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ TopAccountsInput) (*mcp.CallToolResult, TopAccountsOutput, error) {
		log.Debug("mcp/tool: handling get_top_accounts")

		groups, serr := svc.GetTopAccounts(ctx)
		if serr != nil {
			return nil, TopAccountsOutput{Data: []models.GroupSummary{}, Error: serr.Message, ErrorKind: string(serr.Kind)}, nil
		}
		out := TopAccountsOutput{Success: true, Count: len(groups), Data: groups}
		if len(groups) == 0 {
			out.Data = []models.GroupSummary{}
			out.Message = "no matching sales records found"
		}
		return nil, out, nil
	})
	return nil
}
