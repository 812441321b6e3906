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

type AccountSummaryInput struct {
	AccountCode string `json:"account_code"`
}

// AccountSummaryOutput carries a single aggregate object; data is null when
// the account has no rows in range.
type AccountSummaryOutput struct {
	Success   bool                   `json:"success"`
	Data      *models.AccountSummary `json:"data"`
	Message   string                 `json:"message,omitempty"`
	Error     string                 `json:"error,omitempty"`
	ErrorKind string                 `json:"error_kind,omitempty"`
}

func RegisterAccountSummaryTool(log *slog.Logger, server *mcp.Server, svc services.AnalyticsService) error {
	req, err := jsonschema.For[AccountSummaryInput](nil)
	if err != nil {
		return fmt.Errorf("failed to create account-summary input schema: %w", err)
	}
	res, err := jsonschema.For[AccountSummaryOutput](nil)
	if err != nil {
		return fmt.Errorf("failed to create account-summary output schema: %w", err)
	}

	mcp.AddTool(server, &mcp.Tool{
		Name: "get_account_summary",
		Description: `One aggregate record for an account: order count, quantity and price totals, means, distinct SKU count, ` +
			`first/last order year and the top 3 SKUs by total price. account_code is matched case-insensitively.`,
		InputSchema:  req,
		OutputSchema: res,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in AccountSummaryInput) (*mcp.CallToolResult, AccountSummaryOutput, error) {
		log.Debug("mcp/tool: handling get_account_summary", "accountCode", in.AccountCode)

		summary, serr := svc.GetAccountSummary(ctx, in.AccountCode)
		if serr != nil {
			return nil, AccountSummaryOutput{Error: serr.Message, ErrorKind: string(serr.Kind)}, nil
		}
		out := AccountSummaryOutput{Success: true, Data: summary}
		if summary == nil {
			out.Message = "no sales records found for this account"
		}
		return nil, out, nil
	})
	return nil
}
