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

type DimensionAnalysisInput struct {
	AccountCode string `json:"account_code,omitempty"`
}

type DimensionAnalysisOutput struct {
	Success   bool                      `json:"success"`
	Count     int                       `json:"count"`
	Data      []models.DimensionSummary `json:"data"`
	Message   string                    `json:"message,omitempty"`
	Error     string                    `json:"error,omitempty"`
	ErrorKind string                    `json:"error_kind,omitempty"`
}

func RegisterDimensionAnalysisTool(log *slog.Logger, server *mcp.Server, svc services.AnalyticsService) error {
	req, err := jsonschema.For[DimensionAnalysisInput](nil)
	if err != nil {
		return fmt.Errorf("failed to create dimension-analysis input schema: %w", err)
	}
	res, err := jsonschema.For[DimensionAnalysisOutput](nil)
	if err != nil {
		return fmt.Errorf("failed to create dimension-analysis output schema: %w", err)
	}

	mcp.AddTool(server, &mcp.Tool{
		Name: "get_dimension_analysis",
		Description: `Top 10 (length, width, height) size combinations by quantity sum. Rows missing any of the three ` +
			`dimensions are excluded. Optionally narrowed to one account.`,
		InputSchema:  req,
		OutputSchema: res,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in DimensionAnalysisInput) (*mcp.CallToolResult, DimensionAnalysisOutput, error) {
		log.Debug("mcp/tool: handling get_dimension_analysis", "accountCode", in.AccountCode)

		dims, serr := svc.GetDimensionAnalysis(ctx, in.AccountCode)
		if serr != nil {
			return nil, DimensionAnalysisOutput{Data: []models.DimensionSummary{}, Error: serr.Message, ErrorKind: string(serr.Kind)}, nil
		}
		out := DimensionAnalysisOutput{Success: true, Count: len(dims), Data: dims}
		if len(dims) == 0 {
			out.Data = []models.DimensionSummary{}
			out.Message = "no rows with complete dimensions found"
		}
		return nil, out, nil
	})
	return nil
}
