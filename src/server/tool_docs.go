package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/username/stonefolio/src/docs"
	"github.com/username/stonefolio/src/services"
)

type SearchDocsInput struct {
	Query string `json:"query"`
}

type SearchDocsOutput struct {
	Success bool                `json:"success"`
	Count   int                 `json:"count"`
	Data    []docs.SearchResult `json:"data"`
	Message string              `json:"message,omitempty"`
}

type GetDocInput struct {
	ID string `json:"id"`
}

type GetDocOutput struct {
	Success   bool      `json:"success"`
	Data      *docs.Doc `json:"data"`
	Error     string    `json:"error,omitempty"`
	ErrorKind string    `json:"error_kind,omitempty"`
}

// RegisterDocsTools registers the reference documentation search/fetch pair.
func RegisterDocsTools(log *slog.Logger, server *mcp.Server) error {
	searchReq, err := jsonschema.For[SearchDocsInput](nil)
	if err != nil {
		return fmt.Errorf("failed to create search-docs input schema: %w", err)
	}
	searchRes, err := jsonschema.For[SearchDocsOutput](nil)
	if err != nil {
		return fmt.Errorf("failed to create search-docs output schema: %w", err)
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:         "search_docs",
		Description:  `Search the built-in reference documentation by substring in title or body.`,
		InputSchema:  searchReq,
		OutputSchema: searchRes,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in SearchDocsInput) (*mcp.CallToolResult, SearchDocsOutput, error) {
		log.Debug("mcp/tool: handling search_docs", "query", in.Query)

		results := docs.Search(in.Query)
		out := SearchDocsOutput{Success: true, Count: len(results), Data: results}
		if len(results) == 0 {
			out.Data = []docs.SearchResult{}
			out.Message = "no documents matched the query"
		}
		return nil, out, nil
	})

	getReq, err := jsonschema.For[GetDocInput](nil)
	if err != nil {
		return fmt.Errorf("failed to create get-doc input schema: %w", err)
	}
	getRes, err := jsonschema.For[GetDocOutput](nil)
	if err != nil {
		return fmt.Errorf("failed to create get-doc output schema: %w", err)
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:         "get_doc",
		Description:  `Fetch one reference document by id.`,
		InputSchema:  getReq,
		OutputSchema: getRes,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in GetDocInput) (*mcp.CallToolResult, GetDocOutput, error) {
		log.Debug("mcp/tool: handling get_doc", "id", in.ID)

		doc, ok := docs.Get(in.ID)
		if !ok {
			return nil, GetDocOutput{
				Error:     fmt.Sprintf("document with id %q not found", in.ID),
				ErrorKind: string(services.ErrKindInvalidArgument),
			}, nil
		}
		return nil, GetDocOutput{Success: true, Data: &doc}, nil
	})

	return nil
}
