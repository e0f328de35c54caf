package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/krtools/kipris-mcp/internal/kipris"
)

type SearchService interface {
	SearchPatentsByApplicant(ctx context.Context, applicant string, page, pageSize int, status string) (kipris.SearchResult, error)
}

type SearchPatentsHandler struct {
	Service SearchService
}

func (h *SearchPatentsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	applicant := stringArg(args, "applicant_name")
	if applicant == "" {
		return mcp.NewToolResultError("applicant_name parameter is required"), nil
	}

	page, err := intArg(args, "page", 1)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if page < 1 {
		return mcp.NewToolResultError("page must be >= 1"), nil
	}

	pageSize, err := intArg(args, "page_size", kipris.DefaultPageSize)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if pageSize < 1 || pageSize > kipris.MaxPageSize {
		return mcp.NewToolResultError("page_size must be between 1 and 100"), nil
	}

	status := stringArg(args, "status")
	switch status {
	case "", "A", "R", "J":
	default:
		return mcp.NewToolResultError("status must be one of A, R, J"), nil
	}

	format, err := responseFormatArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := h.Service.SearchPatentsByApplicant(ctx, applicant, page, pageSize, status)
	if err != nil {
		return toolError(err), nil
	}

	if format == formatJSON {
		return mcp.NewToolResultText(string(mustMarshal(result))), nil
	}
	return mcp.NewToolResultText(renderSearchMarkdown(applicant, result)), nil
}
