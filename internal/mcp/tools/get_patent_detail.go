package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/krtools/kipris-mcp/internal/kipris"
)

type DetailService interface {
	GetPatentDetail(ctx context.Context, applicationNumber string) (kipris.PatentDetail, error)
}

type GetPatentDetailHandler struct {
	Service DetailService
}

func (h *GetPatentDetailHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	number, err := kipris.NormalizeApplicationNumber(stringArg(args, "application_number"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	format, err := responseFormatArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	detail, err := h.Service.GetPatentDetail(ctx, number)
	if err != nil {
		return toolError(err), nil
	}

	if format == formatJSON {
		return mcp.NewToolResultText(string(mustMarshal(detail))), nil
	}
	return mcp.NewToolResultText(renderDetailMarkdown(detail)), nil
}
