package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/krtools/kipris-mcp/internal/kipris"
)

type CitationService interface {
	GetCitingPatents(ctx context.Context, applicationNumber string, page, pageSize int) ([]kipris.CitationRecord, error)
}

type GetCitingPatentsHandler struct {
	Service CitationService
}

type citingPatentsPayload struct {
	BaseApplicationNumber string                  `json:"base_application_number"`
	CitingCount           int                     `json:"citing_count"`
	CitingPatents         []kipris.CitationRecord `json:"citing_patents"`
}

func (h *GetCitingPatentsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	number, err := kipris.NormalizeApplicationNumber(stringArg(args, "application_number"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
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

	format, err := responseFormatArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	records, err := h.Service.GetCitingPatents(ctx, number, page, pageSize)
	if err != nil {
		return toolError(err), nil
	}

	if format == formatJSON {
		payload := citingPatentsPayload{
			BaseApplicationNumber: number,
			CitingCount:           len(records),
			CitingPatents:         records,
		}
		if payload.CitingPatents == nil {
			payload.CitingPatents = []kipris.CitationRecord{}
		}
		return mcp.NewToolResultText(string(mustMarshal(payload))), nil
	}
	return mcp.NewToolResultText(renderCitationsMarkdown(number, records)), nil
}
