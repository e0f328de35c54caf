package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/krtools/kipris-mcp/internal/kipris"
)

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

func stringArg(args map[string]any, key string) string {
	value, _ := args[key].(string)
	return value
}

// intArg accepts the float64 the JSON layer delivers, tolerating native
// ints from direct callers. Missing keys yield the fallback.
func intArg(args map[string]any, key string, fallback int) (int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return fallback, nil
	}
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, fmt.Errorf("%s must be a number", key)
	}
}

func responseFormatArg(args map[string]any) (string, error) {
	format := stringArg(args, "response_format")
	switch format {
	case "":
		return formatMarkdown, nil
	case formatMarkdown, formatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("response_format must be %q or %q", formatMarkdown, formatJSON)
	}
}

// toolError converts a client failure into the fixed per-kind message the
// caller sees. Auth failures never echo the configured key.
func toolError(err error) *mcp.CallToolResult {
	switch kipris.KindOf(err) {
	case kipris.KindValidation:
		return mcp.NewToolResultError(err.Error())
	case kipris.KindAuth:
		return mcp.NewToolResultError("authentication with KIPRIS failed: verify KIPRIS_API_KEY")
	case kipris.KindNotFound:
		return mcp.NewToolResultError("no matching patent found")
	case kipris.KindParse:
		return mcp.NewToolResultError("KIPRIS returned a response that could not be decoded")
	case kipris.KindTimeout:
		return mcp.NewToolResultError("the KIPRIS request timed out; try again")
	default:
		return mcp.NewToolResultError("the KIPRIS request failed; try again later")
	}
}

func mustMarshal(v interface{}) []byte {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	return b
}
