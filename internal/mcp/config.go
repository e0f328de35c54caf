package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/krtools/kipris-mcp/internal/config"
	"github.com/krtools/kipris-mcp/internal/kipris"
	"github.com/krtools/kipris-mcp/internal/logging"
	"github.com/krtools/kipris-mcp/internal/mcp/tools"
)

type Config struct {
	ToolAdapters map[string]ToolAdapter
	Options      []server.StreamableHTTPOption
}

func DefaultConfig() (Config, error) {
	clientCfg, err := kipris.LoadConfig()
	if err != nil {
		return Config{}, err
	}

	baseLogger := logging.New(logging.ForLevel(config.LogLevel()))
	client, err := kipris.NewClient(clientCfg, kipris.WithLogger(baseLogger.WithName("kipris")))
	if err != nil {
		return Config{}, err
	}

	return Config{
		ToolAdapters: map[string]ToolAdapter{
			"search_patents":     &tools.SearchPatentsHandler{Service: client},
			"get_patent_detail":  &tools.GetPatentDetailHandler{Service: client},
			"get_citing_patents": &tools.GetCitingPatentsHandler{Service: client},
		},
		Options: []server.StreamableHTTPOption{
			server.WithEndpointPath("/mcp/jsonrpc"),
			server.WithStateLess(true),
		},
	}, nil
}
