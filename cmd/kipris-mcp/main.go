package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/krtools/kipris-mcp/internal/config"
	"github.com/krtools/kipris-mcp/internal/mcp"
)

func main() {
	root := &cobra.Command{
		Use:   "kipris-mcp",
		Short: "KIPRIS patent-search MCP server",
		RunE:  run,
	}

	root.PersistentFlags().String("kipris-api-key", "", "KIPRIS Plus access key")
	root.PersistentFlags().String("kipris-base-url", "", "KIPRIS REST base URL")
	root.PersistentFlags().String("kipris-http-timeout", "", "Upstream call timeout (e.g. 30s)")
	root.PersistentFlags().String("transport", "stdio", "Transport mode: stdio or http")
	root.PersistentFlags().String("host", "0.0.0.0", "HTTP host")
	root.PersistentFlags().Int("port", 8000, "HTTP port")
	root.PersistentFlags().String("log-level", "info", "Log level")

	config.Init(root)

	if err := root.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := mcp.DefaultConfig()
	if err != nil {
		return err
	}
	srv := mcp.New(cfg)

	if config.Transport() != "http" {
		return srv.ServeStdio()
	}

	addr := config.Host() + ":" + strconv.Itoa(config.Port())
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("MCP server listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(ctx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}
