package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/jcvalerio/moneywiz-mcp-server/internal/config"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/handlers"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/resolve"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/services"
	"github.com/jcvalerio/moneywiz-mcp-server/internal/store"
)

const (
	serverName    = "moneywiz-mcp-server"
	serverVersion = "1.0.0"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serverName, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// stdout carries the protocol stream, so all logging goes to stderr
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	st, err := store.Open(cfg.DatabasePath, cfg.ReadOnly)
	if err != nil {
		return fmt.Errorf("opening MoneyWiz database: %w", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("closing store", "error", closeErr)
		}
	}()

	session := resolve.NewSession()
	resolver := resolve.New(st, session)

	accountService := services.NewAccountService(st, resolver)
	transactionService := services.NewTransactionService(st, resolver, cfg.MaxResults)
	analyticsService := services.NewAnalyticsService(transactionService)

	s := server.NewMCPServer(serverName, serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	handlers.New(accountService, transactionService, analyticsService).Register(s)

	slog.Info("server starting",
		"database", cfg.DatabasePath,
		"read_only", st.ReadOnly(),
	)

	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("serving stdio: %w", err)
	}
	return nil
}
