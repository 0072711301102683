package handlers

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/jcvalerio/moneywiz-mcp-server/internal/services"
)

// Handler wires the financial services to their MCP tool surface
type Handler struct {
	accounts     services.AccountServiceInterface
	transactions services.TransactionServiceInterface
	analytics    services.AnalyticsServiceInterface
}

// New creates a new handler backed by the given services
func New(accounts services.AccountServiceInterface, transactions services.TransactionServiceInterface, analytics services.AnalyticsServiceInterface) *Handler {
	return &Handler{
		accounts:     accounts,
		transactions: transactions,
		analytics:    analytics,
	}
}

// Register adds every tool to the MCP server
func (h *Handler) Register(s *server.MCPServer) {
	h.registerAccountTools(s)
	h.registerTransactionTools(s)
	h.registerAnalyticsTools(s)
}
