package mcpserver

import (
	"context"
	"net/http"

	"banking-backoffice/internal/ledger"
	"banking-backoffice/internal/store"
	"banking-backoffice/internal/wager"

	"github.com/mark3labs/mcp-go/server"
)

// RoundLister reads the wager journal.
type RoundLister interface {
	ListWagerRounds(ctx context.Context, f store.WagerFilter, limit, offset int) ([]store.WagerRound, error)
}

type Server struct {
	ledger *ledger.Ledger
	engine *wager.Engine
	rounds RoundLister

	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
}

func New(l *ledger.Ledger, eng *wager.Engine, rounds RoundLister) *Server {
	mcpSrv := server.NewMCPServer(
		"banking-backoffice",
		"0.1.0",
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s := &Server{
		ledger:     l,
		engine:     eng,
		rounds:     rounds,
		mcpServer:  mcpSrv,
		httpServer: server.NewStreamableHTTPServer(mcpSrv, server.WithStateLess(true), server.WithDisableStreaming(true)),
	}
	s.registerAccountTools()
	s.registerWagerTools()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.httpServer
}
