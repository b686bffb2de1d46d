package mcpserver

import (
	"context"

	"banking-backoffice/internal/store"
	"banking-backoffice/internal/wager"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerWagerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"play_wager",
			mcp.WithDescription("Play one balance wager; the account needs at least 100000 to play"),
			mcp.WithString("account_id", mcp.Required(), mcp.Description("Account UUID")),
		),
		s.handlePlayWager,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_wager_rounds",
			mcp.WithDescription("List resolved wager rounds, newest first"),
			mcp.WithString("account_id", mcp.Description("Optional account UUID")),
			mcp.WithString("outcome", mcp.Description("fatal|wipeout|windfall|devaluation|none")),
			mcp.WithNumber("limit", mcp.Description("Page size, default 50, max 500")),
			mcp.WithNumber("offset", mcp.Description("Page offset, default 0")),
		),
		s.handleListWagerRounds,
	)
}

func (s *Server) handlePlayWager(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResp := requireAccountID(request)
	if errResp != nil {
		return errResp, nil
	}
	res, err := s.engine.Play(ctx, id)
	if err != nil {
		return mapDomainError(err), nil
	}
	if res.Tombstone() {
		return toolResult(map[string]any{
			"status":   wager.Deceased,
			"round_id": res.RoundID,
			"outcome":  res.Outcome,
		}), nil
	}
	return toolResult(res), nil
}

func (s *Server) handleListWagerRounds(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := store.WagerFilter{Outcome: request.GetString("outcome", "")}
	if !isAllowedOutcome(f.Outcome) {
		return toolError("invalid_request", "outcome must be fatal|wipeout|windfall|devaluation|none"), nil
	}
	if raw := request.GetString("account_id", ""); raw != "" {
		id, ok := normalizeAccountID(raw)
		if !ok {
			return toolError("invalid_request", "account_id must be a UUID"), nil
		}
		f.AccountID = id
	}
	limit, offset := clampPagination(request.GetInt("limit", defaultPageLimit), request.GetInt("offset", 0), maxPageLimit)

	items, err := s.rounds.ListWagerRounds(ctx, f, limit, offset)
	if err != nil {
		return mapDomainError(err), nil
	}
	if items == nil {
		items = []store.WagerRound{}
	}
	return toolResult(map[string]any{"items": items, "limit": limit, "offset": offset}), nil
}

func isAllowedOutcome(v string) bool {
	switch wager.Outcome(v) {
	case "", wager.OutcomeFatal, wager.OutcomeWipeout, wager.OutcomeWindfall, wager.OutcomeDevaluation, wager.OutcomeNone:
		return true
	default:
		return false
	}
}
