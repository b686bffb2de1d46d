package mcpserver

import (
	"context"
	"fmt"

	"banking-backoffice/internal/account"
	"banking-backoffice/internal/validation"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerAccountTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_accounts",
			mcp.WithDescription("List all accounts"),
		),
		s.handleListAccounts,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_account",
			mcp.WithDescription("Get one account by id"),
			mcp.WithString("account_id", mcp.Required(), mcp.Description("Account UUID")),
		),
		s.handleGetAccount,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"find_accounts_by_currency",
			mcp.WithDescription("List accounts holding a currency; fails with account_not_found when none do"),
			mcp.WithString("currency", mcp.Required(), mcp.Description("ISO 4217 code, e.g. EUR")),
		),
		s.handleFindAccountsByCurrency,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"create_account",
			mcp.WithDescription("Open an account with a zero balance"),
			mcp.WithString("currency", mcp.Required(), mcp.Description("ISO 4217 code, e.g. EUR")),
		),
		s.handleCreateAccount,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"update_account",
			mcp.WithDescription("Overwrite the balance and/or currency of an account"),
			mcp.WithString("account_id", mcp.Required(), mcp.Description("Account UUID")),
			mcp.WithNumber("balance", mcp.Description("New balance")),
			mcp.WithString("currency", mcp.Description("New ISO 4217 code; blank is ignored")),
		),
		s.handleUpdateAccount,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"delete_account",
			mcp.WithDescription("Delete one account"),
			mcp.WithString("account_id", mcp.Required(), mcp.Description("Account UUID")),
		),
		s.handleDeleteAccount,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"clear_debts",
			mcp.WithDescription("Set every negative balance to zero and return the cleared accounts"),
		),
		s.handleClearDebts,
	)
}

func (s *Server) handleListAccounts(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.ledger.List(ctx)
	if err != nil {
		return mapDomainError(err), nil
	}
	if items == nil {
		items = []account.Account{}
	}
	return toolResult(map[string]any{"items": items}), nil
}

func (s *Server) handleGetAccount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResp := requireAccountID(request)
	if errResp != nil {
		return errResp, nil
	}
	a, err := s.ledger.Get(ctx, id)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(a), nil
}

func (s *Server) handleFindAccountsByCurrency(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	currency, err := request.RequireString("currency")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	if err := validation.Currency(currency); err != nil {
		return mapDomainError(err), nil
	}
	items, err := s.ledger.ListByCurrency(ctx, currency)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(map[string]any{"items": items}), nil
}

func (s *Server) handleCreateAccount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := validation.CreateAccountRequest{Currency: request.GetString("currency", "")}
	if err := req.Validate(); err != nil {
		return mapDomainError(err), nil
	}
	a, err := s.ledger.Create(ctx, req.Currency)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(a), nil
}

func (s *Server) handleUpdateAccount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResp := requireAccountID(request)
	if errResp != nil {
		return errResp, nil
	}
	var req validation.UpdateAccountRequest
	args := request.GetArguments()
	if raw, ok := args["balance"]; ok && raw != nil {
		bal, ok := raw.(float64)
		if !ok {
			return toolError("invalid_request", fmt.Sprintf("balance must be a number, got %T", raw)), nil
		}
		req.Balance = &bal
	}
	if raw, ok := args["currency"]; ok && raw != nil {
		cur, ok := raw.(string)
		if !ok {
			return toolError("invalid_request", fmt.Sprintf("currency must be a string, got %T", raw)), nil
		}
		req.Currency = &cur
	}
	patch, err := req.Patch()
	if err != nil {
		return mapDomainError(err), nil
	}
	a, err := s.ledger.Update(ctx, id, patch)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(a), nil
}

func (s *Server) handleDeleteAccount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResp := requireAccountID(request)
	if errResp != nil {
		return errResp, nil
	}
	if err := s.ledger.Delete(ctx, id); err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(map[string]any{"deleted": id}), nil
}

func (s *Server) handleClearDebts(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cleared, err := s.ledger.ClearDebts(ctx)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(map[string]any{"cleared": cleared}), nil
}

func requireAccountID(request mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	raw, err := request.RequireString("account_id")
	if err != nil {
		return "", toolError("invalid_request", err.Error())
	}
	id, ok := normalizeAccountID(raw)
	if !ok {
		return "", toolError("invalid_request", "account_id must be a UUID")
	}
	return id, nil
}
