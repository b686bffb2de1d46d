package mcpserver

import (
	"errors"
	"fmt"

	"banking-backoffice/internal/account"
	"banking-backoffice/internal/validation"

	"github.com/mark3labs/mcp-go/mcp"
)

func toolResult(data any) *mcp.CallToolResult {
	return mcp.NewToolResultStructuredOnly(data)
}

func toolError(code, message string) *mcp.CallToolResult {
	result := mcp.NewToolResultStructured(
		map[string]any{
			"error": map[string]any{
				"code":    code,
				"message": message,
			},
		},
		fmt.Sprintf("%s: %s", code, message),
	)
	result.IsError = true
	return result
}

func mapDomainError(err error) *mcp.CallToolResult {
	switch {
	case err == nil:
		return toolError("internal_error", "unknown error")
	case errors.Is(err, validation.ErrInvalid):
		return toolError("invalid_request", err.Error())
	case errors.Is(err, account.ErrNotFound):
		return toolError("account_not_found", err.Error())
	case errors.Is(err, account.ErrIneligibleForWager):
		return toolError("ineligible_for_wager", err.Error())
	case errors.Is(err, account.ErrRandomnessUnavailable):
		return toolError("randomness_unavailable", err.Error())
	case errors.Is(err, account.ErrInvariantViolation):
		return toolError("invariant_violation", err.Error())
	default:
		return toolError("internal_error", err.Error())
	}
}
