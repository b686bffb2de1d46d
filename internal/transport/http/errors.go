package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"banking-backoffice/internal/account"
	"banking-backoffice/internal/validation"

	"github.com/rs/zerolog/log"
)

func WriteHTTPError(w http.ResponseWriter, status int, code, message string) {
	body := map[string]any{"error": code}
	if message != "" {
		body["message"] = message
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeDomainError maps ledger and wager errors to a status and error code.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusForError(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Str("code", code).Msg("request failed")
	}
	WriteHTTPError(w, status, code, err.Error())
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, validation.ErrInvalid):
		return http.StatusBadRequest, "validation_failed"
	case errors.Is(err, account.ErrNotFound):
		return http.StatusNotFound, "account_not_found"
	case errors.Is(err, account.ErrIneligibleForWager):
		return http.StatusUnprocessableEntity, "ineligible_for_wager"
	case errors.Is(err, account.ErrRandomnessUnavailable):
		return http.StatusServiceUnavailable, "randomness_unavailable"
	case errors.Is(err, account.ErrInvariantViolation):
		return http.StatusInternalServerError, "invariant_violation"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
