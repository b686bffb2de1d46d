package httptransport

import (
	"context"
	"net/http"
	"strings"

	"banking-backoffice/internal/store"

	"github.com/google/uuid"
)

// Backend is the storage surface the admin routes read directly.
type Backend interface {
	Ping(ctx context.Context) error
	ListWagerRounds(ctx context.Context, f store.WagerFilter, limit, offset int) ([]store.WagerRound, error)
}

type AdminHandlers struct {
	backend Backend
}

func NewAdminHandlers(b Backend) *AdminHandlers {
	return &AdminHandlers{backend: b}
}

func (h *AdminHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.backend.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "db": "down"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "db": "up"})
	}
}

func (h *AdminHandlers) WagerRounds() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		f := store.WagerFilter{Outcome: r.URL.Query().Get("outcome")}
		if raw := strings.TrimSpace(r.URL.Query().Get("account_id")); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_parameter", "account_id must be a UUID")
				return
			}
			f.AccountID = id.String()
		}
		items, err := h.backend.ListWagerRounds(r.Context(), f, limit, offset)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error", "")
			return
		}
		if items == nil {
			items = []store.WagerRound{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}
