package httptransport

import (
	"encoding/json"
	"net/http"
	"strings"

	"banking-backoffice/internal/account"
	"banking-backoffice/internal/ledger"
	"banking-backoffice/internal/validation"
	"banking-backoffice/internal/wager"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AccountHandlers struct {
	ledger *ledger.Ledger
	engine *wager.Engine
}

func NewAccountHandlers(l *ledger.Ledger, eng *wager.Engine) *AccountHandlers {
	return &AccountHandlers{ledger: l, engine: eng}
}

func (h *AccountHandlers) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body validation.CreateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}
		if err := body.Validate(); err != nil {
			writeDomainError(w, r, err)
			return
		}
		a, err := h.ledger.Create(r.Context(), body.Currency)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		w.Header().Set("Location", "/api/accounts/"+a.ID)
		writeJSON(w, http.StatusCreated, a)
	}
}

// List returns every account, or with ?currency= only the accounts in that
// currency. An empty currency match is a 404.
func (h *AccountHandlers) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("currency") {
			currency := r.URL.Query().Get("currency")
			if err := validation.Currency(currency); err != nil {
				writeDomainError(w, r, err)
				return
			}
			items, err := h.ledger.ListByCurrency(r.Context(), currency)
			if err != nil {
				writeDomainError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, items)
			return
		}
		items, err := h.ledger.List(r.Context())
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		if items == nil {
			items = []account.Account{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func (h *AccountHandlers) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := accountIDParam(w, r)
		if !ok {
			return
		}
		a, err := h.ledger.Get(r.Context(), id)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func (h *AccountHandlers) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := accountIDParam(w, r)
		if !ok {
			return
		}
		var body validation.UpdateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}
		patch, err := body.Patch()
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		a, err := h.ledger.Update(r.Context(), id, patch)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusAccepted, a)
	}
}

func (h *AccountHandlers) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := accountIDParam(w, r)
		if !ok {
			return
		}
		if err := h.ledger.Delete(r.Context(), id); err != nil {
			writeDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *AccountHandlers) DeleteAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.ledger.DeleteAll(r.Context()); err != nil {
			writeDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *AccountHandlers) ClearDebts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cleared, err := h.ledger.ClearDebts(r.Context())
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusAccepted, cleared)
	}
}

type wagerResponse struct {
	Status string `json:"status,omitempty"`
	wager.Result
}

// Wager plays one round. The status code carries the outcome class: 410 when the
// account is gone, 205 when it survived with nothing, 418 when nothing happened.
func (h *AccountHandlers) Wager() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := accountIDParam(w, r)
		if !ok {
			return
		}
		metricWagerRequestsTotal.Add(1)
		res, err := h.engine.Play(r.Context(), id)
		if err != nil {
			metricWagerErrorsTotal.Add(1)
			writeDomainError(w, r, err)
			return
		}
		switch {
		case res.Tombstone():
			writeJSON(w, http.StatusGone, wagerResponse{Status: wager.Deceased, Result: res})
		case res.NoOutcome():
			writeJSON(w, http.StatusTeapot, wagerResponse{Result: res})
		case res.Account != nil && res.Account.Balance == 0:
			writeJSON(w, http.StatusResetContent, wagerResponse{Result: res})
		default:
			writeJSON(w, http.StatusAccepted, wagerResponse{Result: res})
		}
	}
}

func accountIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, "account_id"))
	id, err := uuid.Parse(raw)
	if err != nil {
		WriteHTTPError(w, http.StatusBadRequest, "invalid_parameter", "account id must be a UUID")
		return "", false
	}
	return id.String(), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
