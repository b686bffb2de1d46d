package httptransport

import (
	"net/http"
	"testing"

	"banking-backoffice/internal/account"
	"banking-backoffice/internal/config"
	"banking-backoffice/internal/keylock"
	"banking-backoffice/internal/ledger"
	"banking-backoffice/internal/randomorg"
	"banking-backoffice/internal/testutil"
	"banking-backoffice/internal/wager"
)

func TestAccountLifecycleOnPostgres(t *testing.T) {
	st := testutil.OpenTestStore(t)

	locks := keylock.New()
	l := ledger.New(st, locks)
	eng := wager.NewEngine(st, randomorg.Values(1, 1), locks, st)
	env := &testEnv{ledger: l, router: NewRouter(Services{Ledger: l, Engine: eng, Backend: st}, config.ServerConfig{})}

	rec := env.do(t, http.MethodPost, "/api/accounts", `{"currency":"EUR"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	a := decode[account.Account](t, rec)

	rec = env.do(t, http.MethodPatch, "/api/accounts/"+a.ID, `{"balance":250000}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/accounts/"+a.ID+"/wager", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	got := decode[[]account.Account](t, env.do(t, http.MethodGet, "/api/accounts?currency=RMB", ""))
	if len(got) != 1 || got[0].ID != a.ID || got[0].Balance != 50000 {
		t.Fatalf("unexpected devalued account: %+v", got)
	}
	if !got[0].CreatedAt.Equal(a.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", a.CreatedAt, got[0].CreatedAt)
	}

	if rec := env.do(t, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", rec.Code)
	}
}
