package httptransport

import (
	"expvar"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"banking-backoffice/internal/config"
	"banking-backoffice/internal/ledger"
	"banking-backoffice/internal/mcpserver"
	"banking-backoffice/internal/wager"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Services struct {
	Ledger  *ledger.Ledger
	Engine  *wager.Engine
	Backend Backend
}

func NewRouter(svc Services, cfg config.ServerConfig) *chi.Mux {
	accountHandlers := NewAccountHandlers(svc.Ledger, svc.Engine)
	adminHandlers := NewAdminHandlers(svc.Backend)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", adminHandlers.Health())

	if cfg.MCPEnabled {
		mcpSrv := mcpserver.New(svc.Ledger, svc.Engine, svc.Backend)
		r.With(APILogMiddleware()).MethodFunc(http.MethodOptions, "/mcp", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Allow", "POST, GET, DELETE, OPTIONS")
			w.WriteHeader(http.StatusNoContent)
		})
		r.With(APILogMiddleware()).Method(http.MethodPost, "/mcp", mcpSrv.Handler())
		r.With(APILogMiddleware()).Method(http.MethodGet, "/mcp", mcpSrv.Handler())
		r.With(APILogMiddleware()).Method(http.MethodDelete, "/mcp", mcpSrv.Handler())
	} else {
		log.Info().Msg("mcp endpoint disabled")
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", accountHandlers.List())
			r.Get("/{account_id}", accountHandlers.Get())

			r.Group(func(r chi.Router) {
				r.Use(BodyCaptureMiddleware(4096))
				r.Post("/", accountHandlers.Create())
				r.Delete("/", accountHandlers.DeleteAll())
				r.Post("/debts/clear", accountHandlers.ClearDebts())
				r.Patch("/{account_id}", accountHandlers.Update())
				r.Delete("/{account_id}", accountHandlers.Delete())
				r.Post("/{account_id}/wager", accountHandlers.Wager())
			})
		})

		r.Get("/wagers", adminHandlers.WagerRounds())
		r.Get("/debug/vars", expvar.Handler().ServeHTTP)
	})
	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 16)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
