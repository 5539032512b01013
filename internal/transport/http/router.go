package httptransport

import (
	"expvar"
	"fmt"
	"net/http"
	"sort"
	"strings"

	appaccount "stake-market/internal/app/account"
	apppayouts "stake-market/internal/app/payouts"
	apppublic "stake-market/internal/app/public"
	appsettlement "stake-market/internal/app/settlement"
	appstaking "stake-market/internal/app/staking"
	appsubs "stake-market/internal/app/subscriptions"
	"stake-market/internal/config"
	"stake-market/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func NewRouter(st *store.Store, cfg config.ServerConfig) *chi.Mux {
	accountSvc := appaccount.NewService(st)
	subsSvc := appsubs.NewService(st, cfg)
	stakingSvc := appstaking.NewService(st)
	settlementSvc := appsettlement.NewService(st)
	payoutsSvc := apppayouts.NewService(st)
	publicSvc := apppublic.NewService(st)

	accountHandlers := NewAccountHandlers(accountSvc, subsSvc)
	sessionHandlers := NewSessionHandlers(stakingSvc, settlementSvc)
	stakeHandlers := NewStakeHandlers(stakingSvc)
	payoutHandlers := NewPayoutHandlers(payoutsSvc)
	publicHandlers := NewPublicHandlers(publicSvc, stakingSvc)
	adminHandlers := NewAdminHandlers(st, subsSvc)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", adminHandlers.Health())

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())

		r.Get("/public/marketplace", publicHandlers.Marketplace())
		r.Get("/public/sessions/{session_id}", publicHandlers.Session())
		r.Get("/public/leaderboard", publicHandlers.Leaderboard())
		r.Get("/public/stats", publicHandlers.Stats())

		r.Post("/users/register", accountHandlers.Register())

		r.Group(func(r chi.Router) {
			r.Use(UserAuthMiddleware(st))
			r.Get("/users/me", accountHandlers.Me())
			r.Post("/users/me/cashtag", accountHandlers.UpdateCashTag())
			r.Post("/subscriptions", accountHandlers.RequestSubscription())

			r.Post("/sessions", sessionHandlers.Create())
			r.Get("/sessions/mine", sessionHandlers.Mine())
			r.Post("/sessions/{session_id}/start", sessionHandlers.Start())
			r.Post("/sessions/{session_id}/cancel", sessionHandlers.Cancel())
			r.Post("/sessions/{session_id}/complete", sessionHandlers.Complete())
			r.Post("/sessions/{session_id}/stakes", stakeHandlers.Reserve())

			r.Get("/stakes/mine", stakeHandlers.Mine())
			r.Get("/stakes/backed", stakeHandlers.Backed())
			r.Post("/stakes/{stake_id}/confirm", stakeHandlers.Confirm())
			r.Post("/stakes/{stake_id}/cancel", stakeHandlers.Cancel())

			r.Get("/payouts/owed-to-me", payoutHandlers.OwedToMe())
			r.Get("/payouts/owed-by-me", payoutHandlers.OwedByMe())
			r.Post("/payouts/{payout_id}/paid", payoutHandlers.MarkPaid())
		})

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminAPIKey))
			r.Get("/admin/subscriptions/pending", adminHandlers.PendingSubscriptions())
			r.Post("/admin/subscriptions/{subscription_id}/approve", adminHandlers.ApproveSubscription())
			r.Post("/admin/subscriptions/{subscription_id}/reject", adminHandlers.RejectSubscription())

			r.Route("/debug", func(r chi.Router) {
				r.Use(BodyCaptureMiddleware(4096))
				r.Get("/vars", expvar.Handler().ServeHTTP)
			})
		})
	})

	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 32)
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
