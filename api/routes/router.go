package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arjunmehta/rechargehub-backend/api/controllers"
	"github.com/arjunmehta/rechargehub-backend/api/middleware"
	"github.com/arjunmehta/rechargehub-backend/internal/auth"
	plan "github.com/arjunmehta/rechargehub-backend/internal/plans"
	recharge "github.com/arjunmehta/rechargehub-backend/internal/recharges"
	"github.com/arjunmehta/rechargehub-backend/internal/recommend"
	"github.com/arjunmehta/rechargehub-backend/pkg/auth/session"
	"github.com/arjunmehta/rechargehub-backend/pkg/config"
	"github.com/arjunmehta/rechargehub-backend/pkg/enums"
	"github.com/arjunmehta/rechargehub-backend/pkg/logger"
	"github.com/arjunmehta/rechargehub-backend/pkg/metrics"
	"github.com/arjunmehta/rechargehub-backend/pkg/redis"
)

// Deps bundles everything the router mounts. RedisClient may be nil in
// memory store mode, which disables auth rate limiting.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	HTTPMetrics  *metrics.HTTPMetrics
	Registry     *prometheus.Registry
	RedisClient  *redis.Client
	Sessions     session.AccessSessionChecker
	AuthService  auth.Service
	PlanService  plan.Service
	Recharges    recharge.Service
	Recommender  recommend.Service
	Users        controllers.UserLister
	Dependencies map[string]controllers.Pinger
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Dependencies))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		rateLimited(r, deps.RedisClient, registerPolicy, logg).
			Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		rateLimited(r, deps.RedisClient, loginPolicy, logg).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		rateLimited(r, deps.RedisClient, loginPolicy, logg).
			Post("/admin/login", controllers.AuthAdminLogin(deps.AuthService, logg))

		r.Get("/plans", controllers.PlansList(deps.PlanService, logg))
		r.Post("/ai-recommend", controllers.Recommend(deps.Recommender, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

			r.Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
			r.Post("/recharge", controllers.RechargeCreate(deps.Recharges, logg))
			r.Get("/recharges/{userId}", controllers.RechargeHistory(deps.Recharges, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(enums.UserRoleAdmin.String(), logg))

				r.Post("/plans", controllers.AdminPlansCreate(deps.PlanService, logg))
				r.Put("/plans/{id}", controllers.AdminPlansUpdate(deps.PlanService, logg))
				r.Delete("/plans/{id}", controllers.AdminPlansDelete(deps.PlanService, logg))

				r.Route("/admin", func(r chi.Router) {
					r.Get("/plans", controllers.AdminPlansList(deps.PlanService, logg))
					r.Get("/recharges", controllers.AdminRecharges(deps.Recharges, logg))
					r.Get("/operator-stats", controllers.AdminOperatorStats(deps.Recharges, logg))
					r.Get("/stats", controllers.AdminStats(deps.Recharges, logg))
					r.Get("/users", controllers.AdminUsers(deps.Users, logg))
				})
			})
		})
	})

	return r
}

func rateLimited(r chi.Router, store *redis.Client, policy middleware.AuthRateLimitPolicy, logg *logger.Logger) chi.Router {
	if store == nil {
		return r
	}
	return r.With(middleware.AuthRateLimit(policy, store, logg))
}
