package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/arjunmehta/rechargehub-backend/api/controllers"
	"github.com/arjunmehta/rechargehub-backend/api/routes"
	"github.com/arjunmehta/rechargehub-backend/internal/auth"
	plan "github.com/arjunmehta/rechargehub-backend/internal/plans"
	recharge "github.com/arjunmehta/rechargehub-backend/internal/recharges"
	"github.com/arjunmehta/rechargehub-backend/internal/recommend"
	user "github.com/arjunmehta/rechargehub-backend/internal/users"
	"github.com/arjunmehta/rechargehub-backend/pkg/auth/session"
	"github.com/arjunmehta/rechargehub-backend/pkg/config"
	"github.com/arjunmehta/rechargehub-backend/pkg/db"
	"github.com/arjunmehta/rechargehub-backend/pkg/enums"
	"github.com/arjunmehta/rechargehub-backend/pkg/logger"
	"github.com/arjunmehta/rechargehub-backend/pkg/metrics"
	"github.com/arjunmehta/rechargehub-backend/pkg/migrate"
	"github.com/arjunmehta/rechargehub-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	// One backing is selected at startup and used for every repository.
	// The GORM and memory stores are never mixed within a process.
	var (
		userRepo     user.Repository
		planRepo     plan.Repository
		rechargeRepo recharge.Repository
		readiness    = map[string]controllers.Pinger{}
	)

	if cfg.FeatureFlags.UseMemoryStore {
		logg.Info(context.Background(), "using in-memory repositories")
		memUsers := user.NewMemoryRepository()
		memPlans := plan.NewMemoryRepository()
		userRepo = memUsers
		planRepo = memPlans
		rechargeRepo = recharge.NewMemoryRepository(recharge.NewRepoResolver(memUsers, memPlans))
	} else {
		dbClient, err := db.New(context.Background(), cfg.DB, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()

		if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
			logg.Error(context.Background(), "failed to run dev migrations", err)
			os.Exit(1)
		}

		userRepo = user.NewGormRepository(dbClient.DB())
		planRepo = plan.NewGormRepository(dbClient.DB())
		rechargeRepo = recharge.NewGormRepository(dbClient.DB())
		readiness["postgres"] = dbClient
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()
	readiness["redis"] = redisClient

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	rechargeMetrics := metrics.NewRechargeMetrics(registry)

	authService, err := auth.NewService(userRepo, sessionManager, cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	planService, err := plan.NewService(planRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create plan service", err)
		os.Exit(1)
	}

	rechargeService, err := recharge.NewService(
		rechargeRepo,
		planService,
		userRepo,
		enums.Operator(cfg.Recharge.DefaultOperator),
		rechargeMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create recharge service", err)
		os.Exit(1)
	}

	recommendService, err := recommend.NewService(planService, cfg.Recharge.RecommendTopN)
	if err != nil {
		logg.Error(context.Background(), "failed to create recommend service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":          cfg.App.Env,
		"addr":         addr,
		"memory_store": cfg.FeatureFlags.UseMemoryStore,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:       cfg,
			Logger:       logg,
			HTTPMetrics:  httpMetrics,
			Registry:     registry,
			RedisClient:  redisClient,
			Sessions:     sessionManager,
			AuthService:  authService,
			PlanService:  planService,
			Recharges:    rechargeService,
			Recommender:  recommendService,
			Users:        userRepo,
			Dependencies: readiness,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
