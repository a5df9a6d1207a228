package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/giftvault/catalog-api/docs"
	"github.com/giftvault/catalog-api/internal/api"
	"github.com/giftvault/catalog-api/internal/core/service"
	"github.com/giftvault/catalog-api/internal/infrastructure/db/postgres"
	"github.com/giftvault/catalog-api/internal/infrastructure/db/redis"
	"github.com/giftvault/catalog-api/internal/infrastructure/queue"
	"github.com/giftvault/catalog-api/internal/pkg/config"
	"github.com/giftvault/catalog-api/internal/pkg/hash"
	"github.com/giftvault/catalog-api/internal/pkg/i18n"
	"github.com/giftvault/catalog-api/internal/pkg/token"
	"github.com/giftvault/catalog-api/migrations"
	"github.com/giftvault/catalog-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Gift Certificate Catalog API
// @version      1.0
// @description  Multi-tenant gift certificate catalog with orders, audit
// @description  journal and role-based access control.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Connect(ctx, cfg.Postgres.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer db.Close()

	if err := migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	catalog, err := i18n.New(cfg.DefaultLocale)
	if err != nil {
		log.Fatal().Err(err).Msg("loading locale catalog failed")
	}

	// --- Infrastructure ---
	userRepo := postgres.NewUserRepository(db, log)
	roleRepo := postgres.NewRoleRepository(db, log)
	tagRepo := postgres.NewTagRepository(db, log)
	certRepo := postgres.NewCertificateRepository(db, log)
	orderRepo := postgres.NewOrderRepository(db, log)
	auditRepo := postgres.NewAuditRepository(db, log)
	certCache := redis.NewCertificateCache(rdb, cfg.Redis.CacheTTL, log)

	feed := queue.NewDispatcher(0, log)
	feed.Start(ctx)

	tokens := token.NewProvider(cfg.JWTSecret, cfg.JWTTTL)
	hasher := hash.NewHasher(cfg.BcryptCost)

	// --- Core services ---
	authService := service.NewAuthService(userRepo, roleRepo, auditRepo, feed, db, hasher, tokens, log)
	userService := service.NewUserService(userRepo, roleRepo, auditRepo, feed, db, log)
	tagService := service.NewTagService(tagRepo, orderRepo, auditRepo, feed, db, log)
	certService := service.NewCertificateService(certRepo, tagRepo, auditRepo, feed, certCache, db, log)
	orderService := service.NewOrderService(orderRepo, userRepo, certRepo, auditRepo, feed, db, log)

	e := api.NewRouter(api.Dependencies{
		Auth:         authService,
		Users:        userService,
		Tags:         tagService,
		Certificates: certService,
		Orders:       orderService,
		Tokens:       tokens,
		Catalog:      catalog,
		DB:           db,
		Redis:        rdb,
		Log:          log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
