package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"scholarhub/internal/account"
	"scholarhub/internal/application"
	"scholarhub/internal/audit"
	"scholarhub/internal/cache"
	"scholarhub/internal/coordinator"
	"scholarhub/internal/platform/config"
	"scholarhub/internal/platform/httpserver"
	"scholarhub/internal/platform/logger"
	platformmongo "scholarhub/internal/platform/mongo"
	platformredis "scholarhub/internal/platform/redis"
	"scholarhub/internal/project"
	mongostore "scholarhub/internal/store/mongo"
	httptransport "scholarhub/internal/transport/http"
	"scholarhub/internal/update"
	"scholarhub/pkg/password"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the entity service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := platformmongo.New(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("document store unavailable")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Close(closeCtx)
	}()

	var appCache cache.Cache
	var cacheHealth httptransport.HealthChecker
	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("cache unavailable")
	}
	if redisClient != nil {
		defer redisClient.Close()
		appCache = cache.NewRedis(redisClient.Client)
		cacheHealth = redisClient
		log.Info().Msg("using redis cache")
	} else {
		appCache = cache.NewMemory()
		log.Warn().Msg("no redis configured, using in-process cache")
	}

	stores := mongostore.NewStores(mongoClient.Database())
	auditor := audit.NewPublisher(stores.Audit)
	coord := coordinator.New(stores.Updates, stores.Applications, appCache, auditor, log)

	accounts := account.NewService(stores.Accounts, stores.Projects, stores.Applications, appCache, coord, password.NewBcrypt(), log)
	projects := project.NewService(stores.Projects, stores.Accounts, stores.Updates, stores.Applications, appCache, coord, log)
	updates := update.NewService(stores.Updates, stores.Accounts, stores.Projects, appCache, coord, log)
	applications := application.NewService(stores.Applications, stores.Accounts, stores.Projects, appCache, coord, log)

	router := httptransport.NewRouter(httptransport.Deps{
		Accounts:     accounts,
		Projects:     projects,
		Updates:      updates,
		Applications: applications,
		Audit:        auditor,
		Store:        mongoClient,
		Cache:        cacheHealth,
		Log:          log,
	})

	srv := httpserver.New(cfg.Addr, router)
	log.Info().Str("addr", cfg.Addr).Msg("starting scholarhub")

	if err := httpserver.Run(ctx, srv, 10*time.Second); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("shutdown complete")
}
