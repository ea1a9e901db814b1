// @title                       Blood Donation API
// @version                     1.0
// @description                 Coordinates blood donation requests between requesters, donors and staff.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lifedrop/blood-donation-api/docs"
	"github.com/lifedrop/blood-donation-api/internal/api"
	"github.com/lifedrop/blood-donation-api/internal/core/ports"
	"github.com/lifedrop/blood-donation-api/internal/core/service"
	mongodb "github.com/lifedrop/blood-donation-api/internal/infrastructure/db/mongo"
	redisdb "github.com/lifedrop/blood-donation-api/internal/infrastructure/db/redis"
	"github.com/lifedrop/blood-donation-api/internal/infrastructure/firebase"
	"github.com/lifedrop/blood-donation-api/internal/infrastructure/http/handlers"
	"github.com/lifedrop/blood-donation-api/internal/infrastructure/queue"
	"github.com/lifedrop/blood-donation-api/internal/pkg/config"
	"github.com/lifedrop/blood-donation-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "blood-donation-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "blood-donation-api",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	requestRepo := mongodb.NewDonationRequestRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	blogRepo := mongodb.NewBlogRepository(db)
	eventRepo := mongodb.NewEventRepository(db)

	// --- Audit trail ---
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, service.NewAuditService(eventRepo, log), log)
	dispatcher.Start(ctx)

	// --- Credentials: session JWTs first, then Firebase ID tokens ---
	authService := service.NewAuthService(cfg.JWTSecret, cfg.SessionTTL)
	verifiers := service.ChainVerifier{authService}
	if cfg.Firebase.ProjectID != "" {
		fbClient, err := firebase.NewAuthClient(ctx, firebase.Config{
			ProjectID:        cfg.Firebase.ProjectID,
			ServiceKeyBase64: cfg.Firebase.ServiceKey,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("firebase initialisation failed")
		}
		verifiers = append(verifiers, firebase.NewVerifier(fbClient))
	} else {
		log.Warn().Msg("FIREBASE_PROJECT_ID not set, only session tokens are accepted")
	}

	router := api.NewRouter(api.Dependencies{
		Donations:  service.NewDonationService(requestRepo, userRepo, redisdb.NewIdempotencyStore(rdb), dispatcher, log),
		Users:      service.NewUserService(userRepo, log),
		Blogs:      service.NewBlogService(blogRepo, log),
		Auth:       authService,
		Verifier:   ports.CredentialVerifier(verifiers),
		UserLookup: userRepo,
		Checks: map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		},
		Logger:       log,
		CORSOrigins:  cfg.CORSOrigins,
		SecureCookie: !cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
