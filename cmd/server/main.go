package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"news-classifier-registry/internal/adapters/primary/http/handlers"
	"news-classifier-registry/internal/adapters/primary/http/middleware"
	"news-classifier-registry/internal/adapters/secondary/fmserving"
	"news-classifier-registry/internal/adapters/secondary/kserve"
	"news-classifier-registry/internal/adapters/secondary/newsfeed"
	"news-classifier-registry/internal/adapters/secondary/postgres"
	"news-classifier-registry/internal/config"
	"news-classifier-registry/internal/core/gating"
	ports "news-classifier-registry/internal/core/ports/output"
	"news-classifier-registry/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Create database pool
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("parse db config: %v", err)
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("create db pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("ping db: %v", err)
	}
	log.Info("database connection established")

	// Secondary Adapters (Output Ports - Repositories)
	modelRepo := postgres.NewRegisteredModelRepository(pool)
	versionRepo := postgres.NewModelVersionRepository(pool)

	// Production criteria: built-in defaults, optional YAML profile,
	// optional hot reload.
	criteria := gating.Default()
	if cfg.Registry.CriteriaProfile != "" {
		criteria, err = gating.LoadProfile(cfg.Registry.CriteriaProfile)
		if err != nil {
			log.Fatalf("load criteria profile: %v", err)
		}
		log.Infof("production criteria loaded from %s", cfg.Registry.CriteriaProfile)
	}
	criteriaStore := gating.NewStore(criteria)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Registry.WatchCriteria && cfg.Registry.CriteriaProfile != "" {
		watcher := gating.NewWatcher(cfg.Registry.CriteriaProfile, criteriaStore)
		go func() {
			if err := watcher.Run(rootCtx); err != nil {
				log.WithError(err).Warn("criteria watcher stopped")
			}
		}()
	}

	// Serving sync client (optional)
	var servingClient ports.ServingClient
	if cfg.Serving.Enabled {
		client, err := kserve.NewServingClient(&cfg.Serving)
		if err != nil {
			log.Warnf("serving client init failed (continuing without endpoint sync): %v", err)
		} else {
			servingClient = client
			log.Info("serving client initialized")
		}
	} else {
		log.Info("serving endpoint sync disabled")
	}

	// Classifier client and article source (optional)
	classifier := fmserving.NewClient(&cfg.FMServing)
	var articleSource ports.ArticleSource
	if cfg.FMServing.FeedURL != "" {
		articleSource = newsfeed.NewScraper(cfg.FMServing.FeedURL, nil)
	}

	// Core Services (Application Layer)
	modelSvc := services.NewRegisteredModelService(modelRepo, versionRepo)
	versionSvc := services.NewModelVersionService(versionRepo, modelRepo)
	registrationSvc := services.NewRegistrationService(versionRepo, modelRepo, criteriaStore)
	promotionSvc := services.NewPromotionService(versionRepo, modelRepo, servingClient, cfg.Serving.Namespace, cfg.Serving.EndpointName)
	inferenceSvc := services.NewInferenceService(versionRepo, modelRepo, classifier, articleSource)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(modelSvc, versionSvc, registrationSvc, promotionSvc, inferenceSvc)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1/registry")
	if cfg.Auth.Enabled {
		api.Use(middleware.BearerAuth(cfg.Auth.Secret))
	}
	h.RegisterRoutes(api)

	// Health check with DB ping
	router.GET("/healthz", func(c *gin.Context) {
		if err := pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	<-rootCtx.Done()
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
