package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"plantchat/internal/cache"
	"plantchat/internal/config"
	"plantchat/internal/handler"
	"plantchat/internal/observability"
	"plantchat/internal/repository"
	"plantchat/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("plantchat", cfg.Logging.Level, cfg.Logging.Format)
	log.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("Plant Recommendation Chatbot")

	gin.SetMode(cfg.Server.GinMode)
	ctx := context.Background()

	// Document store
	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open document store")
	}
	defer store.Close()

	if cfg.Store.SeedFile != "" {
		data, err := repository.LoadSeedFile(cfg.Store.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.Store.SeedFile).Msg("failed to load seed file")
		}
		written, errs := repository.Seed(ctx, store, data)
		for _, e := range errs {
			log.Warn().Str("error", e).Msg("seed document skipped")
		}
		log.Info().Int("documents", written).Str("file", cfg.Store.SeedFile).Msg("catalog seeded")
	}

	// Lookup cache
	cacheClient := openCache(ctx, cfg.Redis)
	defer cacheClient.Close()

	// Services
	ranker := service.NewRanker(cfg.Ranking)
	catalog := service.NewCatalogService(store, ranker, cfg.Catalog.CandidateLimit, cfg.Catalog.MaxProducts)
	guides := service.NewCareGuideService(store, ranker, cfg.Catalog.MaxGuides)
	categories := service.NewCategoryService(store, cacheClient, time.Duration(cfg.Redis.CategoryTTL)*time.Second)

	llm := service.NewOpenAIClient(&cfg.LLM)
	if !cfg.LLM.Enabled {
		log.Warn().Msg("LLM_API_KEY / GEMINI_API_KEY not set, chat answers will use the direct catalog fallback")
	}
	agent := service.NewAgent(llm, service.NewCatalogTools(catalog, guides, categories), cfg.Agent.MaxIterations)
	recommender := service.NewRecommender(agent, catalog, cfg.Catalog.FallbackResults)

	log.Info().Msg("services initialized")

	// Router
	router := gin.New()
	router.Use(gin.Recovery(), observability.RequestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = config.SplitList(cfg.Server.AllowedOrigins)
	corsConfig.AllowMethods = config.SplitList(cfg.Server.AllowedMethods)
	corsConfig.AllowHeaders = config.SplitList(cfg.Server.AllowedHeaders)
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	handler.RegisterRoutes(router,
		handler.NewChatHandler(recommender),
		handler.NewCatalogHandler(catalog, guides, categories),
		handler.NewSystemHandler(
			handler.BuildInfo{Version: Version, BuildTime: BuildTime, GitCommit: GitCommit},
			cfg.Store.Driver,
			cfg.LLM.Enabled,
		),
	)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}

// openStore connects the configured document store driver
func openStore(ctx context.Context, cfg *config.Config) (repository.DocumentStore, error) {
	if cfg.Store.Driver == "memory" {
		log.Info().Msg("using in-memory document store")
		return repository.NewMemoryStore(), nil
	}

	store, err := repository.NewPostgresStore(
		cfg.GetPostgreSQLDSN(),
		cfg.Store.MaxConnections,
		cfg.Store.MaxIdleConnections,
	)
	if err != nil {
		return nil, err
	}
	if cfg.Store.AutoMigrate {
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, err
		}
	}
	log.Info().Str("database", cfg.Store.Database).Msg("connected to PostgreSQL document store")
	return store, nil
}

// openCache returns Redis when configured and reachable, otherwise an in-process cache
func openCache(ctx context.Context, cfg config.RedisConfig) cache.Client {
	if !cfg.Enabled {
		return cache.NewMemoryClient()
	}

	client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		Prefix:   cfg.Prefix,
	})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unavailable, using in-process cache")
		return cache.NewMemoryClient()
	}
	log.Info().Str("addr", cfg.Addr).Msg("connected to Redis cache")
	return client
}
