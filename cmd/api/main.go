package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"scenecast/internal/captions"
	"scenecast/internal/config"
	"scenecast/internal/httpapi"
	"scenecast/internal/httpapi/handlers"
	"scenecast/internal/pkg/logger"
	"scenecast/internal/pkg/shutdown"
	"scenecast/internal/render"
	"scenecast/internal/renderer"
	"scenecast/internal/storage"
	"scenecast/internal/transcribe"
)

func main() {
	log := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Format:      getEnv("LOG_FORMAT", "json"),
		ServiceName: "scenecast-api",
		AddSource:   getEnv("LOG_SOURCE", "false") == "true",
	})

	log.Info("starting scenecast API",
		"version", "0.1.0",
	)

	ctx := context.Background()
	shutdownMgr := shutdown.NewManager(log, 30*time.Second)

	deps := handlers.Deps{Log: log}

	// A broken configuration does not abort startup: the server still comes
	// up and answers every dependent endpoint with a fixed 500, so the
	// failure is visible to callers instead of a connection refused.
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("configuration invalid, serving in degraded mode")
		deps.CfgErr = err
	}

	httpPort := getEnv("HTTP_PORT", "8080")

	if cfg != nil {
		httpPort = cfg.HTTPPort

		log.Info("initializing storage provider", "provider", cfg.StorageProvider)
		sp, err := storage.NewProvider(ctx, cfg)
		if err != nil {
			log.LogFatal("failed to initialize storage provider", err)
		}
		log.Info("storage provider initialized", "provider", sp.Provider())

		log.Info("initializing render backend", "backend", cfg.RenderBackend)
		backend, err := renderer.NewBackend(ctx, cfg)
		if err != nil {
			log.LogFatal("failed to initialize render backend", err)
		}
		log.Info("render backend initialized", "backend", backend.Backend())

		var cache render.ProgressCache
		if cfg.PollCacheEnabled() {
			log.Info("connecting to Redis", "addr", cfg.RedisAddr)
			rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
			shutdownMgr.Register("redis", func(ctx context.Context) error {
				return rdb.Close()
			})
			if err := rdb.Ping(ctx).Err(); err != nil {
				log.LogFatal("failed to ping Redis", err)
			}
			cache = render.NewRedisCache(rdb, cfg.PollCacheTTL)
			log.Info("progress cache enabled", "ttl", cfg.PollCacheTTL.String())
		}

		transcriberOpts := []transcribe.Option{}
		if cfg.TranscribeBaseURL != "" {
			transcriberOpts = append(transcriberOpts, transcribe.WithBaseURL(cfg.TranscribeBaseURL))
		}
		if cfg.TranscribeModel != "" {
			transcriberOpts = append(transcriberOpts, transcribe.WithModel(cfg.TranscribeModel))
		}
		transcriber := transcribe.NewClient(cfg.TranscribeAPIKey, transcriberOpts...)

		deps.Submitter = render.NewSubmitter(backend, log)
		deps.Poller = render.NewPoller(backend, cache, log)
		deps.Captions = captions.NewService(sp, transcriber, log)
	}

	router := httpapi.NewRouter(deps)

	server := &http.Server{
		Addr:         "0.0.0.0:" + httpPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	shutdownMgr.Register("http-server", func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return server.Shutdown(ctx)
	})

	go func() {
		log.Info("HTTP server listening",
			"addr", server.Addr,
			"port", httpPort,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.LogFatal("HTTP server failed", err)
		}
	}()

	shutdownMgr.Wait()
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
