package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"hikaya/api/internal/app"
	"hikaya/api/internal/config"
	"hikaya/api/internal/content"
	"hikaya/api/internal/gen"
	"hikaya/api/internal/history"
	"hikaya/api/internal/identity"
	"hikaya/api/internal/media"
	"hikaya/api/internal/search"
	"hikaya/api/internal/storage"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	backend, cleanup, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("storage connection failed: %v", err)
	}
	defer cleanup()

	users := identity.NewStore(backend)
	stories := content.NewStore(backend, users)

	opts := app.Options{}

	genService, err := gen.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("gemini client failed: %v", err)
	}
	if genService.Enabled() {
		opts.Gen = genService
	} else {
		log.Printf("GEMINI_API_KEY not set, story generation disabled")
	}

	var meiliClient *search.Meili
	if strings.TrimSpace(cfg.MeiliURL) != "" {
		meiliClient = search.NewMeili(cfg.MeiliURL, cfg.MeiliMasterKey)
		defer meiliClient.Close()
	}
	opts.Search = search.NewService(meiliClient, search.NewScan(stories))

	if strings.TrimSpace(cfg.HistoryDir) != "" {
		if err := os.MkdirAll(cfg.HistoryDir, 0o755); err != nil {
			log.Fatalf("failed to create history dir: %v", err)
		}
		opts.History = history.New(cfg.HistoryDir)
	}

	if strings.TrimSpace(cfg.MinioEndpoint) != "" {
		mediaService, err := media.New(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MediaBaseURL, cfg.MinioUseSSL)
		if err != nil {
			log.Fatalf("media storage failed: %v", err)
		}
		opts.Media = mediaService
	} else {
		log.Printf("MINIO_ENDPOINT not set, media uploads disabled")
	}

	service := app.NewService(backend, users, stories, opts)
	if err := service.Bootstrap(ctx); err != nil {
		log.Printf("WARNING: bootstrap error (will retry on next restart): %v", err)
	}

	httpServer := app.NewHTTPServer(service, cfg.CORSOrigin)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Hikaya API listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// openBackend picks the storage backend: Redis when configured, then
// Postgres, then an in-process map for local development.
func openBackend(ctx context.Context, cfg config.Config) (storage.Store, func(), error) {
	if strings.TrimSpace(cfg.RedisURL) != "" {
		log.Printf("Using Redis storage")
		redisStore, err := storage.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return redisStore, func() { _ = redisStore.Close() }, nil
	}

	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		log.Printf("Using PostgreSQL storage")
		pgStore, err := storage.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return pgStore, func() { _ = pgStore.Close() }, nil
	}

	log.Printf("WARNING: no REDIS_URL or DATABASE_URL set, using in-memory storage (data is lost on restart)")
	return storage.NewMemoryStore(), func() {}, nil
}
