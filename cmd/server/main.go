// Command server runs the Persian medical-assistant chat service: intent
// classification, category routing and the triage interview behind one HTTP
// API.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"salamatbot/internal/categories"
	"salamatbot/internal/categories/informationseeking"
	"salamatbot/internal/categories/medicationqueries"
	"salamatbot/internal/categories/placeholder"
	"salamatbot/internal/categories/symptomreporting"
	"salamatbot/internal/classification"
	"salamatbot/internal/common/config"
	"salamatbot/internal/common/llm"
	"salamatbot/internal/common/logger"
	"salamatbot/internal/dispatch"
	"salamatbot/internal/server"
	"salamatbot/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = zapLogger.Sync() }()
	log := logger.NewZapAdapter(zapLogger)

	log.Info("starting salamatbot", map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	ai := buildLLMClient(cfg, log)
	store, cleanup, err := buildSessionStore(cfg, log)
	if err != nil {
		log.WithError(err).Error("session store initialization failed", nil)
		os.Exit(1)
	}
	defer cleanup()

	registry := categories.NewRegistry()
	registry.Register(symptomreporting.New(ai, log,
		symptomreporting.WithQuestionLimits(cfg.Triage.MaxQuestions, cfg.Triage.HardQuestionLimit)))
	registry.Register(medicationqueries.New(ai, log))
	registry.Register(informationseeking.New(ai, log))
	registry.Register(placeholder.NewChronicDisease())
	registry.Register(placeholder.NewDiagnostics())
	registry.Register(placeholder.NewPreventiveCare())

	dispatcher := dispatch.New(
		classification.NewClassifier(ai, log),
		registry,
		store,
		log,
	)

	srv := server.New(cfg.Server.Addr(), dispatcher, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received", nil)
	case err := <-errCh:
		log.WithError(err).Error("http server failed", nil)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed", nil)
		os.Exit(1)
	}
	log.Info("server stopped", nil)
}

// buildLLMClient returns nil when no API key is configured; the service then
// runs rule-based classification and placeholder answers only.
func buildLLMClient(cfg *config.Config, log logger.Logger) llm.Client {
	client, err := llm.NewOpenAIClient(llm.Options{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: time.Duration(cfg.LLM.Timeout) * time.Second,
	})
	if err != nil {
		if errors.Is(err, llm.ErrNoAPIKey) {
			log.Warn("no LLM API key configured, running in degraded mode", nil)
			return nil
		}
		log.WithError(err).Error("LLM client initialization failed", nil)
		os.Exit(1)
	}
	log.Info("LLM client ready", map[string]interface{}{
		"baseUrl": cfg.LLM.BaseURL,
		"model":   cfg.LLM.Model,
	})
	return client
}

func buildSessionStore(cfg *config.Config, log logger.Logger) (session.Store, func(), error) {
	ttl := time.Duration(cfg.Sessions.TTLHours) * time.Hour
	noop := func() {}

	switch cfg.Sessions.Backend {
	case "memory":
		log.Info("using in-memory session store", nil)
		return session.NewMemoryStore(ttl), noop, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Sessions.Redis.Address,
			Password: cfg.Sessions.Redis.Password,
			DB:       cfg.Sessions.Redis.DB,
		})
		if err := pingWithRetry(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}); err != nil {
			return nil, noop, fmt.Errorf("redis unreachable at %s: %w", cfg.Sessions.Redis.Address, err)
		}
		log.Info("using redis session store", map[string]interface{}{
			"address": cfg.Sessions.Redis.Address,
		})
		return session.NewRedisStore(client, ttl), func() { _ = client.Close() }, nil

	case "postgres":
		db, err := sql.Open("postgres", cfg.Sessions.Postgres.GetDSN())
		if err != nil {
			return nil, noop, fmt.Errorf("postgres open failed: %w", err)
		}
		if cfg.Sessions.Postgres.MaxConnections > 0 {
			db.SetMaxOpenConns(cfg.Sessions.Postgres.MaxConnections)
		}
		if err := pingWithRetry(db.PingContext); err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("postgres unreachable: %w", err)
		}
		store := session.NewPostgresStore(db, ttl)
		if err := store.EnsureSchema(context.Background()); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		log.Info("using postgres session store", map[string]interface{}{
			"host": cfg.Sessions.Postgres.Host,
		})
		return store, func() { _ = db.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown session backend %q", cfg.Sessions.Backend)
	}
}

// pingWithRetry probes a backend with exponential backoff before giving up.
func pingWithRetry(ping func(ctx context.Context) error) error {
	const attempts = 5
	backoff := time.Second

	var err error
	for i := 0; i < attempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = ping(ctx)
		cancel()
		if err == nil {
			return nil
		}
		time.Sleep(backoff)
		backoff *= 2
	}
	return err
}
