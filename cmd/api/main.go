package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/desk-metrics/internal/api/http"
	"github.com/spec-kit/desk-metrics/internal/api/http/handlers"
	"github.com/spec-kit/desk-metrics/internal/config"
	"github.com/spec-kit/desk-metrics/internal/events"
	"github.com/spec-kit/desk-metrics/internal/ingest"
	"github.com/spec-kit/desk-metrics/internal/observability"
	"github.com/spec-kit/desk-metrics/internal/persistence"
	"github.com/spec-kit/desk-metrics/internal/repository"
	"github.com/spec-kit/desk-metrics/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, pingers, closeStores, err := buildSnapshotStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to init snapshot store", zap.Error(err))
	}
	defer closeStores()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	registerMetricsSubscriber(dispatcher, metrics, logger)

	if cfg.Upstream.BaseURL != "" {
		client := ingest.NewClient(cfg.Upstream)
		worker := ingest.NewWorker(client, store, dispatcher, cfg.Ingest, logger)
		go worker.Run(ctx)
	} else {
		logger.Warn("UPSTREAM_BASE_URL not set; serving the existing snapshot only")
	}

	queryService := service.NewQueryService(service.QueryDependencies{Store: store})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, queryService, pingers),
		Reports: handlers.NewReportsHandler(queryService),
		Metrics: handlers.NewMetricsHandler(metrics),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

// buildSnapshotStore selects the backend from config and returns the
// store, the dependencies readiness should ping, and a close func.
func buildSnapshotStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.SnapshotStore, map[string]handlers.Pinger, func(), error) {
	switch cfg.Snapshot.Backend {
	case config.SnapshotBackendPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
				pg.Close()
				return nil, nil, nil, err
			}
		}
		store := repository.NewPostgresSnapshotStore(pg.Pool)
		return store, map[string]handlers.Pinger{"postgres": pg}, pg.Close, nil

	case config.SnapshotBackendRedis:
		rd := persistence.NewRedis(cfg.Redis, logger)
		store := repository.NewRedisSnapshotStore(rd.Client)
		return store, map[string]handlers.Pinger{"redis": rd}, rd.Close, nil

	default:
		store, err := repository.NewFileSnapshotStore(cfg.Snapshot.FilePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, map[string]handlers.Pinger{}, func() {}, nil
	}
}

// registerMetricsSubscriber keeps the ingestion gauges current as runs
// complete.
func registerMetricsSubscriber(dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) {
	dispatcher.Subscribe(events.EventSnapshotIngested, func(ctx context.Context, event events.Event) error {
		payload, ok := event.Payload.(events.SnapshotIngestedPayload)
		if !ok {
			return nil
		}
		metrics.SetGauge(observability.GaugeSnapshotTickets, float64(payload.TicketCount))
		metrics.SetGauge(observability.GaugeBacklogTotal, float64(payload.Backlog))
		metrics.RecordIngestionLag(event.Timestamp.Sub(payload.FetchedAt).Seconds())
		return nil
	})
	dispatcher.Subscribe(events.EventIngestFailed, func(ctx context.Context, event events.Event) error {
		if payload, ok := event.Payload.(events.IngestFailedPayload); ok {
			logger.Error("ingestion run failed",
				zap.String("run_id", event.RunID),
				zap.Int("attempts", payload.Attempts),
				zap.String("error", payload.Error),
			)
		}
		return nil
	})
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
