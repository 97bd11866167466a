package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	cacheadapter "github.com/rigpark/escrow-service/internal/adapters/cache"
	"github.com/rigpark/escrow-service/internal/adapters/directory"
	eventadapter "github.com/rigpark/escrow-service/internal/adapters/events"
	"github.com/rigpark/escrow-service/internal/adapters/gateway"
	httpadapter "github.com/rigpark/escrow-service/internal/adapters/http"
	"github.com/rigpark/escrow-service/internal/adapters/memory"
	"github.com/rigpark/escrow-service/internal/adapters/postgres"
	"github.com/rigpark/escrow-service/internal/adapters/risk"
	"github.com/rigpark/escrow-service/internal/adapters/scheduler"
	"github.com/rigpark/escrow-service/internal/application"
	"github.com/rigpark/escrow-service/internal/ports"
)

// ledgerStore is the full storage surface the runtime wires: transactional
// store plus the worker-side outbox view.
type ledgerStore interface {
	ports.Store
	ports.OutboxRepository
}

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	grpcServer *grpc.Server
	grpcLis    net.Listener
	outbox     *eventadapter.OutboxWorker
	sweeper    *scheduler.Worker
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.Info("bootstrapping escrow ledger service", "http_port", cfg.HTTPPort, "grpc_port", cfg.GRPCPort)

	cleanups := make([]func(), 0, 4)

	var store ledgerStore
	if cfg.DatabaseURL != "" {
		db, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("gorm sql db: %w", err)
		}
		cleanups = append(cleanups, func() { _ = sqlDB.Close() })
		if err := postgres.RunMigrations(ctx, db); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		store = postgres.NewStore(db)
	} else {
		logger.Warn("no postgres url configured; using in-memory store")
		store = memory.NewStore()
	}

	var mirrorCache ports.MirrorCache
	if cfg.RedisURL != "" {
		redisClient, err := cacheadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		cleanups = append(cleanups, func() { _ = redisClient.Close() })
		mirrorCache = cacheadapter.NewRedisMirrorCache(redisClient)
	}

	var publisher ports.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := eventadapter.NewKafkaPublisher(cfg.KafkaBrokers, nil, cfg.KafkaTopic)
		if err != nil {
			return nil, fmt.Errorf("init kafka publisher: %w", err)
		}
		cleanups = append(cleanups, func() { _ = kafkaPublisher.Close() })
		publisher = kafkaPublisher
	} else {
		logger.Warn("no kafka brokers configured; events are logged only")
		publisher = eventadapter.NewLoggingPublisher(logger)
	}

	svc := application.NewService(application.Dependencies{
		Config: application.Config{
			ServiceName:      cfg.ServiceID,
			HoldDays:         cfg.HoldDays,
			MaxRetryAttempts: cfg.MaxRetryAttempts,
			MaxAmountMinor:   cfg.MaxAmountMinor,
			SweepBatchSize:   cfg.SweepBatchSize,
			MirrorCacheTTL:   cfg.MirrorCacheTTL,
		},
		Store:       store,
		Gateway:     gateway.NewClient(cfg.GatewayBaseURL, cfg.GatewayAPIKey, cfg.GatewayTimeout),
		Directory:   directory.NewClient(cfg.DirectoryBaseURL, cfg.DirectoryTimeout),
		Risk:        risk.NewNoopScorer(),
		MirrorCache: mirrorCache,
		Logger:      logger,
	})

	handler := httpadapter.NewHandler(svc)
	router := httpadapter.NewRouter(handler)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		for _, cleanup := range cleanups {
			cleanup()
		}
		return nil, fmt.Errorf("listen gRPC: %w", err)
	}

	outbox := eventadapter.NewOutboxWorker(
		logger,
		store,
		publisher,
		cfg.OutboxPollInterval,
		cfg.OutboxBatchSize,
		cfg.OutboxMaxRetries,
	)
	sweeper := scheduler.NewWorker(logger, svc, cfg.SweepInterval)

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		grpcServer: grpcServer,
		grpcLis:    lis,
		outbox:     outbox,
		sweeper:    sweeper,
		cleanupFn: func(context.Context) {
			for _, cleanup := range cleanups {
				cleanup()
			}
		},
	}, nil
}

// RunAPI serves HTTP and gRPC alongside the outbox and sweep workers until
// a shutdown signal arrives.
func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	errCh := make(chan error, 2)
	go func() {
		r.logger.Info("http server started", "addr", r.httpServer.Addr)
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		r.logger.Info("grpc server started", "addr", r.grpcLis.Addr().String())
		if err := r.grpcServer.Serve(r.grpcLis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	go func() {
		r.logger.Info("outbox worker started")
		_ = r.outbox.Run(workerCtx)
	}()
	go func() {
		r.logger.Info("release scheduler started", "interval", r.cfg.SweepInterval.String())
		_ = r.sweeper.Run(workerCtx)
	}()

	select {
	case <-ctx.Done():
		r.logger.Info("shutdown signal received")
	case err := <-errCh:
		r.logger.Error("server failure", "error", err)
	}

	cancelWorkers()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	r.cleanupFn(shutdownCtx)
	return nil
}
