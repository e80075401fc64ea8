package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/adapters/cache"
	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/adapters/repository/postgres"
	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/core/staffing"
	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/platform/config"
	pg "github.com/ogurasousui/staffing-grpc-clean-arch/internal/platform/db/postgres"
	rdb "github.com/ogurasousui/staffing-grpc-clean-arch/internal/platform/db/redis"
	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/platform/logging"
	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize database pool", zap.Error(err))
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool)
	var source staffing.SnapshotSource = staffing.NewTransactionalSource(postgres.NewSnapshotRepository(dbPool), txManager)

	if cfg.Cache.Enabled() {
		redisClient, err := rdb.NewClient(ctx, cfg.Cache.Redis)
		if err != nil {
			logger.Fatal("failed to initialize redis client", zap.Error(err))
		}
		defer redisClient.Close()

		source = cache.NewSnapshotCache(redisClient, source, cfg.Cache.TTL, logger.Named("cache"))
		logger.Info("snapshot cache enabled", zap.String("addr", cfg.Cache.Redis.Addr), zap.Duration("ttl", cfg.Cache.TTL))
	}

	staffingSvc := staffing.NewService(source, nil, cfg.Staffing.VacancyMode, logger.Named("staffing"))
	grpcServer := server.New(cfg.Server.ListenAddr, staffingSvc, logger.Named("grpc"))

	logger.Info("starting staffing service",
		zap.String("listen_addr", cfg.Server.ListenAddr),
		zap.String("vacancy_mode", string(cfg.Staffing.VacancyMode)),
	)

	if err := grpcServer.Run(ctx); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
}
