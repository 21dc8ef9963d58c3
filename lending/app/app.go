package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eduard-Gallardo/lendix/lending/config"
	"github.com/Eduard-Gallardo/lendix/lending/internal/events"
	"github.com/Eduard-Gallardo/lendix/lending/internal/handler"
	"github.com/Eduard-Gallardo/lendix/lending/internal/repository"
	"github.com/Eduard-Gallardo/lendix/lending/internal/repository/memory"
	"github.com/Eduard-Gallardo/lendix/lending/internal/server"
	"github.com/Eduard-Gallardo/lendix/lending/internal/service"
	"github.com/Eduard-Gallardo/lendix/lending/migrations"
	"github.com/Eduard-Gallardo/lendix/pkg/kafka"
	"github.com/Eduard-Gallardo/lendix/pkg/lock"
	"github.com/Eduard-Gallardo/lendix/pkg/logger"
	"github.com/Eduard-Gallardo/lendix/pkg/postgres"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "lending")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store repository.Store
	switch cfg.Storage {
	case config.StorageMemory:
		log.Warn("in-memory store, state is lost on exit")
		store = memory.NewStore(log)
	default:
		db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
		if err != nil {
			log.Fatal("db init", zap.Error(err))
		}
		defer db.Close()
		repo, err := repository.NewRepository(db, log)
		if err != nil {
			log.Fatal("repo", zap.Error(err))
		}
		store = repo
	}

	var publisher service.Publisher = events.NewDirectPublisher(store)
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		kp := events.NewKafkaPublisher(producer, kafka.LendingEventsTopic, log)
		defer func() {
			if err := kp.Close(); err != nil {
				log.Error("producer close", zap.Error(err))
			}
		}()
		publisher = kp
	}

	svc := service.NewService(store, publisher, log)
	if cfg.Admin.Email != "" {
		if _, _, err := svc.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email); err != nil {
			log.Fatal("ensure admin", zap.Error(err))
		}
	}

	locker := lock.NewLocalLocker()
	if cfg.Redis.Enabled() {
		rdb := lock.NewRedisClient(cfg.Redis)
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb)
	}

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter(cfg.Log))
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Run)
	g.Go(func() error {
		return svc.RunSweeper(gctx, cfg.Sweep.Interval, locker, cfg.Sweep.LockTTL)
	})
	if cfg.Kafka.Enabled() {
		consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.AuditConsumerGroup)
		if err != nil {
			log.Fatal("kafka.NewConsumer", zap.Error(err))
		}
		g.Go(func() error {
			return kafka.Consume(gctx, consumer, handler.NewConsumer(svc.RecordAudit, log), log, kafka.LendingEventsTopic)
		})
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case termSig := <-sig:
		log.Debug("Graceful shutdown", zap.Any("signal", termSig))
	case <-gctx.Done():
		log.Error("worker stopped, shutting down")
	}
	cancel()

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second*5)
	defer closeCancel()

	if err := srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if err := g.Wait(); err != nil {
		log.Error("workers", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
}
