package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/library-admin/admin/config"
	"github.com/Astemirdum/library-admin/admin/internal/handler"
	"github.com/Astemirdum/library-admin/admin/internal/queue"
	"github.com/Astemirdum/library-admin/admin/internal/server"
	"github.com/Astemirdum/library-admin/admin/internal/service"
	"github.com/Astemirdum/library-admin/admin/internal/service/perpus"
	"github.com/Astemirdum/library-admin/admin/internal/session"
	"github.com/Astemirdum/library-admin/admin/internal/worker"
	"github.com/Astemirdum/library-admin/admin/migrations"
	"github.com/Astemirdum/library-admin/pkg/kafka"
	"github.com/Astemirdum/library-admin/pkg/logger"
	"github.com/Astemirdum/library-admin/pkg/postgres"
	"github.com/IBM/sarama"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func Run(cfg config.Config) {
	log := logger.NewLogger(cfg.Log, "admin")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		db  *pgxpool.Pool
		rdb *redis.Client
		err error
	)
	switch cfg.Session.Backend {
	case config.SessionPostgres:
		db, err = postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
		if err != nil {
			log.Fatal("db init", zap.Error(err))
		}
	case config.SessionRedis:
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err = rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("redis ping", zap.Error(err))
		}
	}
	sessions, err := session.New(cfg.Session, db, rdb, log)
	if err != nil {
		log.Fatal("session store", zap.Error(err))
	}

	up, err := perpus.NewService(log, cfg.Upstream)
	if err != nil {
		log.Fatal("perpus client", zap.Error(err))
	}

	var (
		producer sarama.SyncProducer
		group    sarama.ConsumerGroup
	)
	if cfg.Kafka.Enabled() && !cfg.Upstream.Configured() {
		log.Warn("kafka configured without a service account, fine retry is disabled")
	}
	if cfg.FineRetryEnabled() {
		producer, err = kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		group, err = kafka.NewConsumer(cfg.Kafka, kafka.FineRetryConsumerGroup)
		if err != nil {
			log.Fatal("kafka.NewConsumer", zap.Error(err))
		}
	} else {
		log.Warn("fine retry disabled, failed fines are not retried")
	}
	enq := queue.NewEnqueuer(producer)

	svc := service.New(log, cfg, up, sessions, enq)
	if group != nil {
		go kafka.Consume(ctx, group, queue.NewConsumer(svc.ResubmitFine, enq, log), log, kafka.FineRetryTopic)
	}
	if cfg.Upstream.Configured() {
		go worker.Every(ctx, cfg.Worker.ReminderInterval, worker.NewNotifier(svc, log).Check)
	}
	go worker.Every(ctx, cfg.Worker.CleanupInterval, worker.NewCleaner(svc, log).Check)

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))
	cancel()

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second*5)
	defer closeCancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if group != nil {
		if err = group.Close(); err != nil {
			log.Error("kafka consumer close", zap.Error(err))
		}
	}
	if producer != nil {
		if err = producer.Close(); err != nil {
			log.Error("kafka producer close", zap.Error(err))
		}
	}
	if db != nil {
		db.Close()
	}
	if rdb != nil {
		if err = rdb.Close(); err != nil {
			log.Error("redis close", zap.Error(err))
		}
	}
	log.Info("Graceful shutdown finished")
}
