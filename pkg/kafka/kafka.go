package kafka

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	FineRetryTopic         = "fine-retry"
	FineRetryConsumerGroup = "fine-retry-group"
)

type Config struct {
	// Empty Addrs disables the queue.
	Addrs []string `envconfig:"KAFKA_ADDRS"`
}

func (c Config) Enabled() bool { return len(c.Addrs) > 0 }

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumer(cfg Config, group string) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()
	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	defaultCfg.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRoundRobin

	return sarama.NewConsumerGroup(cfg.Addrs, group, defaultCfg)
}

// Consume runs handler over topics until ctx is done, rejoining after every rebalance.
func Consume(ctx context.Context, group sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler, log *zap.Logger, topics ...string) {
	for {
		if err := group.Consume(ctx, topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return
			}
			log.Error("consume", zap.Error(err))
		}
		if ctx.Err() != nil {
			return
		}
	}
}
