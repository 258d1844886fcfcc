package queue

import (
	"context"
	"sync"

	"github.com/Astemirdum/library-admin/admin/internal/errs"
	"github.com/Astemirdum/library-admin/admin/internal/model"
	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type resubmit func(ctx context.Context, req model.FineRequest) error

type Consumer struct {
	resubmit resubmit
	enqueuer Enqueuer
	log      *zap.Logger
	ready    chan struct{}
	once     sync.Once
}

// NewConsumer re-submits queued fines through fn. Transient failures go back on the
// queue until MaxAttempts is reached; anything else is dropped and logged.
func NewConsumer(fn func(ctx context.Context, req model.FineRequest) error, enqueuer Enqueuer, log *zap.Logger) *Consumer {
	return &Consumer{
		resubmit: fn,
		enqueuer: enqueuer,
		log:      log.Named("consumer"),
		ready:    make(chan struct{}),
	}
}

// Ready is closed after the first group session is set up.
func (c *Consumer) Ready() <-chan struct{} {
	return c.ready
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	c.once.Do(func() { close(c.ready) })
	return nil
}

func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				c.log.Warn("message channel was closed")
				return nil
			}
			c.handle(session.Context(), message)
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func (c *Consumer) handle(ctx context.Context, message *sarama.ConsumerMessage) {
	var msg FineRetry
	if err := json.Unmarshal(message.Value, &msg); err != nil {
		c.log.Error("decode fine retry", zap.Error(err))
		return
	}
	log := c.log.With(
		zap.Stringer("lending", msg.LendingID),
		zap.Stringer("member", msg.Request.MemberID),
		zap.Int("attempt", msg.Attempt),
	)

	err := c.resubmit(ctx, msg.Request)
	switch {
	case err == nil:
		log.Info("fine created from retry queue", zap.Stringer("amount", msg.Request.Amount))
		return
	case !errs.IsTransient(err):
		log.Error("fine dropped", zap.Error(err))
		return
	case msg.Attempt+1 >= MaxAttempts:
		log.Error("fine dropped after max attempts", zap.Error(err))
		return
	}

	msg.Attempt++
	if err = c.enqueuer.Enqueue(ctx, msg); err != nil {
		log.Error("requeue fine", zap.Error(err))
	}
}
