// Package queue carries fines that could not be created right after a return
// to a Kafka topic, and re-submits them from there.
package queue

import (
	"context"
	"time"

	"github.com/Astemirdum/library-admin/admin/internal/errs"
	"github.com/Astemirdum/library-admin/admin/internal/model"
	"github.com/Astemirdum/library-admin/pkg/kafka"
	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const MaxAttempts = 5

// FineRetry is one fine waiting to be created upstream.
type FineRetry struct {
	LendingID  model.ID          `json:"lending_id"`
	Request    model.FineRequest `json:"request"`
	Attempt    int               `json:"attempt"`
	EnqueuedAt time.Time         `json:"enqueued_at"`
}

type Enqueuer interface {
	Enqueue(ctx context.Context, msg FineRetry) error
}

// NewEnqueuer returns an enqueuer that fails with errs.ErrQueueOff when producer is nil.
func NewEnqueuer(producer sarama.SyncProducer) Enqueuer {
	return &enqueuerImpl{
		producer: producer,
		topic:    kafka.FineRetryTopic,
		now:      time.Now,
	}
}

type enqueuerImpl struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
}

func (q *enqueuerImpl) Enqueue(ctx context.Context, msg FineRetry) error {
	if q.producer == nil {
		return errs.ErrQueueOff
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.EnqueuedAt.IsZero() {
		msg.EnqueuedAt = q.now()
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	pm := &sarama.ProducerMessage{
		Topic: q.topic,
		Key:   sarama.StringEncoder(msg.LendingID.String()),
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err = q.producer.SendMessage(pm); err != nil {
		return errors.Wrap(err, "enqueue fine retry")
	}
	return nil
}
