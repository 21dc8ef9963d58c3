// Package events ships lifecycle events to Kafka, or straight into the audit
// log when no broker is configured.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/Eduard-Gallardo/lendix/lending/internal/repository"
	cb "github.com/Eduard-Gallardo/lendix/pkg/circuit_breaker"
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	cbRecordLength     = 20
	cbTimeout          = 10 * time.Second
	cbPercentile       = 0.5
	cbRecoveryRequests = 3
)

type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	breaker  cb.CircuitBreaker
	log      *zap.Logger
}

func NewKafkaPublisher(producer sarama.SyncProducer, topic string, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		breaker:  cb.New(cbRecordLength, cbTimeout, cbPercentile, cbRecoveryRequests),
		log:      log.Named("publisher"),
	}
}

// Publish sends ev keyed by subject so one subject's events stay ordered.
// While the broker keeps failing the breaker short-circuits with ErrOpenCB.
func (p *KafkaPublisher) Publish(ctx context.Context, ev model.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(ev.SubjectID),
		Value:     sarama.ByteEncoder(data),
		Timestamp: ev.OccurredAt,
	}
	return p.breaker.Call(func() error {
		partition, offset, err := p.producer.SendMessage(msg)
		if err != nil {
			return errors.Wrap(err, "producer.SendMessage")
		}
		p.log.Debug("event sent",
			zap.String("action", ev.Action),
			zap.Int32("partition", partition),
			zap.Int64("offset", offset))
		return nil
	})
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// DirectPublisher appends events to the audit log in-process.
type DirectPublisher struct {
	store repository.Store
}

func NewDirectPublisher(store repository.Store) *DirectPublisher {
	return &DirectPublisher{store: store}
}

func (p *DirectPublisher) Publish(ctx context.Context, ev model.Event) error {
	return p.store.InTx(ctx, func(r repository.Repository) error {
		return r.AppendAudit(ctx, ev.AuditEntry())
	})
}

// Decode parses one message value produced by KafkaPublisher.
func Decode(value []byte) (model.Event, error) {
	var ev model.Event
	if err := json.Unmarshal(value, &ev); err != nil {
		return model.Event{}, errors.Wrap(err, "decode event")
	}
	return ev, nil
}
