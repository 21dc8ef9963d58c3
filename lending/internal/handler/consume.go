package handler

import (
	"context"

	"github.com/Eduard-Gallardo/lendix/lending/internal/errs"
	"github.com/Eduard-Gallardo/lendix/lending/internal/events"
	"github.com/Eduard-Gallardo/lendix/lending/internal/model"
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type recordAudit func(ctx context.Context, ev model.Event) error

// Consumer folds lending events from Kafka into the audit log.
type Consumer struct {
	auditHandler recordAudit
	log          *zap.Logger
	ready        chan bool
}

func NewConsumer(audit recordAudit, log *zap.Logger) *Consumer {
	return &Consumer{
		auditHandler: audit,
		log:          log.Named("consumer"),
		ready:        make(chan bool),
	}
}

// Ready is closed once the first session is set up.
func (consumer *Consumer) Ready() <-chan bool {
	return consumer.ready
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	select {
	case <-consumer.ready:
	default:
		close(consumer.ready)
	}
	return nil
}

func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			ev, err := events.Decode(message.Value)
			if err != nil {
				// skip payloads that will never decode
				consumer.log.Error("decode", zap.Error(err), zap.Int64("offset", message.Offset))
				session.MarkMessage(message, "")
				continue
			}
			if err := consumer.auditHandler(session.Context(), ev); err != nil {
				if errors.Is(err, errs.ErrValidation) {
					consumer.log.Warn("drop invalid event", zap.Error(err), zap.String("event", ev.ID))
					session.MarkMessage(message, "")
					continue
				}
				// end the claim unmarked so the event is redelivered
				consumer.log.Error("consumer.auditHandler", zap.Error(err), zap.String("event", ev.ID))
				return errors.Wrapf(err, "audit event %s", ev.ID)
			}
			consumer.log.Debug("message claimed",
				zap.String("action", ev.Action),
				zap.Time("timestamp", message.Timestamp),
				zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
