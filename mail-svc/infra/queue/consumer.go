package queue

import (
	"context"
	"crypto/tls"
	"errors"
	"time"

	"github.com/SundayYogurt/projecthub/mail-svc/internal/interfaces"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"go.uber.org/zap"
)

type KafkaConsumer struct {
	reader  *kafka.Reader
	handler interfaces.ConsumerHandler
	log     *zap.Logger
}

// NewKafkaConsumer joins groupID on topic. SASL/PLAIN over TLS is used
// only when a username is given, so a local broker works without it.
func NewKafkaConsumer(broker, topic, groupID, username, password string, handler interfaces.ConsumerHandler, log *zap.Logger) *KafkaConsumer {
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
	if username != "" {
		dialer.TLS = &tls.Config{}
		dialer.SASLMechanism = plain.Mechanism{Username: username, Password: password}
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{broker},
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
		Dialer:   dialer,
	})

	return &KafkaConsumer{reader: reader, handler: handler, log: log.Named("consumer")}
}

// Listen processes messages until ctx is cancelled. A message is committed
// after its handler returns, whether or not the handler succeeded; mail is
// best effort and a poison message must not block the partition.
func (kc *KafkaConsumer) Listen(ctx context.Context) error {
	for {
		msg, err := kc.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			kc.log.Error("read failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		log := kc.log.With(
			zap.String("key", string(msg.Key)),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
		)
		log.Debug("received")

		if err := kc.handler.HandleMessage(ctx, string(msg.Key), msg.Value); err != nil {
			log.Error("handler failed", zap.Error(err))
		}
		if err := kc.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			log.Error("commit failed", zap.Error(err))
		}
	}
}

func (kc *KafkaConsumer) Close() error {
	return kc.reader.Close()
}
