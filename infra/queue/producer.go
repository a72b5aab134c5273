package queue

import (
	"context"
	"crypto/tls"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"go.uber.org/zap"
)

var ErrProducerNotReady = errors.New("kafka producer not configured")

type Producer struct {
	writer  *kafka.Writer
	timeout time.Duration
	log     *zap.Logger
}

// NewProducer returns a nil-writer producer when broker is empty. Publishing
// through it fails, which lets callers compensate instead of silently
// dropping mail.
func NewProducer(broker, topic, username, password string, log *zap.Logger) *Producer {
	p := &Producer{timeout: 5 * time.Second, log: log}
	if broker == "" {
		log.Warn("KAFKA_BROKER not set, notifications will fail")
		return p
	}

	transport := &kafka.Transport{}
	if username != "" {
		transport.SASL = plain.Mechanism{
			Username: username,
			Password: password,
		}
		transport.TLS = &tls.Config{}
	}

	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		Transport:    transport,
		WriteTimeout: 10 * time.Second,
	}
	return p
}

func (p *Producer) PublishMessage(ctx context.Context, key, value []byte) error {
	if p == nil || p.writer == nil {
		return ErrProducerNotReady
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		p.log.Error("kafka publish failed", zap.ByteString("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
