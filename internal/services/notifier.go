package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SundayYogurt/projecthub/internal/interfaces"
	"go.uber.org/zap"
)

// Notifier hands mail events to the broker. Delivery itself happens in
// mail-svc; a nil error only means the broker accepted the event.
type Notifier struct {
	producer interfaces.ProducerHandler
	log      *zap.Logger
}

func NewNotifier(producer interfaces.ProducerHandler, log *zap.Logger) *Notifier {
	return &Notifier{producer: producer, log: log}
}

func (n *Notifier) Publish(ctx context.Context, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", key, err)
	}
	if err := n.producer.PublishMessage(ctx, []byte(key), payload); err != nil {
		return fmt.Errorf("publish %s event: %w", key, err)
	}
	n.log.Debug("event published", zap.String("key", key))
	return nil
}
