package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
)

var ErrBrokerDown = errors.New("broker unavailable")

type PublishedMessage struct {
	Key   string
	Value []byte
}

// RecordingProducer stands in for the Kafka producer. Set Fail to make every
// publish return ErrBrokerDown.
type RecordingProducer struct {
	mu       sync.Mutex
	Fail     bool
	messages []PublishedMessage
}

func (p *RecordingProducer) PublishMessage(ctx context.Context, key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Fail {
		return ErrBrokerDown
	}
	p.messages = append(p.messages, PublishedMessage{Key: string(key), Value: append([]byte(nil), value...)})
	return nil
}

func (p *RecordingProducer) Messages() []PublishedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]PublishedMessage(nil), p.messages...)
}

// Last decodes the newest message with the given key into out.
func (p *RecordingProducer) Last(t *testing.T, key string, out any) {
	t.Helper()

	msgs := p.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Key == key {
			if err := json.Unmarshal(msgs[i].Value, out); err != nil {
				t.Fatalf("decode %s message: %v", key, err)
			}
			return
		}
	}
	t.Fatalf("no %s message published", key)
}
