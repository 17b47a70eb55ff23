// payment-simulator-poc/internal/queue/kafka.go
package queue

import (
    "context"

    "github.com/segmentio/kafka-go"
)

// Bus menulis event lifecycle transaksi ke satu topic Kafka supaya test suite
// yang async bisa consume outcome tanpa polling HTTP.
type Bus struct {
    Brokers []string
    Topic   string
}

func New(brokers []string, topic string) *Bus {
    return &Bus{Brokers: brokers, Topic: topic}
}

func (b *Bus) Publish(ctx context.Context, key, payload []byte) error {
    w := &kafka.Writer{
        Addr:     kafka.TCP(b.Brokers...),
        Topic:    b.Topic,
        Balancer: &kafka.LeastBytes{},
    }
    defer w.Close()
    return w.WriteMessages(ctx, kafka.Message{Key: key, Value: payload})
}

// Nop dipakai saat KAFKA_BROKERS kosong (default): simulator jalan standalone.
type Nop struct{}

func (Nop) Publish(ctx context.Context, key, payload []byte) error { return nil }
