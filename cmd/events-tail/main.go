// cmd/events-tail/main.go
//
// Tail topic event simulator dan print tiap event ke stdout. Berguna waktu
// debugging test suite yang assert outcome secara async.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
)

type txEvent struct {
	Type          string  `json:"type"`
	TransactionID string  `json:"transactionId"`
	Method        string  `json:"method"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	Timestamp     string  `json:"timestamp"`
}

func main() {
	brokers := env("KAFKA_BROKERS", "kafka:9092")
	topic := env("KAFKA_EVENTS_TOPIC", "payments.events")

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{brokers},
		Topic:    topic,
		GroupID:  "events-tail",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer r.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("[events-tail] consuming %s from %s", topic, brokers)
	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			log.Printf("read err: %v", err)
			return
		}
		var ev txEvent
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			log.Printf("bad event %s: %v", string(m.Key), err)
			continue
		}
		log.Printf("[events-tail] %s tx=%s %s %.2f %s status=%s at %s",
			ev.Type, ev.TransactionID, ev.Method, ev.Amount, ev.Currency, ev.Status, ev.Timestamp)
	}
}

func env(k, d string) string { if v := os.Getenv(k); v != "" { return v }; return d }
