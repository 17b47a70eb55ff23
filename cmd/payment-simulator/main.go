// cmd/payment-simulator/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/payment-simulator-poc/internal/config"
	"github.com/example/payment-simulator-poc/internal/httpapi"
	"github.com/example/payment-simulator-poc/internal/queue"
	"github.com/example/payment-simulator-poc/internal/simulator"
)

func main() {
	cfg := config.Load()

	var events simulator.EventPublisher = queue.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		events = queue.New(cfg.KafkaBrokers, cfg.KafkaEventsTopic)
		log.Printf("[payment-simulator] publishing events to %s (%v)", cfg.KafkaEventsTopic, cfg.KafkaBrokers)
	}

	sim := simulator.New(cfg.Simulator, events)
	srv := httpapi.New(sim, cfg.HTTPAddr)

	if err := srv.Start(); err != nil {
		log.Fatalf("[payment-simulator] start: %v", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		log.Printf("[payment-simulator] shutdown: %v", err)
	}
	log.Println("[payment-simulator] bye")
}
