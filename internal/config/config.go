// payment-simulator-poc/internal/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/payment-simulator-poc/internal/simulator"
)

// Config dibaca sekali dari env saat start; setelah itu immutable. Semua nilai
// bisa dioverride caller utk tuning test.
type Config struct {
	HTTPAddr string

	Simulator simulator.Config

	// Kosong = event publishing mati.
	KafkaBrokers     []string
	KafkaEventsTopic string
}

func Load() Config {
	sim := simulator.DefaultConfig()
	sim.MinDelay = time.Duration(getEnvInt("MIN_DELAY_MS", 50)) * time.Millisecond
	sim.MaxDelay = time.Duration(getEnvInt("MAX_DELAY_MS", 350)) * time.Millisecond
	sim.ErrorRate = getEnvRate("ERROR_RATE")
	sim.DeclineRate = getEnvRate("DECLINE_RATE")

	if v := getEnv("PAYMENT_METHODS", ""); v != "" {
		methods := []string{}
		for _, m := range strings.Split(v, ",") {
			if m = strings.TrimSpace(m); m != "" {
				methods = append(methods, m)
			}
		}
		if len(methods) > 0 {
			sim.Methods = methods
		}
	}
	sim.DefaultMethod = getEnv("DEFAULT_METHOD", sim.Methods[0])

	sim.Cards.Success = getEnv("CARD_SUCCESS", sim.Cards.Success)
	sim.Cards.Declined = getEnv("CARD_DECLINED", sim.Cards.Declined)
	sim.Cards.Error = getEnv("CARD_ERROR", sim.Cards.Error)
	sim.Cards.InvalidCVV = getEnv("CARD_INVALID_CVV", sim.Cards.InvalidCVV)
	sim.Cards.Expired = getEnv("CARD_EXPIRED", sim.Cards.Expired)
	sim.Cards.InsufficientFunds = getEnv("CARD_INSUFFICIENT_FUNDS", sim.Cards.InsufficientFunds)
	sim.Cards.InvalidNumber = getEnv("CARD_INVALID_NUMBER", sim.Cards.InvalidNumber)

	cfg := Config{
		HTTPAddr:         getEnv("HTTP_ADDR", ":8086"),
		Simulator:        sim,
		KafkaEventsTopic: getEnv("KAFKA_EVENTS_TOPIC", "payments.events"),
	}
	if v := getEnv("KAFKA_BROKERS", ""); v != "" {
		cfg.KafkaBrokers = strings.Split(v, ",")
	}
	return cfg
}

/******************** Utils ********************/
func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return d
}

// getEnvRate: probabilitas 0.0-1.0, nilai di luar range diabaikan. Default 0
// supaya simulator deterministik kecuali diminta flaky.
func getEnvRate(k string) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			return f
		}
	}
	return 0.0
}
