// payment-simulator-poc/tools/cmd/dummygen/main.go
//
// Generate deck request pembayaran campuran (magic card + PAN acak) utk
// replay/load test. Kolom expect_code kosong berarti expect sukses.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"
)

type deckEntry struct {
	card       string
	expectCode string
}

func main() {
	n := flag.Int("n", 100, "jumlah baris data (tanpa header)")
	out := flag.String("out", "tests/data/dummy_payments.csv", "path output CSV")
	flag.Parse()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	deck := []deckEntry{
		{"4111111111111111", ""},
		{"4000000000000002", "card_declined"},
		{"4000000000000119", "processing_error"},
		{"4000000000000127", "invalid_cvv"},
		{"4000000000000069", "expired_card"},
		{"4000000000009995", "insufficient_funds"},
		{"4242424242424241", "invalid_card"},
	}

	if err := os.MkdirAll("tests/data", 0o755); err != nil {
		log.Fatal(err)
	}
	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	_ = w.Write([]string{"method", "currency", "amount", "card_number", "expect_code"})
	for i := 0; i < *n; i++ {
		e := deck[rng.Intn(len(deck))]
		row := []string{
			[]string{"credit_card", "debit_card"}[rng.Intn(2)],
			[]string{"USD", "IDR", "SGD", "EUR"}[rng.Intn(4)],
			fmt.Sprintf("%.2f", 10+rng.Float64()*1000),
			e.card,
			e.expectCode,
		}
		if err := w.Write(row); err != nil {
			log.Fatal(err)
		}
	}
	log.Printf("generated %s (%d rows + header)", *out, *n)
}
