// payment-simulator-poc/internal/simulator/simulator.go
package simulator

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperr "github.com/example/payment-simulator-poc/pkg/errors"
)

// EventPublisher menerima event lifecycle transaksi (payment.succeeded /
// payment.refunded). Implementasi Kafka ada di internal/queue; nil berarti
// tidak ada event yang dikirim.
type EventPublisher interface {
	Publish(ctx context.Context, key, payload []byte) error
}

// Config dibekukan saat New; instance tidak pernah membaca env sendiri supaya
// beberapa simulator terisolasi bisa hidup dalam satu process test.
type Config struct {
	Methods       []string
	DefaultMethod string

	// Artificial delay: tiap request tidur uniform di [MinDelay, MaxDelay]
	// sebelum menyentuh state, sukses maupun gagal.
	MinDelay time.Duration
	MaxDelay time.Duration

	// Probabilitas 0-1. ErrorRate memaksa processing_error tanpa melihat input;
	// DeclineRate memaksa payment_declined utk kartu selain guaranteed-success.
	ErrorRate   float64
	DeclineRate float64

	Cards MagicCards

	// Rand opsional utk skenario "random" yang reproducible. Nil = seed waktu.
	Rand *rand.Rand
}

func DefaultConfig() Config {
	return Config{
		Methods:       []string{"credit_card", "debit_card", "paypal", "bank_transfer"},
		DefaultMethod: "credit_card",
		MinDelay:      50 * time.Millisecond,
		MaxDelay:      350 * time.Millisecond,
		Cards:         DefaultMagicCards(),
	}
}

type Simulator struct {
	cfg    Config
	events EventPublisher

	mu    sync.Mutex
	store map[string]*Transaction

	rngMu sync.Mutex
	rng   *rand.Rand
}

func New(cfg Config, events EventPublisher) *Simulator {
	if len(cfg.Methods) == 0 {
		cfg.Methods = DefaultConfig().Methods
	}
	if cfg.DefaultMethod == "" {
		cfg.DefaultMethod = cfg.Methods[0]
	}
	if cfg.MaxDelay < cfg.MinDelay {
		cfg.MinDelay, cfg.MaxDelay = cfg.MaxDelay, cfg.MinDelay
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{
		cfg:    cfg,
		events: events,
		store:  make(map[string]*Transaction),
		rng:    rng,
	}
}

// Methods: daftar metode yang dikonfigurasi + default hint.
func (s *Simulator) Methods() ([]string, string) {
	methods := make([]string, len(s.cfg.Methods))
	copy(methods, s.cfg.Methods)
	return methods, s.cfg.DefaultMethod
}

// ProcessPayment menjalankan algoritma routing dalam urutan ketat: validasi
// field -> validasi method -> artificial delay -> error roll -> magic card ->
// decline roll -> create. Dengan ErrorRate=DeclineRate=0 hasilnya deterministik
// penuh utk nomor kartu yang sama.
func (s *Simulator) ProcessPayment(ctx context.Context, req PaymentRequest) (*Transaction, error) {
	if req.Method == "" || req.Amount == nil || req.Currency == "" {
		return nil, apperr.New(apperr.CodeInvalidRequest, "method, amount and currency are required")
	}
	if req.Amount.Sign() <= 0 {
		return nil, apperr.New(apperr.CodeInvalidRequest, "amount must be greater than zero")
	}
	if !s.supportedMethod(req.Method) {
		return nil, apperr.New(apperr.CodeInvalidPaymentMethod, "unsupported payment method: "+req.Method)
	}

	s.delay()

	if s.roll(s.cfg.ErrorRate) {
		return nil, apperr.New(apperr.CodeProcessingError, "payment processing failed")
	}

	cardNumber := ""
	if isCardMethod(req.Method) {
		if req.CardDetails == nil || req.CardDetails.Number == "" {
			return nil, apperr.New(apperr.CodeInvalidCardDetails, "card number is required")
		}
		cardNumber = normalizeCardNumber(req.CardDetails.Number)
		if err := s.cfg.Cards.outcomeFor(cardNumber); err != nil {
			return nil, err
		}
	}

	// Kartu guaranteed-success lolos dari decline roll.
	if cardNumber != s.cfg.Cards.Success && s.roll(s.cfg.DeclineRate) {
		return nil, apperr.New(apperr.CodePaymentDeclined, "payment was declined")
	}

	tx := &Transaction{
		ID:          uuid.New().String(),
		Method:      req.Method,
		Amount:      *req.Amount,
		Currency:    req.Currency,
		Status:      StatusSucceeded,
		CreatedAt:   time.Now().UTC(),
		Metadata:    req.Metadata,
		BillingInfo: req.BillingInfo,
	}

	s.mu.Lock()
	s.store[tx.ID] = tx
	out := tx.clone()
	s.mu.Unlock()

	s.emit(ctx, "payment.succeeded", out)
	return out, nil
}

// GetTransaction: read-only, tanpa delay dan tanpa roll.
func (s *Simulator) GetTransaction(id string) (*Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.store[id]
	if !ok {
		return nil, apperr.New(apperr.CodeTransactionNotFound, "transaction not found: "+id)
	}
	return tx.clone(), nil
}

// Refund memindahkan transaksi succeeded -> refunded, satu kali saja. Amount
// nil berarti full refund; amount di atas nilai asli ditolak (policy eksplisit,
// bukan silent accept). Refund ikut kena artificial delay + error roll karena
// refund juga bisa mensimulasikan transient failure.
func (s *Simulator) Refund(ctx context.Context, id string, amount *decimal.Decimal, reason string) (*Transaction, error) {
	s.mu.Lock()
	tx, ok := s.store[id]
	if !ok {
		s.mu.Unlock()
		return nil, apperr.New(apperr.CodeTransactionNotFound, "transaction not found: "+id)
	}
	if tx.Status == StatusRefunded {
		s.mu.Unlock()
		return nil, apperr.New(apperr.CodeAlreadyRefunded, "transaction has already been refunded")
	}
	original := tx.Amount
	s.mu.Unlock()

	refundAmount := original
	if amount != nil {
		refundAmount = *amount
	}
	if refundAmount.Sign() <= 0 {
		return nil, apperr.New(apperr.CodeInvalidRequest, "refund amount must be greater than zero")
	}
	if refundAmount.GreaterThan(original) {
		return nil, apperr.New(apperr.CodeInvalidRequest, "refund amount exceeds original amount")
	}
	if reason == "" {
		reason = "customer request"
	}

	s.delay()

	if s.roll(s.cfg.ErrorRate) {
		return nil, apperr.New(apperr.CodeRefundProcessingError, "refund processing failed")
	}

	// Re-check di bawah lock: dua refund konkuren bisa sama-sama lolos check
	// awal; yang kedua harus gagal already_refunded.
	s.mu.Lock()
	tx, ok = s.store[id]
	if !ok {
		s.mu.Unlock()
		return nil, apperr.New(apperr.CodeTransactionNotFound, "transaction not found: "+id)
	}
	if tx.Status == StatusRefunded {
		s.mu.Unlock()
		return nil, apperr.New(apperr.CodeAlreadyRefunded, "transaction has already been refunded")
	}
	now := time.Now().UTC()
	tx.Status = StatusRefunded
	tx.RefundAmount = &refundAmount
	tx.RefundedAt = &now
	tx.RefundReason = reason
	out := tx.clone()
	s.mu.Unlock()

	s.emit(ctx, "payment.refunded", out)
	return out, nil
}

// Reset membuang semua transaksi. Dipakai teardown antar test run; tidak
// disinkronkan terhadap request yang sedang in-flight (documented hazard).
func (s *Simulator) Reset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.store)
	s.store = make(map[string]*Transaction)
	return n
}

// Count: jumlah transaksi tersimpan (ops/test helper).
func (s *Simulator) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.store)
}

func (s *Simulator) supportedMethod(method string) bool {
	for _, m := range s.cfg.Methods {
		if m == method {
			return true
		}
	}
	return false
}

// delay: tidur uniform di [MinDelay, MaxDelay]. Sengaja time.Sleep polos, bukan
// ctx-aware: caller yang timeout tetap meninggalkan side effect (limitation
// yang harus diperhitungkan penulis test).
func (s *Simulator) delay() {
	d := s.cfg.MinDelay
	if span := s.cfg.MaxDelay - s.cfg.MinDelay; span > 0 {
		s.rngMu.Lock()
		d += time.Duration(s.rng.Int63n(int64(span) + 1))
		s.rngMu.Unlock()
	}
	if d > 0 {
		time.Sleep(d)
	}
}

func (s *Simulator) roll(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Float64() < p
}

type txEvent struct {
	Type          string  `json:"type"`
	TransactionID string  `json:"transactionId"`
	Method        string  `json:"method"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	Timestamp     string  `json:"timestamp"`
}

// emit: best effort. Gagal publish cuma dicatat di log, tidak pernah
// menggagalkan response HTTP.
func (s *Simulator) emit(ctx context.Context, eventType string, tx *Transaction) {
	if s.events == nil {
		return
	}
	payload, err := json.Marshal(txEvent{
		Type:          eventType,
		TransactionID: tx.ID,
		Method:        tx.Method,
		Amount:        tx.Amount.InexactFloat64(),
		Currency:      tx.Currency,
		Status:        string(tx.Status),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("[payment-simulator] marshal event %s: %v", eventType, err)
		return
	}
	if err := s.events.Publish(ctx, []byte(tx.ID), payload); err != nil {
		log.Printf("[payment-simulator] publish %s: %v", eventType, err)
	}
}
