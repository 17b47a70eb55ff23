// payment-simulator-poc/internal/simulator/transaction.go
package simulator

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	StatusSucceeded TransactionStatus = "succeeded"
	StatusRefunded  TransactionStatus = "refunded"
)

// Transaction adalah satu-satunya entity yang disimpan. Hanya payment yang lolos
// semua check yang masuk ke store; attempt gagal tidak pernah dicatat.
type Transaction struct {
	ID          string
	Method      string
	Amount      decimal.Decimal
	Currency    string
	Status      TransactionStatus
	CreatedAt   time.Time
	Metadata    map[string]any
	BillingInfo map[string]any

	// Terisi hanya setelah refund.
	RefundAmount *decimal.Decimal
	RefundedAt   *time.Time
	RefundReason string
}

// clone: store selalu mengembalikan copy supaya caller tidak bisa mutasi
// record di belakang mutex.
func (t *Transaction) clone() *Transaction {
	cp := *t
	if t.RefundAmount != nil {
		amt := *t.RefundAmount
		cp.RefundAmount = &amt
	}
	if t.RefundedAt != nil {
		ts := *t.RefundedAt
		cp.RefundedAt = &ts
	}
	return &cp
}

// PaymentRequest adalah input ProcessPayment. Tag JSON mengikuti kontrak wire
// yang sudah dipakai test suite downstream (camelCase).
type PaymentRequest struct {
	Method      string           `json:"method"`
	Amount      *decimal.Decimal `json:"amount"`
	Currency    string           `json:"currency"`
	CardDetails *CardDetails     `json:"cardDetails,omitempty"`
	Metadata    map[string]any   `json:"metadata,omitempty"`
	BillingInfo map[string]any   `json:"billingInfo,omitempty"`
}

type CardDetails struct {
	Number      string `json:"number"`
	CVV         string `json:"cvv,omitempty"`
	ExpiryMonth string `json:"expiryMonth,omitempty"`
	ExpiryYear  string `json:"expiryYear,omitempty"`
}
