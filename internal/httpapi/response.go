// payment-simulator-poc/internal/httpapi/response.go
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/example/payment-simulator-poc/internal/simulator"
	apperr "github.com/example/payment-simulator-poc/pkg/errors"
	m "github.com/example/payment-simulator-poc/pkg/metrics"
)

// Envelope wire: {success:true, data:...} / {success:false, error:{code,message}}.
// Bentuk ini sudah dipakai test suite downstream, jangan diubah.
type envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type createdBody struct {
	TransactionID string    `json:"transactionId"`
	Status        string    `json:"status"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"createdAt"`
}

type transactionBody struct {
	TransactionID string         `json:"transactionId"`
	Method        string         `json:"method"`
	Amount        float64        `json:"amount"`
	Currency      string         `json:"currency"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	BillingInfo   map[string]any `json:"billingInfo,omitempty"`
	RefundAmount  *float64       `json:"refundAmount,omitempty"`
	RefundedAt    *time.Time     `json:"refundedAt,omitempty"`
	RefundReason  string         `json:"refundReason,omitempty"`
}

type refundBody struct {
	TransactionID string     `json:"transactionId"`
	Status        string     `json:"status"`
	RefundAmount  float64    `json:"refundAmount"`
	RefundedAt    *time.Time `json:"refundedAt"`
	Reason        string     `json:"reason"`
}

func newCreatedBody(tx *simulator.Transaction) createdBody {
	return createdBody{
		TransactionID: tx.ID,
		Status:        string(tx.Status),
		Amount:        tx.Amount.InexactFloat64(),
		Currency:      tx.Currency,
		CreatedAt:     tx.CreatedAt,
	}
}

func newTransactionBody(tx *simulator.Transaction) transactionBody {
	body := transactionBody{
		TransactionID: tx.ID,
		Method:        tx.Method,
		Amount:        tx.Amount.InexactFloat64(),
		Currency:      tx.Currency,
		Status:        string(tx.Status),
		CreatedAt:     tx.CreatedAt,
		Metadata:      tx.Metadata,
		BillingInfo:   tx.BillingInfo,
		RefundedAt:    tx.RefundedAt,
		RefundReason:  tx.RefundReason,
	}
	if tx.RefundAmount != nil {
		amt := tx.RefundAmount.InexactFloat64()
		body.RefundAmount = &amt
	}
	return body
}

func newRefundBody(tx *simulator.Transaction) refundBody {
	body := refundBody{
		TransactionID: tx.ID,
		Status:        string(tx.Status),
		RefundedAt:    tx.RefundedAt,
		Reason:        tx.RefundReason,
	}
	if tx.RefundAmount != nil {
		body.RefundAmount = tx.RefundAmount.InexactFloat64()
	}
	return body
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// writeError: E dipetakan ke status + code; error asing jadi server_error 500
// tanpa bocorin detail internal ke caller.
func writeError(w http.ResponseWriter, err error) {
	e, ok := apperr.AsE(err)
	if !ok {
		e = apperr.E{Code: apperr.CodeServerError, Message: "internal server error"}
	}
	m.IncOutcome(serviceName, e.Code)
	writeJSON(w, apperr.HTTPStatus(e.Code), envelope{
		Success: false,
		Error:   &apiError{Code: e.Code, Message: e.Message},
	})
}
