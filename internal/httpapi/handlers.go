// payment-simulator-poc/internal/httpapi/handlers.go
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/example/payment-simulator-poc/internal/simulator"
	apperr "github.com/example/payment-simulator-poc/pkg/errors"
	m "github.com/example/payment-simulator-poc/pkg/metrics"
)

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

func (s *Server) methodsHandler(w http.ResponseWriter, _ *http.Request) {
	methods, def := s.sim.Methods()
	writeJSON(w, http.StatusOK, map[string]any{
		"paymentMethods": methods,
		"preferences":    map[string]string{"defaultMethod": def},
	})
}

func (s *Server) processPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req simulator.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Wrap(apperr.CodeInvalidRequest, "malformed JSON body", err))
		return
	}

	tx, err := s.sim.ProcessPayment(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	m.IncOutcome(serviceName, string(tx.Status))
	writeData(w, http.StatusCreated, newCreatedBody(tx))
}

func (s *Server) getPaymentHandler(w http.ResponseWriter, r *http.Request) {
	tx, err := s.sim.GetTransaction(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, newTransactionBody(tx))
}

type refundRequest struct {
	Amount *decimal.Decimal `json:"amount"`
	Reason string           `json:"reason"`
}

func (s *Server) refundPaymentHandler(w http.ResponseWriter, r *http.Request) {
	// Body opsional: tanpa body = full refund dgn reason default.
	var req refundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, apperr.Wrap(apperr.CodeInvalidRequest, "malformed JSON body", err))
		return
	}

	tx, err := s.sim.Refund(r.Context(), mux.Vars(r)["id"], req.Amount, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	m.IncOutcome(serviceName, string(tx.Status))
	writeData(w, http.StatusOK, newRefundBody(tx))
}

func (s *Server) resetHandler(w http.ResponseWriter, _ *http.Request) {
	cleared := s.sim.Reset()
	writeData(w, http.StatusOK, map[string]int{"cleared": cleared})
}
