package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/payment-simulator-poc/internal/simulator"
)

type respEnvelope struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := simulator.DefaultConfig()
	cfg.MinDelay = 0
	cfg.MaxDelay = 0
	return New(simulator.New(cfg, nil), ":0")
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) respEnvelope {
	t.Helper()
	var env respEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

func createPayment(t *testing.T, s *Server, card string) string {
	t.Helper()
	body := `{"method":"credit_card","amount":100,"currency":"USD","cardDetails":{"number":"` + card + `"}}`
	rec := doRequest(t, s, http.MethodPost, "/api/payments", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	id, _ := env.Data["transactionId"].(string)
	if id == "" {
		t.Fatalf("expected transactionId in %v", env.Data)
	}
	return id
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"UP"}` {
		t.Fatalf("unexpected health body: %s", got)
	}
}

func TestPaymentMethodsEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/payment-methods", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		PaymentMethods []string          `json:"paymentMethods"`
		Preferences    map[string]string `json:"preferences"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.PaymentMethods) != 4 {
		t.Fatalf("expected 4 methods, got %v", body.PaymentMethods)
	}
	if body.Preferences["defaultMethod"] != "credit_card" {
		t.Fatalf("expected defaultMethod credit_card, got %v", body.Preferences)
	}
}

func TestProcessPaymentSuccessScenario(t *testing.T) {
	s := newTestServer(t)
	body := `{"method":"credit_card","amount":100,"currency":"USD","cardDetails":{"number":"4111111111111111"}}`
	rec := doRequest(t, s, http.MethodPost, "/api/payments", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatal("expected success envelope")
	}
	if env.Data["status"] != "succeeded" {
		t.Fatalf("expected succeeded, got %v", env.Data["status"])
	}
	if env.Data["amount"] != float64(100) {
		t.Fatalf("expected amount 100, got %v", env.Data["amount"])
	}
	if env.Data["currency"] != "USD" {
		t.Fatalf("expected USD, got %v", env.Data["currency"])
	}
	if env.Data["createdAt"] == nil {
		t.Fatal("expected createdAt")
	}
}

func TestProcessPaymentDeclineScenario(t *testing.T) {
	s := newTestServer(t)
	body := `{"method":"credit_card","amount":100,"currency":"USD","cardDetails":{"number":"4000000000000002"}}`
	rec := doRequest(t, s, http.MethodPost, "/api/payments", body)
	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Fatal("expected failure envelope")
	}
	if env.Error == nil || env.Error.Code != "card_declined" {
		t.Fatalf("expected card_declined, got %+v", env.Error)
	}
}

func TestProcessPaymentValidationErrors(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed json", `{"method":`, http.StatusBadRequest, "invalid_request"},
		{"missing fields", `{"method":"credit_card"}`, http.StatusBadRequest, "invalid_request"},
		{"unknown method", `{"method":"crypto","amount":10,"currency":"USD"}`, http.StatusBadRequest, "invalid_payment_method"},
		{"missing card", `{"method":"credit_card","amount":10,"currency":"USD"}`, http.StatusBadRequest, "invalid_card_details"},
		{"insufficient funds card", `{"method":"credit_card","amount":10,"currency":"USD","cardDetails":{"number":"4000000000009995"}}`, http.StatusPaymentRequired, "insufficient_funds"},
		{"expired card", `{"method":"credit_card","amount":10,"currency":"USD","cardDetails":{"number":"4000000000000069"}}`, http.StatusBadRequest, "expired_card"},
		{"error card", `{"method":"credit_card","amount":10,"currency":"USD","cardDetails":{"number":"4000000000000119"}}`, http.StatusInternalServerError, "processing_error"},
	}
	for _, tc := range cases {
		rec := doRequest(t, s, http.MethodPost, "/api/payments", tc.body)
		if rec.Code != tc.status {
			t.Errorf("%s: expected %d, got %d (%s)", tc.name, tc.status, rec.Code, rec.Body.String())
			continue
		}
		env := decodeEnvelope(t, rec)
		if env.Error == nil || env.Error.Code != tc.code {
			t.Errorf("%s: expected code %s, got %+v", tc.name, tc.code, env.Error)
		}
	}
}

func TestGetPayment(t *testing.T) {
	s := newTestServer(t)
	id := createPayment(t, s, "4111111111111111")

	rec := doRequest(t, s, http.MethodGet, "/api/payments/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Data["method"] != "credit_card" || env.Data["amount"] != float64(100) || env.Data["currency"] != "USD" {
		t.Fatalf("stored fields do not match submission: %v", env.Data)
	}
	if env.Data["status"] != "succeeded" {
		t.Fatalf("expected succeeded, got %v", env.Data["status"])
	}

	rec = doRequest(t, s, http.MethodGet, "/api/payments/does-not-exist", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	env = decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != "transaction_not_found" {
		t.Fatalf("expected transaction_not_found, got %+v", env.Error)
	}
}

func TestRefundScenarios(t *testing.T) {
	s := newTestServer(t)
	id := createPayment(t, s, "4111111111111111")

	// Refund tanpa body: full amount + reason default.
	rec := doRequest(t, s, http.MethodPost, "/api/payments/"+id+"/refund", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Data["status"] != "refunded" {
		t.Fatalf("expected refunded, got %v", env.Data["status"])
	}
	if env.Data["refundAmount"] != float64(100) {
		t.Fatalf("expected refundAmount 100, got %v", env.Data["refundAmount"])
	}
	if env.Data["reason"] != "customer request" {
		t.Fatalf("expected default reason, got %v", env.Data["reason"])
	}
	if env.Data["refundedAt"] == nil {
		t.Fatal("expected refundedAt")
	}

	// Refund kedua → already_refunded.
	rec = doRequest(t, s, http.MethodPost, "/api/payments/"+id+"/refund", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	env = decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != "already_refunded" {
		t.Fatalf("expected already_refunded, got %+v", env.Error)
	}

	// Refund id tidak dikenal → 404.
	rec = doRequest(t, s, http.MethodPost, "/api/payments/nope/refund", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRefundPartialViaHTTP(t *testing.T) {
	s := newTestServer(t)
	id := createPayment(t, s, "4111111111111111")

	rec := doRequest(t, s, http.MethodPost, "/api/payments/"+id+"/refund", `{"amount":40,"reason":"dispute"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Data["refundAmount"] != float64(40) {
		t.Fatalf("expected refundAmount 40, got %v", env.Data["refundAmount"])
	}
	if env.Data["reason"] != "dispute" {
		t.Fatalf("expected reason dispute, got %v", env.Data["reason"])
	}
}

func TestResetEndpoint(t *testing.T) {
	s := newTestServer(t)
	id := createPayment(t, s, "4111111111111111")

	rec := doRequest(t, s, http.MethodPost, "/api/reset", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Data["cleared"] != float64(1) {
		t.Fatalf("expected 1 cleared, got %v", env.Data["cleared"])
	}

	rec = doRequest(t, s, http.MethodGet, "/api/payments/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after reset, got %d", rec.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/payments", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var env respEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error == nil || env.Error.Code != "server_error" {
		t.Fatalf("expected server_error, got %+v", env.Error)
	}
}

func TestStartStopAndPortConflict(t *testing.T) {
	cfg := simulator.DefaultConfig()
	cfg.MinDelay = 0
	cfg.MaxDelay = 0
	sim := simulator.New(cfg, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	// Port sudah dipakai → Start harus gagal, bukan fatal.
	busy := New(sim, ln.Addr().String())
	if err := busy.Start(); err == nil {
		_ = busy.Stop(context.Background())
		t.Fatal("expected error for bound port")
	}

	srv := New(sim, "127.0.0.1:0")
	if err := srv.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
}
