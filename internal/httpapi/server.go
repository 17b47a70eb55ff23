// payment-simulator-poc/internal/httpapi/server.go
package httpapi

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/example/payment-simulator-poc/internal/simulator"
	apperr "github.com/example/payment-simulator-poc/pkg/errors"
	m "github.com/example/payment-simulator-poc/pkg/metrics"
)

const serviceName = "payment-simulator"

type Server struct {
	sim     *simulator.Simulator
	router  *mux.Router
	handler http.Handler
	srv     *http.Server
}

func New(sim *simulator.Simulator, addr string) *Server {
	s := &Server{
		sim:    sim,
		router: mux.NewRouter(),
	}
	s.setupRoutes()

	// CORS AllowAll: client utama simulator ini adalah browser-driven E2E suite.
	s.handler = cors.AllowAll().Handler(s.router)
	s.srv = &http.Server{
		Addr:         addr,
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(metricsMiddleware)
	s.router.Use(recoveryMiddleware)

	s.router.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	s.router.HandleFunc("/api/payment-methods", s.methodsHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/api/payments", s.processPaymentHandler).Methods(http.MethodPost)
	s.router.HandleFunc("/api/payments/{id}", s.getPaymentHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/api/payments/{id}/refund", s.refundPaymentHandler).Methods(http.MethodPost)
	s.router.HandleFunc("/api/reset", s.resetHandler).Methods(http.MethodPost)
}

// Handler: dipakai httptest di test suite.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listen dulu baru serve di goroutine, jadi port bentrok langsung
// ketahuan sebagai error, bukan log.Fatal di belakang.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	go func() {
		log.Printf("[%s] listening at %s", serviceName, s.srv.Addr)
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("[%s] serve: %v", serviceName, err)
		}
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	log.Printf("[%s] shutting down...", serviceName)
	return s.srv.Shutdown(ctx)
}

/*************** Middleware ***************/
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		statusLabel := "FAILED"
		if rec.status >= 200 && rec.status < 400 {
			statusLabel = "SUCCESS"
		}
		m.IncRequest(serviceName, statusLabel, r.Method)
		m.ObserveDuration(serviceName, statusLabel, time.Since(start).Seconds())
	})
}

// recoveryMiddleware: panic tidak boleh bocor sebagai stack trace ke caller;
// diubah jadi server_error 500 generik.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[%s] panic serving %s %s: %v", serviceName, r.Method, r.URL.Path, rec)
				writeError(w, apperr.New(apperr.CodeServerError, "internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
