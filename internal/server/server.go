// Package server exposes the salary calculator over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/paycalc/salary-tax-calculator/internal/calculation"
	"github.com/paycalc/salary-tax-calculator/internal/config"
	"github.com/sirupsen/logrus"
)

// Server routes API requests to a SalaryCalculator.
type Server struct {
	calc   *calculation.SalaryCalculator
	logger logrus.FieldLogger
	router *mux.Router
}

// New builds the router. A nil logger discards output.
func New(calc *calculation.SalaryCalculator, logger logrus.FieldLogger) *Server {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	s := &Server{calc: calc, logger: logger, router: mux.NewRouter()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.requestID, s.accessLog, s.recoverPanic)

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/salary/derive", s.handleDerive).Methods(http.MethodPost)
	api.HandleFunc("/tax/evaluate", s.handleEvaluate).Methods(http.MethodPost)
	api.HandleFunc("/tables", s.handleTables).Methods(http.MethodGet)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})
	// Subrouters report method mismatches through their own handler.
	api.MethodNotAllowedHandler = s.router.MethodNotAllowedHandler
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerSettings) error {
	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting server on %s", cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
