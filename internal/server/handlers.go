package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/paycalc/salary-tax-calculator/internal/calculation"
	"github.com/paycalc/salary-tax-calculator/internal/domain"
	"github.com/paycalc/salary-tax-calculator/internal/output"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// DeriveRequest is the body of POST /api/v1/salary/derive.
type DeriveRequest struct {
	Salary      domain.SalaryInputs    `json:"salary"`
	AgeCategory domain.AgeCategory     `json:"age_category"`
	Regime      domain.RegimeSelection `json:"regime"`
}

// EvaluateRequest is the body of POST /api/v1/tax/evaluate.
type EvaluateRequest struct {
	Income      decimal.Decimal    `json:"income"`
	Regime      domain.Regime      `json:"regime"`
	AgeCategory domain.AgeCategory `json:"age_category"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleDerive runs the pipeline. The optional format query parameter selects
// a report formatter instead of the JSON outcome.
func (s *Server) handleDerive(w http.ResponseWriter, r *http.Request) {
	var req DeriveRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Regime == 0 {
		req.Regime = domain.SelectCompareBoth
	}

	outcome, err := s.calc.Derive(req.Salary, req.AgeCategory, req.Regime)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" || output.NormalizeFormatName(format) == "json" {
		writeJSON(w, http.StatusOK, outcome)
		return
	}
	f := output.GetFormatterByName(format)
	if f == nil {
		s.writeError(w, r, fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, format))
		return
	}
	body, err := f.Format(outcome)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType(output.FileExtension(f.Name())))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.calc.EvaluateRegime(req.Income, req.Regime, req.AgeCategory)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		StandardDeduction decimal.Decimal          `json:"standard_deduction"`
		Tables            []calculation.NamedTable `json:"tables"`
	}{s.calc.Rules.StandardDeduction(), s.calc.Rules.Tables()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type badRequestError struct{ err error }

func (e badRequestError) Error() string { return "invalid request body: " + e.err.Error() }
func (e badRequestError) Unwrap() error { return e.err }

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequestError{err}
	}
	return nil
}

// statusFor maps calculator errors to HTTP status codes.
func statusFor(err error) int {
	var bad badRequestError
	switch {
	case errors.As(err, &bad),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidIncome),
		errors.Is(err, domain.ErrUnknownAgeCategory),
		errors.Is(err, domain.ErrUnknownRegime),
		errors.Is(err, output.ErrUnsupportedFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.WithField("request_id", RequestID(r.Context())).Errorf("handler error: %v", err)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func contentType(ext string) string {
	switch ext {
	case "html":
		return "text/html; charset=utf-8"
	case "csv":
		return "text/csv; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}
