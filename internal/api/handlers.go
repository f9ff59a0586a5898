package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/prepaylab/prepay-calculator/internal/calculation"
	"github.com/prepaylab/prepay-calculator/internal/domain"
	"github.com/prepaylab/prepay-calculator/internal/output"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Handler serves the calculation endpoints. The engine is stateless, so one
// handler serves concurrent requests.
type Handler struct {
	engine *calculation.CalculationEngine
}

// NewHandler creates a handler around engine.
func NewHandler(engine *calculation.CalculationEngine) *Handler {
	return &Handler{engine: engine}
}

// Health reports that the server is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// ListFormats returns the registered output formats.
func (h *Handler) ListFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, FormatsResponse{
		Formats: output.AvailableFormatterNames(),
		Aliases: output.AvailableFormatAliases(),
	})
}

// Calculate runs a single prepayment calculation.
// POST /api/calculate
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req domain.LoanRequest
	if !decodeBody(w, r, &req) {
		return
	}

	run, err := h.engine.Run(req)
	if err != nil {
		h.writeCalculationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, output.NewResultView(run.Result, run.Inputs, req.FirstPaymentDate))
}

// Compare runs a configuration's base proposal and all its scenarios.
// POST /api/compare
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var cfg domain.Configuration
	if !decodeBody(w, r, &cfg) {
		return
	}
	if err := h.engine.Parser.ValidateConfiguration(&cfg); err != nil {
		h.writeCalculationError(w, err)
		return
	}

	results, err := h.engine.RunScenarios(&cfg)
	if err != nil {
		h.writeCalculationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, output.NewComparisonView(results))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponse{
			Error:   "请求体不是有效的 JSON",
			Code:    CodeBadRequest,
			Details: err.Error(),
		})
		return false
	}
	return true
}

// writeCalculationError maps the engine's error taxonomy onto status codes.
func (h *Handler) writeCalculationError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	var ae *domain.ArithmeticError
	switch {
	case errors.As(err, &ve):
		resp := ErrorResponse{Error: ve.Message, Field: ve.Field, Code: CodeInvalidInput}
		if msg := err.Error(); msg != ve.Message {
			resp.Details = msg
		}
		writeError(w, http.StatusBadRequest, resp)
	case errors.As(err, &ae):
		writeError(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ae.Error(), Code: CodeArithmetic})
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidInput})
	default:
		h.engine.Logger.Errorf("calculation failed: %v", err)
		writeError(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "internal error",
			Code:    CodeInternal,
			Details: fmt.Sprint(err),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, resp ErrorResponse) {
	writeJSON(w, status, resp)
}
