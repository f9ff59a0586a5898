package api

import "github.com/prepaylab/prepay-calculator/internal/output"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	// Field names the offending input of a validation error.
	Field   string `json:"field,omitempty"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Error codes
const (
	CodeInvalidInput = "invalid_input"
	CodeArithmetic   = "arithmetic"
	CodeBadRequest   = "bad_request"
	CodeInternal     = "internal"
)

// HealthResponse reports liveness.
type HealthResponse struct {
	Status string `json:"status"`
}

// FormatsResponse lists the report formats the CLI can write.
type FormatsResponse struct {
	Formats []string `json:"formats"`
	Aliases []string `json:"aliases"`
}

// CalculateResponse is the body of a successful calculation.
type CalculateResponse = output.ResultView

// CompareResponse is the body of a successful scenario comparison.
type CompareResponse = output.ComparisonView
