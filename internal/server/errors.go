package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jobfit-ai/matchmaker/internal/matching"
)

// errorEnvelope is the stable error shape crossing the HTTP boundary.
// No stack traces or internal detail beyond the message and field details.
type errorEnvelope struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

// HTTPStatus maps pipeline errors to status codes. Configuration and
// validation problems are the caller's fault; everything else is a 500.
func HTTPStatus(err error) int {
	var cfgErr *matching.ConfigError
	if errors.As(err, &cfgErr) {
		return http.StatusBadRequest
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// errorDetails extracts structured field-level detail when present.
func errorDetails(err error) map[string]any {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]any, len(validationErrs))
		for _, fe := range validationErrs {
			details[fe.Field()] = fe.Tag()
		}
		return details
	}
	var cfgErr *matching.ConfigError
	if errors.As(err, &cfgErr) && cfgErr.Field != "" {
		return map[string]any{cfgErr.Field: cfgErr.Message}
	}
	return nil
}

// errorResponse writes the error envelope with the mapped status
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	s.jsonResponse(w, HTTPStatus(err), errorEnvelope{
		Error:   publicMessage(err),
		Details: errorDetails(err),
	})
}

// publicMessage keeps 500 messages generic while passing caller-fault
// messages through.
func publicMessage(err error) string {
	switch HTTPStatus(err) {
	case http.StatusBadRequest:
		return "invalid request"
	default:
		var analysisErr *matching.AnalysisError
		if errors.As(err, &analysisErr) {
			return "job analysis failed"
		}
		var retrievalErr *matching.RetrievalError
		if errors.As(err, &retrievalErr) {
			return "candidate retrieval failed"
		}
		var evalErr *matching.EvaluationError
		if errors.As(err, &evalErr) {
			return "candidate evaluation failed"
		}
		return "internal server error"
	}
}
