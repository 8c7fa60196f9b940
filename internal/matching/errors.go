package matching

import "fmt"

// ConfigError represents invalid matching configuration, rejected before
// any external call
type ConfigError struct {
	Message string
	Field   string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// AnalysisError represents a failed job-requirements analysis. It aborts
// the whole request since every downstream step depends on the analysis.
type AnalysisError struct {
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job analysis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("job analysis failed: %s", e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// RetrievalError represents a failed corpus query. An empty-but-successful
// result is not an error.
type RetrievalError struct {
	Message string
	Cause   error
}

func (e *RetrievalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("candidate retrieval failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("candidate retrieval failed: %s", e.Message)
}

func (e *RetrievalError) Unwrap() error {
	return e.Cause
}

// EvaluationError represents one candidate's failed evaluation. It is
// contained to that candidate and does not abort the siblings.
type EvaluationError struct {
	ResumeID string
	Message  string
	Cause    error
}

func (e *EvaluationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("evaluation failed for %s: %s: %v", e.ResumeID, e.Message, e.Cause)
	}
	return fmt.Sprintf("evaluation failed for %s: %s", e.ResumeID, e.Message)
}

func (e *EvaluationError) Unwrap() error {
	return e.Cause
}

// RecommendationError represents a failed best-match narrative generation.
// It is recovered locally with a templated fallback and never surfaces to
// the caller.
type RecommendationError struct {
	Message string
	Cause   error
}

func (e *RecommendationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("recommendation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("recommendation failed: %s", e.Message)
}

func (e *RecommendationError) Unwrap() error {
	return e.Cause
}
