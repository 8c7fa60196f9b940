package matching

import (
	"context"
	"encoding/json"

	"github.com/jobfit-ai/matchmaker/internal/llm"
	"github.com/jobfit-ai/matchmaker/internal/prompts"
	"github.com/jobfit-ai/matchmaker/internal/schemas"
)

// JobAnalyzer extracts structured requirements from a raw job description.
type JobAnalyzer struct {
	client llm.Client
}

// NewJobAnalyzer creates a job analyzer backed by the given LLM client
func NewJobAnalyzer(client llm.Client) *JobAnalyzer {
	return &JobAnalyzer{client: client}
}

// Analyze turns a job description into structured JobRequirements. The
// model output is schema-validated before unmarshalling; non-conformant
// output fails with AnalysisError rather than being silently defaulted.
func (a *JobAnalyzer) Analyze(ctx context.Context, jobDescription string) (*JobRequirements, error) {
	prompt := prompts.MustGet("matching.json", "analyze-job")

	raw, err := a.client.CompleteJSON(ctx, prompt, jobDescription, llm.TierAdvanced)
	if err != nil {
		return nil, &AnalysisError{Message: "reasoning call failed", Cause: err}
	}

	if err := schemas.Validate(schemas.JobRequirementsSchema, raw); err != nil {
		return nil, &AnalysisError{Message: "response does not conform to the requirements schema", Cause: err}
	}

	var requirements JobRequirements
	if err := json.Unmarshal([]byte(raw), &requirements); err != nil {
		return nil, &AnalysisError{Message: "failed to parse response", Cause: err}
	}

	return &requirements, nil
}
