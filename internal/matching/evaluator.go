package matching

import (
	"context"
	"encoding/json"

	"github.com/jobfit-ai/matchmaker/internal/llm"
	"github.com/jobfit-ai/matchmaker/internal/prompts"
	"github.com/jobfit-ai/matchmaker/internal/retrieval"
	"github.com/jobfit-ai/matchmaker/internal/schemas"
)

// CandidateEvaluator scores one candidate against a job. Each evaluation is
// independent of its siblings; failures are contained per candidate.
type CandidateEvaluator struct {
	client llm.Client
}

// NewCandidateEvaluator creates an evaluator backed by the given LLM client
func NewCandidateEvaluator(client llm.Client) *CandidateEvaluator {
	return &CandidateEvaluator{client: client}
}

// evaluationPayload is the user payload sent to the model for one candidate.
type evaluationPayload struct {
	JobDescription  string            `json:"jobDescription"`
	JobRequirements *JobRequirements  `json:"jobRequirements"`
	Resume          evaluationResume  `json:"resume"`
	Options         evaluationOptions `json:"options"`
}

type evaluationResume struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Summary    string   `json:"summary"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Education  string   `json:"education"`
}

type evaluationOptions struct {
	Weights      Weights      `json:"weights"`
	IndustryType IndustryType `json:"industryType"`
}

// analysisEnvelope matches the model's response shape, which nests the
// analysis one level down. Unmarshalling into typed structs also drops any
// identity fields the model redundantly echoes.
type analysisEnvelope struct {
	Analysis MatchAnalysis `json:"analysis"`
}

// Evaluate scores one candidate. The model response is validated against
// the analysis schema, unwrapped from its envelope, and normalized so that
// scores stay in [0,100] and strength/gap lists are never nil. The schema
// checks shape only; out-of-range scores are clamped here, not rejected.
func (e *CandidateEvaluator) Evaluate(ctx context.Context, jobDescription string, requirements *JobRequirements, candidate retrieval.Document, weights Weights, industry IndustryType) (*MatchAnalysis, error) {
	payload := evaluationPayload{
		JobDescription:  jobDescription,
		JobRequirements: requirements,
		Resume: evaluationResume{
			ID:         candidate.ID,
			Name:       candidateName(candidate),
			Summary:    candidate.Summary,
			Skills:     candidate.Skills,
			Experience: candidate.Experience,
			Education:  candidate.Education,
		},
		Options: evaluationOptions{
			Weights:      weights,
			IndustryType: industry,
		},
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, &EvaluationError{ResumeID: candidate.ID, Message: "failed to build evaluation payload", Cause: err}
	}

	prompt := prompts.MustGet("matching.json", "evaluate-candidate")
	raw, err := e.client.CompleteJSON(ctx, prompt, string(payloadJSON), llm.TierStandard)
	if err != nil {
		return nil, &EvaluationError{ResumeID: candidate.ID, Message: "reasoning call failed", Cause: err}
	}

	if err := schemas.Validate(schemas.MatchAnalysisSchema, raw); err != nil {
		return nil, &EvaluationError{ResumeID: candidate.ID, Message: "response does not conform to the analysis schema", Cause: err}
	}

	var envelope analysisEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, &EvaluationError{ResumeID: candidate.ID, Message: "failed to parse response", Cause: err}
	}

	analysis := envelope.Analysis
	normalizeAnalysis(&analysis)
	return &analysis, nil
}

// candidateName falls back to a placeholder when the corpus entry has no name.
func candidateName(candidate retrieval.Document) string {
	if candidate.Name != "" {
		return candidate.Name
	}
	return "Unknown Candidate"
}

func normalizeAnalysis(analysis *MatchAnalysis) {
	analysis.OverallMatch = clampScore(analysis.OverallMatch)
	if analysis.RecommendedNextSteps == nil {
		analysis.RecommendedNextSteps = []string{}
	}
	normalizeDimension(&analysis.TechnicalSkillsMatch)
	normalizeDimension(&analysis.ExperienceMatch)
	normalizeDimension(&analysis.EducationMatch)
	if analysis.CertificationsMatch != nil {
		normalizeDimension(analysis.CertificationsMatch)
	}
	if analysis.IndustryKnowledgeMatch != nil {
		normalizeDimension(analysis.IndustryKnowledgeMatch)
	}
	if analysis.SoftSkillsMatch != nil {
		normalizeDimension(analysis.SoftSkillsMatch)
	}
}

func normalizeDimension(dim *MatchDimension) {
	dim.Score = clampScore(dim.Score)
	if dim.Strengths == nil {
		dim.Strengths = []string{}
	}
	if dim.Gaps == nil {
		dim.Gaps = []string{}
	}
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
