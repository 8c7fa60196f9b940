package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jobfit-ai/matchmaker/internal/llm"
	"github.com/jobfit-ai/matchmaker/internal/prompts"
	"github.com/jobfit-ai/matchmaker/internal/retrieval"
)

// recommendationTopN limits how many candidates feed the best-match
// narrative, independent of the caller's topResults.
const recommendationTopN = 3

// MatchAggregator ranks evaluated candidates and synthesizes the best-match
// recommendation.
type MatchAggregator struct {
	client  llm.Client
	gateway retrieval.Gateway
	logger  *zap.Logger
}

// NewMatchAggregator creates an aggregator
func NewMatchAggregator(client llm.Client, gateway retrieval.Gateway, logger *zap.Logger) *MatchAggregator {
	return &MatchAggregator{client: client, gateway: gateway, logger: logger}
}

// Aggregate sorts matches by overall score (retrieval score breaks ties) and
// builds the best-match summary for the top candidate. Ranking is
// deterministic for a given input; only the recommendation text is
// model-generated. A failed recommendation degrades to a templated fallback
// instead of failing the aggregation.
func (a *MatchAggregator) Aggregate(ctx context.Context, matches []ResumeMatch, jobDescription string, requirements *JobRequirements) ([]ResumeMatch, *BestMatch) {
	sorted := make([]ResumeMatch, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].MatchAnalysis.OverallMatch != sorted[j].MatchAnalysis.OverallMatch {
			return sorted[i].MatchAnalysis.OverallMatch > sorted[j].MatchAnalysis.OverallMatch
		}
		return sorted[i].SearchScore > sorted[j].SearchScore
	})

	if len(sorted) == 0 {
		return sorted, nil
	}

	top := sorted[0]
	recommendation, err := a.recommend(ctx, sorted, jobDescription, requirements)
	if err != nil {
		a.logger.Warn("recommendation generation failed, using fallback",
			zap.String("candidate_id", top.ResumeID),
			zap.Error(err))
		recommendation = fmt.Sprintf(
			"%s is the strongest match for this role with an overall score of %.0f/100.",
			top.CandidateName, top.MatchAnalysis.OverallMatch)
	}

	best := &BestMatch{
		CandidateID:    top.ResumeID,
		CandidateName:  top.CandidateName,
		OverallScore:   top.MatchAnalysis.OverallMatch,
		Recommendation: recommendation,
	}
	return sorted, best
}

// recommend asks the model for a free-text narrative over the top candidates.
func (a *MatchAggregator) recommend(ctx context.Context, sorted []ResumeMatch, jobDescription string, requirements *JobRequirements) (string, error) {
	topN := recommendationTopN
	if topN > len(sorted) {
		topN = len(sorted)
	}

	payload, err := buildRecommendationPayload(sorted[:topN], jobDescription, requirements)
	if err != nil {
		return "", &RecommendationError{Message: "failed to build recommendation payload", Cause: err}
	}

	prompt := prompts.MustGet("matching.json", "recommend-best-match")
	text, err := a.client.Complete(ctx, prompt, payload, llm.TierStandard)
	if err != nil {
		return "", &RecommendationError{Message: "reasoning call failed", Cause: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &RecommendationError{Message: "empty recommendation"}
	}
	return text, nil
}

// candidateSummary is the per-candidate digest fed to the recommendation
// prompt: names, scores, and per-dimension findings, without full resumes.
type candidateSummary struct {
	Rank         int                `json:"rank"`
	Name         string             `json:"name"`
	OverallMatch float64            `json:"overallMatch"`
	Summary      string             `json:"summary"`
	Dimensions   []dimensionSummary `json:"dimensions"`
}

type dimensionSummary struct {
	Name        string   `json:"name"`
	Score       float64  `json:"score"`
	Strengths   []string `json:"strengths"`
	Gaps        []string `json:"gaps"`
	Explanation string   `json:"explanation"`
}

func buildRecommendationPayload(top []ResumeMatch, jobDescription string, requirements *JobRequirements) (string, error) {
	summaries := make([]candidateSummary, 0, len(top))
	for i, m := range top {
		summaries = append(summaries, candidateSummary{
			Rank:         i + 1,
			Name:         m.CandidateName,
			OverallMatch: m.MatchAnalysis.OverallMatch,
			Summary:      m.MatchAnalysis.Summary,
			Dimensions:   summarizeDimensions(m.MatchAnalysis),
		})
	}

	payload := struct {
		JobDescription  string             `json:"jobDescription"`
		JobRequirements *JobRequirements   `json:"jobRequirements"`
		TopCandidates   []candidateSummary `json:"topCandidates"`
	}{
		JobDescription:  jobDescription,
		JobRequirements: requirements,
		TopCandidates:   summaries,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func summarizeDimensions(analysis MatchAnalysis) []dimensionSummary {
	dims := []dimensionSummary{
		newDimensionSummary("technicalSkills", analysis.TechnicalSkillsMatch),
		newDimensionSummary("experience", analysis.ExperienceMatch),
		newDimensionSummary("education", analysis.EducationMatch),
	}
	if analysis.CertificationsMatch != nil {
		dims = append(dims, newDimensionSummary("certifications", *analysis.CertificationsMatch))
	}
	if analysis.IndustryKnowledgeMatch != nil {
		dims = append(dims, newDimensionSummary("industryKnowledge", *analysis.IndustryKnowledgeMatch))
	}
	if analysis.SoftSkillsMatch != nil {
		dims = append(dims, newDimensionSummary("softSkills", *analysis.SoftSkillsMatch))
	}
	return dims
}

func newDimensionSummary(name string, dim MatchDimension) dimensionSummary {
	return dimensionSummary{
		Name:        name,
		Score:       dim.Score,
		Strengths:   dim.Strengths,
		Gaps:        dim.Gaps,
		Explanation: dim.Explanation,
	}
}

// CountCorpus reports the corpus size for response metadata. Failures
// degrade to 0 rather than failing the response.
func (a *MatchAggregator) CountCorpus(ctx context.Context) int {
	count, err := a.gateway.Count(ctx)
	if err != nil {
		a.logger.Warn("corpus count query failed", zap.Error(err))
		return 0
	}
	return count
}
