// Package matching implements the résumé matching pipeline: job analysis,
// candidate retrieval, concurrent per-candidate evaluation, and aggregation
// into a ranked response with a best-match recommendation.
package matching

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// IndustryType tags the job's industry for evaluation context.
type IndustryType string

const (
	IndustryHealthcare IndustryType = "healthcare"
	IndustryTechnology IndustryType = "technology"
	IndustryFinance    IndustryType = "finance"
	IndustryEducation  IndustryType = "education"
	IndustryGeneral    IndustryType = "general"
)

// AnalyzeJobRequest is the body of POST /analyze-job
type AnalyzeJobRequest struct {
	JobDescription string `json:"jobDescription" validate:"required,min=50"`
}

// Validate validates the request fields
func (r *AnalyzeJobRequest) Validate() error {
	return validate.Struct(r)
}

// MatchRequest is the body of POST /match-resumes
type MatchRequest struct {
	JobDescription  string           `json:"jobDescription" validate:"required,min=50"`
	MatchingOptions *MatchingOptions `json:"matchingOptions,omitempty"`
}

// Validate validates the request fields
func (r *MatchRequest) Validate() error {
	return validate.Struct(r)
}

// MatchingOptions is caller-supplied matching configuration. Unset fields
// fall back to defaults at resolution time.
type MatchingOptions struct {
	UseHybridSearch *bool          `json:"useHybridSearch,omitempty"`
	TopResults      *int           `json:"topResults,omitempty" validate:"omitempty,min=1,max=20"`
	IndustryType    IndustryType   `json:"industryType,omitempty" validate:"omitempty,oneof=healthcare technology finance education general"`
	CustomWeights   *CustomWeights `json:"customWeights,omitempty"`
}

// CustomWeights overrides individual scoring weights. Nil fields keep the
// defaults.
type CustomWeights struct {
	Experience      *float64 `json:"experience,omitempty"`
	TechnicalSkills *float64 `json:"technicalSkills,omitempty"`
	Certifications  *float64 `json:"certifications,omitempty"`
	Education       *float64 `json:"education,omitempty"`
}

// Weights are the resolved scoring weights passed to the evaluator as
// context. They are descriptive guidance for the model, not arithmetic
// multipliers, so they need not sum to 1.
type Weights struct {
	Experience      float64 `json:"experience"`
	TechnicalSkills float64 `json:"technicalSkills"`
	Certifications  float64 `json:"certifications"`
	Education       float64 `json:"education"`
}

// ExperienceLevel holds the experience requirements in years
type ExperienceLevel struct {
	MinYears       float64 `json:"minYears"`
	PreferredYears float64 `json:"preferredYears"`
}

// EducationRequirement holds education requirements
type EducationRequirement struct {
	MinimumLevel    string   `json:"minimumLevel"`
	PreferredFields []string `json:"preferredFields"`
}

// CertificationRequirements splits certifications into required and preferred
type CertificationRequirements struct {
	Required  []string `json:"required"`
	Preferred []string `json:"preferred"`
}

// JobRequirements is the structured extraction from a job description.
// Immutable once produced.
type JobRequirements struct {
	JobTitle                string                    `json:"jobTitle"`
	RequiredSkills          []string                  `json:"requiredSkills"`
	ExperienceLevel         ExperienceLevel           `json:"experienceLevel"`
	Education               EducationRequirement      `json:"education"`
	Certifications          CertificationRequirements `json:"certifications"`
	IndustryKnowledge       []string                  `json:"industryKnowledge"`
	SoftSkills              []string                  `json:"softSkills"`
	KeyResponsibilities     []string                  `json:"keyResponsibilities"`
	PreferredQualifications []string                  `json:"preferredQualifications"`
}

// MatchDimension is one facet of candidate evaluation. Strengths and Gaps
// are always non-nil in returned analyses, possibly empty.
type MatchDimension struct {
	Score       float64  `json:"score"`
	Strengths   []string `json:"strengths"`
	Gaps        []string `json:"gaps"`
	Explanation string   `json:"explanation"`
}

// MatchAnalysis is the per-candidate evaluation. Field declaration order is
// the serialized field order, which is an external contract: overallMatch,
// summary, recommendedNextSteps, the three mandatory dimensions, then any
// present optional dimensions.
type MatchAnalysis struct {
	OverallMatch           float64         `json:"overallMatch"`
	Summary                string          `json:"summary"`
	RecommendedNextSteps   []string        `json:"recommendedNextSteps"`
	TechnicalSkillsMatch   MatchDimension  `json:"technicalSkillsMatch"`
	ExperienceMatch        MatchDimension  `json:"experienceMatch"`
	EducationMatch         MatchDimension  `json:"educationMatch"`
	CertificationsMatch    *MatchDimension `json:"certificationsMatch,omitempty"`
	IndustryKnowledgeMatch *MatchDimension `json:"industryKnowledgeMatch,omitempty"`
	SoftSkillsMatch        *MatchDimension `json:"softSkillsMatch,omitempty"`
}

// ResumeMatch pairs a candidate's identity and retrieval scores with its
// evaluation. Never mutated after creation.
type ResumeMatch struct {
	ResumeID      string        `json:"resumeId"`
	CandidateName string        `json:"candidateName"`
	SearchScore   float64       `json:"searchScore"`
	SemanticScore *float64      `json:"semanticScore,omitempty"`
	MatchAnalysis MatchAnalysis `json:"matchAnalysis"`
}

// BestMatch summarizes the top-ranked candidate with a narrative
// recommendation.
type BestMatch struct {
	CandidateID    string  `json:"candidateId"`
	CandidateName  string  `json:"candidateName"`
	OverallScore   float64 `json:"overallScore"`
	Recommendation string  `json:"recommendation"`
}

// Metadata carries corpus and timing information for one match request.
type Metadata struct {
	TotalCandidatesScanned int    `json:"totalCandidatesScanned"`
	ProcessingTimeMs       int64  `json:"processingTimeMs"`
	SearchStrategy         string `json:"searchStrategy"`
}

// MatchingResponse is the top-level result of POST /match-resumes.
// BestMatch is present exactly when Matches is non-empty, and its
// CandidateID equals Matches[0].ResumeID.
type MatchingResponse struct {
	BestMatch *BestMatch    `json:"bestMatch,omitempty"`
	Matches   []ResumeMatch `json:"matches"`
	Metadata  Metadata      `json:"metadata"`
}
