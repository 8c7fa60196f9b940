package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validJobRequirementsJSON() string {
	return `{
		"jobTitle": "Senior Software Engineer",
		"requiredSkills": ["Go", "PostgreSQL"],
		"experienceLevel": {"minYears": 5, "preferredYears": 8},
		"education": {"minimumLevel": "Bachelor's", "preferredFields": ["Computer Science"]},
		"certifications": {"required": [], "preferred": ["AWS Certified Developer"]},
		"industryKnowledge": ["fintech"],
		"softSkills": ["communication"],
		"keyResponsibilities": ["Design backend services"],
		"preferredQualifications": ["Open source contributions"]
	}`
}

func validMatchAnalysisJSON() string {
	return `{
		"analysis": {
			"overallMatch": 82,
			"summary": "Strong backend candidate.",
			"recommendedNextSteps": ["Schedule technical interview"],
			"technicalSkillsMatch": {"score": 90, "strengths": ["Go"], "gaps": [], "explanation": "Deep Go experience."},
			"experienceMatch": {"score": 80, "strengths": ["8 years backend"], "gaps": [], "explanation": "Exceeds minimum."},
			"educationMatch": {"score": 75, "strengths": ["BSc CS"], "gaps": [], "explanation": "Meets requirement."}
		}
	}`
}

func TestValidateJobRequirements(t *testing.T) {
	t.Run("valid document passes", func(t *testing.T) {
		err := Validate(JobRequirementsSchema, validJobRequirementsJSON())
		assert.NoError(t, err)
	})

	t.Run("missing required field fails", func(t *testing.T) {
		err := Validate(JobRequirementsSchema, `{"jobTitle": "Engineer"}`)
		require.Error(t, err)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.NotEmpty(t, ve.Errors)
	})

	t.Run("negative minYears fails", func(t *testing.T) {
		doc := `{
			"jobTitle": "Engineer",
			"requiredSkills": [],
			"experienceLevel": {"minYears": -1, "preferredYears": 0},
			"education": {"minimumLevel": "", "preferredFields": []},
			"certifications": {"required": [], "preferred": []},
			"industryKnowledge": [],
			"softSkills": [],
			"keyResponsibilities": [],
			"preferredQualifications": []
		}`
		err := Validate(JobRequirementsSchema, doc)
		require.Error(t, err)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		found := false
		for _, fe := range ve.Errors {
			if fe.Field == "experienceLevel.minYears" {
				found = true
			}
		}
		assert.True(t, found, "expected an error on experienceLevel.minYears, got: %v", ve.Errors)
	})
}

func TestValidateMatchAnalysis(t *testing.T) {
	t.Run("valid envelope passes", func(t *testing.T) {
		err := Validate(MatchAnalysisSchema, validMatchAnalysisJSON())
		assert.NoError(t, err)
	})

	t.Run("bare analysis without envelope fails", func(t *testing.T) {
		doc := `{
			"overallMatch": 82,
			"summary": "Strong candidate.",
			"recommendedNextSteps": []
		}`
		err := Validate(MatchAnalysisSchema, doc)
		assert.Error(t, err)
	})

	t.Run("non-numeric score fails", func(t *testing.T) {
		doc := `{
			"analysis": {
				"overallMatch": "high",
				"summary": "Too vague.",
				"recommendedNextSteps": [],
				"technicalSkillsMatch": {"score": 90, "strengths": [], "gaps": [], "explanation": ""},
				"experienceMatch": {"score": 80, "strengths": [], "gaps": [], "explanation": ""},
				"educationMatch": {"score": 75, "strengths": [], "gaps": [], "explanation": ""}
			}
		}`
		err := Validate(MatchAnalysisSchema, doc)
		require.Error(t, err)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.NotEmpty(t, ve.Errors)
	})

	t.Run("out-of-range scores are structurally valid", func(t *testing.T) {
		// The schema checks shape only; score clamping happens where the
		// response is turned into a typed analysis.
		doc := `{
			"analysis": {
				"overallMatch": 140,
				"summary": "Too good.",
				"recommendedNextSteps": [],
				"technicalSkillsMatch": {"score": 90, "strengths": [], "gaps": [], "explanation": ""},
				"experienceMatch": {"score": -5, "strengths": [], "gaps": [], "explanation": ""},
				"educationMatch": {"score": 75, "strengths": [], "gaps": [], "explanation": ""}
			}
		}`
		assert.NoError(t, Validate(MatchAnalysisSchema, doc))
	})

	t.Run("optional dimensions may be omitted or present", func(t *testing.T) {
		doc := `{
			"analysis": {
				"overallMatch": 70,
				"summary": "Solid fit.",
				"recommendedNextSteps": ["Phone screen"],
				"technicalSkillsMatch": {"score": 70, "strengths": [], "gaps": ["Kubernetes"], "explanation": "Some gaps."},
				"experienceMatch": {"score": 65, "strengths": [], "gaps": [], "explanation": "Adequate."},
				"educationMatch": {"score": 80, "strengths": [], "gaps": [], "explanation": "Meets requirement."},
				"softSkillsMatch": {"score": 85, "strengths": ["leadership"], "gaps": [], "explanation": "Strong."}
			}
		}`
		err := Validate(MatchAnalysisSchema, doc)
		assert.NoError(t, err)
	})
}

func TestValidateJSONStringErrors(t *testing.T) {
	t.Run("malformed schema returns load error", func(t *testing.T) {
		err := ValidateJSONString(`{"type": `, `{}`)
		require.Error(t, err)

		var le *SchemaLoadError
		assert.ErrorAs(t, err, &le)
	})

	t.Run("malformed document returns load error", func(t *testing.T) {
		err := ValidateJSONString(`{"type": "object"}`, `{not json`)
		assert.Error(t, err)
	})
}

func TestMustGet(t *testing.T) {
	t.Run("known schemas load", func(t *testing.T) {
		assert.NotEmpty(t, MustGet(JobRequirementsSchema))
		assert.NotEmpty(t, MustGet(MatchAnalysisSchema))
	})

	t.Run("unknown schema panics", func(t *testing.T) {
		assert.Panics(t, func() {
			MustGet("missing.schema.json")
		})
	})
}
