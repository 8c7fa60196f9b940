package matching

// Default scoring weights. They describe relative importance to the
// evaluator prompt; no client-side arithmetic uses them.
const (
	defaultExperienceWeight      = 0.3
	defaultTechnicalSkillsWeight = 0.3
	defaultCertificationsWeight  = 0.2
	defaultEducationWeight       = 0.2
)

// ResolveWeights merges caller overrides with the defaults. The industry
// type does not alter the numeric defaults; specialization is left to the
// model given the industry tag. Weights outside [0,1] are rejected with
// ConfigError before any external call.
func ResolveWeights(custom *CustomWeights, industry IndustryType) (Weights, error) {
	weights := Weights{
		Experience:      defaultExperienceWeight,
		TechnicalSkills: defaultTechnicalSkillsWeight,
		Certifications:  defaultCertificationsWeight,
		Education:       defaultEducationWeight,
	}
	if custom == nil {
		return weights, nil
	}

	if err := applyWeight(&weights.Experience, custom.Experience, "experience"); err != nil {
		return Weights{}, err
	}
	if err := applyWeight(&weights.TechnicalSkills, custom.TechnicalSkills, "technicalSkills"); err != nil {
		return Weights{}, err
	}
	if err := applyWeight(&weights.Certifications, custom.Certifications, "certifications"); err != nil {
		return Weights{}, err
	}
	if err := applyWeight(&weights.Education, custom.Education, "education"); err != nil {
		return Weights{}, err
	}
	return weights, nil
}

func applyWeight(dst *float64, override *float64, field string) error {
	if override == nil {
		return nil
	}
	if *override < 0 || *override > 1 {
		return &ConfigError{
			Field:   field,
			Message: "weight must be between 0 and 1",
		}
	}
	*dst = *override
	return nil
}
