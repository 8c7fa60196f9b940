package matching

import (
	"context"
	"fmt"
	"sync"

	"github.com/jobfit-ai/matchmaker/internal/llm"
	"github.com/jobfit-ai/matchmaker/internal/retrieval"
)

// mockLLMClient implements llm.Client with overridable behavior and
// thread-safe call counters, since evaluations run concurrently.
type mockLLMClient struct {
	mu sync.Mutex

	completeFn     func(systemPrompt, userPayload string, tier llm.ModelTier) (string, error)
	completeJSONFn func(systemPrompt, userPayload string, tier llm.ModelTier) (string, error)
	embedFn        func(text string) ([]float32, error)

	completeCalls     int
	completeJSONCalls int
	embedCalls        int
}

func (m *mockLLMClient) Complete(ctx context.Context, systemPrompt, userPayload string, tier llm.ModelTier) (string, error) {
	m.mu.Lock()
	m.completeCalls++
	fn := m.completeFn
	m.mu.Unlock()
	if fn == nil {
		return "", fmt.Errorf("unexpected Complete call")
	}
	return fn(systemPrompt, userPayload, tier)
}

func (m *mockLLMClient) CompleteJSON(ctx context.Context, systemPrompt, userPayload string, tier llm.ModelTier) (string, error) {
	m.mu.Lock()
	m.completeJSONCalls++
	fn := m.completeJSONFn
	m.mu.Unlock()
	if fn == nil {
		return "", fmt.Errorf("unexpected CompleteJSON call")
	}
	return fn(systemPrompt, userPayload, tier)
}

func (m *mockLLMClient) Embed(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.embedCalls++
	fn := m.embedFn
	m.mu.Unlock()
	if fn == nil {
		return []float32{1, 0, 0}, nil
	}
	return fn(text)
}

func (m *mockLLMClient) Close() error { return nil }

func (m *mockLLMClient) calls() (complete, completeJSON, embed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.completeCalls, m.completeJSONCalls, m.embedCalls
}

// mockGateway implements retrieval.Gateway.
type mockGateway struct {
	mu sync.Mutex

	searchFn func(query retrieval.Query) ([]retrieval.Hit, error)
	countFn  func() (int, error)

	searchCalls int
	countCalls  int
	lastQuery   retrieval.Query
}

func (g *mockGateway) Search(ctx context.Context, query retrieval.Query) ([]retrieval.Hit, error) {
	g.mu.Lock()
	g.searchCalls++
	g.lastQuery = query
	fn := g.searchFn
	g.mu.Unlock()
	if fn == nil {
		return []retrieval.Hit{}, nil
	}
	return fn(query)
}

func (g *mockGateway) Count(ctx context.Context) (int, error) {
	g.mu.Lock()
	g.countCalls++
	fn := g.countFn
	g.mu.Unlock()
	if fn == nil {
		return 0, nil
	}
	return fn()
}

// Test fixtures

func jobRequirementsJSON() string {
	return `{
		"jobTitle": "Backend Engineer",
		"requiredSkills": ["Go", "PostgreSQL"],
		"experienceLevel": {"minYears": 5, "preferredYears": 8},
		"education": {"minimumLevel": "Bachelor's", "preferredFields": ["Computer Science"]},
		"certifications": {"required": [], "preferred": []},
		"industryKnowledge": ["fintech"],
		"softSkills": ["communication"],
		"keyResponsibilities": ["Build services"],
		"preferredQualifications": []
	}`
}

func analysisEnvelopeJSON(overallMatch float64) string {
	return fmt.Sprintf(`{
		"analysis": {
			"overallMatch": %g,
			"summary": "Candidate summary.",
			"recommendedNextSteps": ["Interview"],
			"technicalSkillsMatch": {"score": 80, "strengths": ["Go"], "gaps": [], "explanation": "Solid."},
			"experienceMatch": {"score": 75, "strengths": [], "gaps": [], "explanation": "Adequate."},
			"educationMatch": {"score": 70, "strengths": [], "gaps": [], "explanation": "Meets bar."}
		}
	}`, overallMatch)
}

func testHit(id, name string, score float64) retrieval.Hit {
	return retrieval.Hit{
		Document: retrieval.Document{
			ID:      id,
			Name:    name,
			Summary: "summary of " + id,
			Skills:  []string{"Go"},
		},
		Score: score,
	}
}
