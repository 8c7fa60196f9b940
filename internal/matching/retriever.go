package matching

import (
	"context"

	"github.com/jobfit-ai/matchmaker/internal/retrieval"
)

// CandidateRetriever shortlists candidates for a job description.
type CandidateRetriever struct {
	gateway retrieval.Gateway
}

// NewCandidateRetriever creates a retriever over the given gateway
func NewCandidateRetriever(gateway retrieval.Gateway) *CandidateRetriever {
	return &CandidateRetriever{gateway: gateway}
}

// Retrieve returns up to topK candidates for the job description. Hybrid
// mode fuses keyword and vector relevance; vector mode uses embedding
// similarity only. Result order is whatever the backend returns; ranking
// happens later in aggregation. An empty shortlist is a valid result, not
// an error.
func (r *CandidateRetriever) Retrieve(ctx context.Context, jobDescription string, embedding []float32, topK int, useHybrid bool) ([]retrieval.Hit, error) {
	query := retrieval.Query{
		Vector: embedding,
		TopK:   topK,
		Mode:   retrieval.ModeVector,
	}
	if useHybrid {
		query.Mode = retrieval.ModeHybrid
		query.Text = jobDescription
	}

	hits, err := r.gateway.Search(ctx, query)
	if err != nil {
		return nil, &RetrievalError{Message: "search query failed", Cause: err}
	}
	return hits, nil
}
