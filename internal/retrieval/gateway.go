// Package retrieval provides candidate retrieval over an embedded search
// index. It supports pure vector search and hybrid keyword+vector search
// with weighted score fusion.
package retrieval

import "context"

// Mode selects the retrieval strategy.
type Mode string

const (
	// ModeVector ranks candidates by embedding similarity only
	ModeVector Mode = "vector"
	// ModeHybrid fuses keyword relevance with embedding similarity
	ModeHybrid Mode = "hybrid"
)

// Document is a candidate resume as stored in the index.
type Document struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Summary      string   `json:"summary"`
	Skills       []string `json:"skills"`
	Experience   string   `json:"experience"`
	Education    string   `json:"education"`
	DocumentType string   `json:"document_type"`
}

// DocumentTypeResume marks indexed resume documents. Count queries filter on it.
const DocumentTypeResume = "resume"

// Query describes one retrieval request.
type Query struct {
	// Text is the keyword query, used in hybrid mode
	Text string
	// Vector is the embedding of the job description
	Vector []float32
	// TopK is the maximum number of hits to return
	TopK int
	// Mode selects vector-only or hybrid retrieval
	Mode Mode
}

// Hit is one retrieved candidate with its relevance scores.
type Hit struct {
	Document Document
	// Score is the fused relevance score used for ranking
	Score float64
	// SemanticScore is the cosine similarity component, when available
	SemanticScore *float64
}

// Gateway is the retrieval surface the matching pipeline depends on.
type Gateway interface {
	// Search returns the top candidates for the query, best first.
	// An empty result is not an error.
	Search(ctx context.Context, query Query) ([]Hit, error)
	// Count returns the number of resume documents in the index
	Count(ctx context.Context) (int, error)
}
