package retrieval

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Fusion weights for hybrid retrieval. Keyword scores are normalized by the
// max score of the result set before fusing, semantic scores are cosine
// similarities already in [0,1].
const (
	keywordWeight  = 0.5
	semanticWeight = 0.5
)

const defaultTopK = 10

// Engine implements Gateway over a Bleve keyword index paired with an
// in-memory vector index. With an empty path both live purely in memory.
type Engine struct {
	index      bleve.Index
	vectors    *MemoryIndex
	vectorPath string
}

// NewEngine creates or opens the retrieval engine. path is a directory for
// persistent indexes; pass "" for a memory-only engine. dimensions is the
// embedding dimension.
func NewEngine(path string, dimensions int) (*Engine, error) {
	vectors, err := NewMemoryIndex(dimensions)
	if err != nil {
		return nil, err
	}

	if path == "" {
		index, err := bleve.NewMemOnly(buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to create keyword index: %w", err)
		}
		return &Engine{index: index, vectors: vectors}, nil
	}

	keywordPath := filepath.Join(path, "keyword.bleve")
	vectorPath := filepath.Join(path, "vectors.bin")

	var index bleve.Index
	if _, err := os.Stat(keywordPath); err == nil {
		index, err = bleve.Open(keywordPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open keyword index: %w", err)
		}
	} else {
		index, err = bleve.New(keywordPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to create keyword index: %w", err)
		}
	}

	if err := vectors.Load(vectorPath); err != nil {
		index.Close()
		return nil, fmt.Errorf("failed to load vector index: %w", err)
	}

	return &Engine{index: index, vectors: vectors, vectorPath: vectorPath}, nil
}

// buildIndexMapping maps resume fields. Standard analyzer (lowercase +
// tokenize, no stemming) keeps skill tokens like "Go" and "C++" searchable
// as written.
func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("name", textFieldMapping)
	docMapping.AddFieldMappingsAt("summary", textFieldMapping)
	docMapping.AddFieldMappingsAt("skills", textFieldMapping)
	docMapping.AddFieldMappingsAt("experience", textFieldMapping)
	docMapping.AddFieldMappingsAt("education", textFieldMapping)

	keywordFieldMapping := bleve.NewKeywordFieldMapping()
	keywordFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("document_type", keywordFieldMapping)

	im.AddDocumentMapping("resume", docMapping)
	im.DefaultType = "resume"
	im.DefaultMapping = docMapping

	return im
}

// Add indexes a resume document with its embedding. The vector is normalized
// so inner product search equals cosine similarity.
func (e *Engine) Add(ctx context.Context, doc Document, vector []float32) error {
	if doc.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	doc.DocumentType = DocumentTypeResume

	vec := make([]float32, len(vector))
	copy(vec, vector)
	Normalize(vec)

	if err := e.vectors.Add([]string{doc.ID}, [][]float32{vec}); err != nil {
		return fmt.Errorf("failed to add vector: %w", err)
	}
	if err := e.index.Index(doc.ID, doc); err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	return nil
}

// Search implements Gateway.
func (e *Engine) Search(ctx context.Context, query Query) ([]Hit, error) {
	topK := query.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	queryVec := make([]float32, len(query.Vector))
	copy(queryVec, query.Vector)
	Normalize(queryVec)

	switch query.Mode {
	case ModeVector:
		return e.searchVector(ctx, queryVec, topK)
	case ModeHybrid, "":
		return e.searchHybrid(ctx, query.Text, queryVec, topK)
	default:
		return nil, fmt.Errorf("unknown retrieval mode %q", query.Mode)
	}
}

// searchVector ranks by embedding similarity only. The base score already is
// the cosine similarity, so no separate semantic score is reported.
func (e *Engine) searchVector(ctx context.Context, queryVec []float32, topK int) ([]Hit, error) {
	if e.vectors.Size() == 0 {
		return []Hit{}, nil
	}
	results, err := e.vectors.Search(queryVec, topK)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		doc, err := e.fetchDocument(r.ID)
		if err != nil {
			return nil, err
		}
		hits = append(hits, Hit{Document: doc, Score: r.Score})
	}
	return hits, nil
}

// searchHybrid fuses normalized keyword scores with cosine similarities.
// Both legs over-fetch so the merged top-K is correct when a document
// appears in only one leg.
func (e *Engine) searchHybrid(ctx context.Context, text string, queryVec []float32, topK int) ([]Hit, error) {
	reqSize := topK * 2

	keywordScores, err := e.searchKeyword(text, reqSize)
	if err != nil {
		return nil, err
	}

	semanticScores := make(map[string]float64)
	if e.vectors.Size() > 0 {
		vecResults, err := e.vectors.Search(queryVec, reqSize)
		if err != nil {
			return nil, fmt.Errorf("vector search failed: %w", err)
		}
		for _, r := range vecResults {
			semanticScores[r.ID] = r.Score
		}
	}

	fused := fuse(normalizeByMax(keywordScores), semanticScores)
	if len(fused) > topK {
		fused = fused[:topK]
	}

	hits := make([]Hit, 0, len(fused))
	for _, f := range fused {
		doc, err := e.fetchDocument(f.id)
		if err != nil {
			return nil, err
		}
		hit := Hit{Document: doc, Score: f.score}
		if sem, ok := semanticScores[f.id]; ok {
			hit.SemanticScore = &sem
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// searchKeyword runs a match query over the indexed text fields.
func (e *Engine) searchKeyword(text string, limit int) (map[string]float64, error) {
	scores := make(map[string]float64)
	if text == "" {
		return scores, nil
	}
	req := bleve.NewSearchRequest(bleve.NewMatchQuery(text))
	req.Size = limit
	results, err := e.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("keyword search failed: %w", err)
	}
	for _, hit := range results.Hits {
		scores[hit.ID] = hit.Score
	}
	return scores, nil
}

// Count implements Gateway. It counts resume documents via a term query
// on document_type.
func (e *Engine) Count(ctx context.Context) (int, error) {
	q := bleve.NewTermQuery(DocumentTypeResume)
	q.SetField("document_type")
	req := bleve.NewSearchRequest(q)
	req.Size = 0
	results, err := e.index.Search(req)
	if err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return int(results.Total), nil
}

// Save persists the vector index alongside the Bleve index. A no-op for
// memory-only engines.
func (e *Engine) Save() error {
	if e.vectorPath == "" {
		return nil
	}
	return e.vectors.Save(e.vectorPath)
}

// Close releases the underlying indexes, persisting vectors first.
func (e *Engine) Close() error {
	if err := e.Save(); err != nil {
		return err
	}
	return e.index.Close()
}

// fetchDocument reconstructs a Document from the stored fields of one hit.
func (e *Engine) fetchDocument(id string) (Document, error) {
	req := bleve.NewSearchRequest(bleve.NewDocIDQuery([]string{id}))
	req.Size = 1
	req.Fields = []string{"*"}
	results, err := e.index.Search(req)
	if err != nil {
		return Document{}, fmt.Errorf("failed to fetch document %s: %w", id, err)
	}
	if len(results.Hits) == 0 {
		return Document{}, fmt.Errorf("document %s not found in keyword index", id)
	}
	fields := results.Hits[0].Fields
	return Document{
		ID:           id,
		Name:         fieldString(fields, "name"),
		Summary:      fieldString(fields, "summary"),
		Skills:       fieldStrings(fields, "skills"),
		Experience:   fieldString(fields, "experience"),
		Education:    fieldString(fields, "education"),
		DocumentType: fieldString(fields, "document_type"),
	}, nil
}

// Bleve stores a single-element string slice as a bare string; both shapes
// occur in stored fields.
func fieldString(fields map[string]interface{}, name string) string {
	switch v := fields[name].(type) {
	case string:
		return v
	case []interface{}:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

func fieldStrings(fields map[string]interface{}, name string) []string {
	switch v := fields[name].(type) {
	case string:
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

type fusedScore struct {
	id    string
	score float64
}

// normalizeByMax scales keyword scores to [0,1] by the max score.
func normalizeByMax(scores map[string]float64) map[string]float64 {
	var maxScore float64
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	normalized := make(map[string]float64, len(scores))
	for id, s := range scores {
		if maxScore > 0 {
			normalized[id] = s / maxScore
		} else {
			normalized[id] = 0
		}
	}
	return normalized
}

// fuse merges keyword and semantic score maps with the fusion weights and
// returns results sorted by fused score, best first. Ties break on ID so
// ordering is deterministic.
func fuse(keywordScores, semanticScores map[string]float64) []fusedScore {
	merged := make(map[string]float64)
	for id, s := range keywordScores {
		merged[id] = keywordWeight * s
	}
	for id, s := range semanticScores {
		merged[id] += semanticWeight * s
	}
	results := make([]fusedScore, 0, len(merged))
	for id, s := range merged {
		results = append(results, fusedScore{id: id, score: s})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].id < results[j].id
	})
	return results
}
