// Package ingest loads the resume corpus from PostgreSQL into the retrieval
// index, embedding each resume along the way.
package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobfit-ai/matchmaker/internal/corpus"
	"github.com/jobfit-ai/matchmaker/internal/retrieval"
)

// Source lists resumes to ingest. *corpus.Store satisfies it.
type Source interface {
	ListResumes(ctx context.Context) ([]corpus.Resume, error)
}

// Embedder computes text embeddings. llm.Client satisfies it.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Indexer accepts documents with their embeddings. *retrieval.Engine
// satisfies it.
type Indexer interface {
	Add(ctx context.Context, doc retrieval.Document, vector []float32) error
}

// Stats summarizes one ingestion run.
type Stats struct {
	Indexed int
	Skipped int
}

// Ingester copies resumes from the corpus into the retrieval index.
type Ingester struct {
	source   Source
	embedder Embedder
	indexer  Indexer
	logger   *zap.Logger
}

// New creates an ingester
func New(source Source, embedder Embedder, indexer Indexer, logger *zap.Logger) *Ingester {
	return &Ingester{source: source, embedder: embedder, indexer: indexer, logger: logger}
}

// Run ingests every resume in the corpus. A resume that fails to embed or
// index is logged and skipped; the run continues with the rest. Listing
// failures abort the run.
func (i *Ingester) Run(ctx context.Context) (Stats, error) {
	resumes, err := i.source.ListResumes(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to load corpus: %w", err)
	}
	i.logger.Info("starting ingestion", zap.Int("resumes", len(resumes)))

	var stats Stats
	for _, resume := range resumes {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if resume.ID == "" {
			resume.ID = uuid.New().String()
			i.logger.Warn("resume has no id, generated one",
				zap.String("resume_id", resume.ID))
		}

		text := resume.EmbeddingText()
		if text == "" {
			i.logger.Warn("resume has no indexable content, skipping",
				zap.String("resume_id", resume.ID))
			stats.Skipped++
			continue
		}

		vector, err := i.embedder.Embed(ctx, text)
		if err != nil {
			i.logger.Warn("failed to embed resume, skipping",
				zap.String("resume_id", resume.ID),
				zap.Error(err))
			stats.Skipped++
			continue
		}

		doc := retrieval.Document{
			ID:         resume.ID,
			Name:       resume.DisplayName(),
			Summary:    resume.Summary,
			Skills:     resume.Skills,
			Experience: resume.Experience,
			Education:  resume.Education,
		}
		if err := i.indexer.Add(ctx, doc, vector); err != nil {
			i.logger.Warn("failed to index resume, skipping",
				zap.String("resume_id", resume.ID),
				zap.Error(err))
			stats.Skipped++
			continue
		}
		stats.Indexed++
	}

	i.logger.Info("ingestion complete",
		zap.Int("indexed", stats.Indexed),
		zap.Int("skipped", stats.Skipped))
	return stats, nil
}
