// Package corpus provides PostgreSQL access to the resume corpus used for
// index ingestion.
package corpus

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Resume is one candidate record as stored in the corpus database.
type Resume struct {
	ID         string
	Name       *string
	Summary    string
	Skills     []string
	Experience string
	Education  string
}

// EmbeddingText builds the text that gets embedded for semantic retrieval.
// Fields are concatenated in a stable order so re-ingesting an unchanged
// resume produces the same embedding input.
func (r *Resume) EmbeddingText() string {
	parts := make([]string, 0, 4)
	if r.Summary != "" {
		parts = append(parts, r.Summary)
	}
	if len(r.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(r.Skills, ", "))
	}
	if r.Experience != "" {
		parts = append(parts, r.Experience)
	}
	if r.Education != "" {
		parts = append(parts, r.Education)
	}
	return strings.Join(parts, "\n\n")
}

// DisplayName returns the candidate name or a placeholder when missing.
func (r *Resume) DisplayName() string {
	if r.Name != nil && *r.Name != "" {
		return *r.Name
	}
	return "Unknown Candidate"
}

// Store wraps a PostgreSQL connection pool
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the corpus database
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// ListResumes retrieves all resumes from the corpus, oldest first
func (s *Store) ListResumes(ctx context.Context) ([]Resume, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, summary, skills, experience, education
		 FROM resumes ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		var r Resume
		if err := rows.Scan(&r.ID, &r.Name, &r.Summary, &r.Skills, &r.Experience, &r.Education); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resumes: %w", err)
	}
	return resumes, nil
}

// CountResumes returns the number of resumes in the corpus
func (s *Store) CountResumes(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM resumes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count resumes: %w", err)
	}
	return count, nil
}
