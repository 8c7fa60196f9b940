package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jobfit-ai/matchmaker/internal/corpus"
	"github.com/jobfit-ai/matchmaker/internal/ingest"
	"github.com/jobfit-ai/matchmaker/internal/llm"
	"github.com/jobfit-ai/matchmaker/internal/logger"
	"github.com/jobfit-ai/matchmaker/internal/retrieval"
)

var (
	ingestIndexPath  string
	ingestDimensions int
	ingestJSONLogs   bool
	ingestDebug      bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build the retrieval index from the resume corpus",
	Long:  `Read every resume from the corpus database, embed it, and write it into the retrieval index used by the serve command.`,
	RunE:  runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestIndexPath, "index", "data/index", "Directory holding the retrieval index")
	ingestCmd.Flags().IntVar(&ingestDimensions, "dimensions", defaultEmbeddingDimensions, "Embedding dimension of the index")
	ingestCmd.Flags().BoolVar(&ingestJSONLogs, "json-logs", false, "Emit JSON logs")
	ingestCmd.Flags().BoolVar(&ingestDebug, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(_ *cobra.Command, _ []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	log, err := logger.New(ingestJSONLogs, ingestDebug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck // stdout sync failure is harmless at exit

	ctx := context.Background()

	store, err := corpus.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to corpus database: %w", err)
	}
	defer store.Close()

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	engine, err := retrieval.NewEngine(ingestIndexPath, ingestDimensions)
	if err != nil {
		return fmt.Errorf("failed to open retrieval index: %w", err)
	}
	defer engine.Close()

	stats, err := ingest.New(store, client, engine, log).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Ingestion complete: %d indexed, %d skipped\n", stats.Indexed, stats.Skipped)
	return nil
}
