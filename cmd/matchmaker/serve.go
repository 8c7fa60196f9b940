package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jobfit-ai/matchmaker/internal/llm"
	"github.com/jobfit-ai/matchmaker/internal/logger"
	"github.com/jobfit-ai/matchmaker/internal/matching"
	"github.com/jobfit-ai/matchmaker/internal/retrieval"
	"github.com/jobfit-ai/matchmaker/internal/server"
)

// Gemini text-embedding-004 produces 768-dimensional vectors.
const defaultEmbeddingDimensions = 768

var (
	servePort          int
	serveIndexPath     string
	serveDimensions    int
	serveAnalysisModel string
	serveJSONLogs      bool
	serveDebug         bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the job analysis and resume matching endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveIndexPath, "index", "data/index", "Directory holding the retrieval index")
	serveCmd.Flags().IntVar(&serveDimensions, "dimensions", defaultEmbeddingDimensions, "Embedding dimension of the index")
	serveCmd.Flags().StringVar(&serveAnalysisModel, "analysis-model", "", "Override the model used for job analysis")
	serveCmd.Flags().BoolVar(&serveJSONLogs, "json-logs", false, "Emit JSON logs")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	log, err := logger.New(serveJSONLogs, serveDebug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck // stdout sync failure is harmless at exit

	cfg := llm.DefaultConfig()
	if serveAnalysisModel != "" {
		cfg = cfg.WithModel(llm.TierAdvanced, serveAnalysisModel)
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, cfg, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	engine, err := retrieval.NewEngine(serveIndexPath, serveDimensions)
	if err != nil {
		return fmt.Errorf("failed to open retrieval index: %w", err)
	}
	defer engine.Close()

	orchestrator := matching.NewOrchestrator(client, engine, log)

	srv := server.New(server.Config{Port: servePort}, orchestrator, log)
	return srv.Start()
}
