package matching

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jobfit-ai/matchmaker/internal/llm"
	"github.com/jobfit-ai/matchmaker/internal/retrieval"
)

const (
	// defaultTopResults bounds the shortlist when the caller does not set one
	defaultTopResults = 5
	// maxConcurrentEvaluations caps the evaluation fan-out per request
	maxConcurrentEvaluations = 5

	// StrategyHybrid and StrategyVector name the retrieval strategy in
	// response metadata.
	StrategyHybrid = "hybrid"
	StrategyVector = "vector"
)

// Orchestrator sequences the matching pipeline end-to-end. Gateways are
// injected once at construction; there is no shared mutable state across
// requests.
type Orchestrator struct {
	client     llm.Client
	analyzer   *JobAnalyzer
	retriever  *CandidateRetriever
	evaluator  *CandidateEvaluator
	aggregator *MatchAggregator
	logger     *zap.Logger
}

// NewOrchestrator wires the pipeline components around the given gateways
func NewOrchestrator(client llm.Client, gateway retrieval.Gateway, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		client:     client,
		analyzer:   NewJobAnalyzer(client),
		retriever:  NewCandidateRetriever(gateway),
		evaluator:  NewCandidateEvaluator(client),
		aggregator: NewMatchAggregator(client, gateway, logger),
		logger:     logger,
	}
}

// AnalyzeJob extracts structured requirements from a job description.
func (o *Orchestrator) AnalyzeJob(ctx context.Context, jobDescription string) (*JobRequirements, error) {
	return o.analyzer.Analyze(ctx, jobDescription)
}

// MatchResumes runs the full pipeline: resolve options, analyze the job,
// embed and retrieve a shortlist, evaluate every candidate concurrently,
// then rank and summarize. Analysis failures abort before any retrieval or
// evaluation call is made.
func (o *Orchestrator) MatchResumes(ctx context.Context, jobDescription string, opts *MatchingOptions) (*MatchingResponse, error) {
	start := time.Now()

	useHybrid, topResults, industry, custom := resolveOptions(opts)
	weights, err := ResolveWeights(custom, industry)
	if err != nil {
		return nil, err
	}

	strategy := StrategyVector
	if useHybrid {
		strategy = StrategyHybrid
	}

	requirements, err := o.analyzer.Analyze(ctx, jobDescription)
	if err != nil {
		return nil, err
	}

	embedding, err := o.client.Embed(ctx, jobDescription)
	if err != nil {
		return nil, &RetrievalError{Message: "failed to embed job description", Cause: err}
	}

	shortlist, err := o.retriever.Retrieve(ctx, jobDescription, embedding, topResults, useHybrid)
	if err != nil {
		return nil, err
	}
	o.logger.Info("retrieved candidate shortlist",
		zap.Int("candidates", len(shortlist)),
		zap.String("strategy", strategy))

	totalCandidates := o.aggregator.CountCorpus(ctx)

	if len(shortlist) == 0 {
		return &MatchingResponse{
			Matches: []ResumeMatch{},
			Metadata: Metadata{
				TotalCandidatesScanned: totalCandidates,
				ProcessingTimeMs:       time.Since(start).Milliseconds(),
				SearchStrategy:         strategy,
			},
		}, nil
	}

	evaluated, err := o.evaluateAll(ctx, jobDescription, requirements, shortlist, weights, industry)
	if err != nil {
		return nil, err
	}

	matches, bestMatch := o.aggregator.Aggregate(ctx, evaluated, jobDescription, requirements)

	return &MatchingResponse{
		BestMatch: bestMatch,
		Matches:   matches,
		Metadata: Metadata{
			TotalCandidatesScanned: totalCandidates,
			ProcessingTimeMs:       time.Since(start).Milliseconds(),
			SearchStrategy:         strategy,
		},
	}, nil
}

// evaluateAll fans out one evaluation per shortlisted candidate and waits
// for all of them. Each goroutine writes only to its own result slot and
// never returns an error, so one failed candidate neither cancels nor
// blocks its siblings. Failed candidates are dropped from the result; the
// request fails only when every evaluation failed.
func (o *Orchestrator) evaluateAll(ctx context.Context, jobDescription string, requirements *JobRequirements, shortlist []retrieval.Hit, weights Weights, industry IndustryType) ([]ResumeMatch, error) {
	results := make([]*ResumeMatch, len(shortlist))
	failures := make([]error, len(shortlist))

	g := &errgroup.Group{}
	g.SetLimit(maxConcurrentEvaluations)
	for i, hit := range shortlist {
		g.Go(func() error {
			analysis, err := o.evaluator.Evaluate(ctx, jobDescription, requirements, hit.Document, weights, industry)
			if err != nil {
				o.logger.Warn("candidate evaluation failed",
					zap.String("resume_id", hit.Document.ID),
					zap.Error(err))
				failures[i] = err
				return nil
			}
			results[i] = &ResumeMatch{
				ResumeID:      hit.Document.ID,
				CandidateName: candidateName(hit.Document),
				SearchScore:   hit.Score,
				SemanticScore: hit.SemanticScore,
				MatchAnalysis: *analysis,
			}
			return nil
		})
	}
	// Barrier: all evaluations complete before aggregation.
	_ = g.Wait()

	evaluated := make([]ResumeMatch, 0, len(shortlist))
	for _, r := range results {
		if r != nil {
			evaluated = append(evaluated, *r)
		}
	}
	if len(evaluated) == 0 {
		var cause error
		for _, f := range failures {
			if f != nil {
				cause = f
				break
			}
		}
		return nil, &EvaluationError{Message: "all candidate evaluations failed", Cause: cause}
	}
	return evaluated, nil
}

// resolveOptions applies the documented defaults: hybrid search on, five
// results, general industry.
func resolveOptions(opts *MatchingOptions) (useHybrid bool, topResults int, industry IndustryType, custom *CustomWeights) {
	useHybrid = true
	topResults = defaultTopResults
	industry = IndustryGeneral
	if opts == nil {
		return
	}
	if opts.UseHybridSearch != nil {
		useHybrid = *opts.UseHybridSearch
	}
	if opts.TopResults != nil {
		topResults = *opts.TopResults
	}
	if opts.IndustryType != "" {
		industry = opts.IndustryType
	}
	custom = opts.CustomWeights
	return
}
