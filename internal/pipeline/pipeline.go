package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ppiankov/credence/internal/credibility"
	"github.com/ppiankov/credence/internal/evidence"
	"github.com/ppiankov/credence/internal/extract"
	"github.com/ppiankov/credence/internal/llm"
	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/score"
	"github.com/ppiankov/credence/internal/sentiment"
	"github.com/ppiankov/credence/internal/verify"
	"github.com/ppiankov/credence/internal/worker"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// The pipeline depends on behaviors, not concrete stages, so every stage can
// be swapped for a fake in tests.
type claimExtractor interface {
	Extract(ctx context.Context, text string) []model.Claim
}

type sentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) model.SentimentProfile
}

type credibilityAssessor interface {
	Assess(ctx context.Context, rawURL string) model.SourceCredibility
}

type scoreAggregator interface {
	Aggregate(ctx context.Context, verdicts []model.ClaimVerdict, sentiment model.SentimentProfile, credibility model.SourceCredibility) model.TrustScoreResult
}

// Pipeline orchestrates the full trust assessment: clean, extract claims,
// run verification, sentiment, and credibility concurrently, then aggregate.
type Pipeline struct {
	extractor  claimExtractor
	verifier   worker.Verifier
	pool       *worker.VerifyPool
	sentiment  sentimentAnalyzer
	assessor   credibilityAssessor
	aggregator scoreAggregator
	logger     *zap.Logger
}

// New wires the production pipeline from configuration. Sentiment model load
// failures degrade that stage rather than failing construction; only an
// explicitly misconfigured generative provider is a startup error.
func New(cfg *model.Config, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	if provider == nil {
		logger.Info("no LLM provider configured, generative steps will use deterministic fallbacks")
	}

	sources := evidence.BuildSources(cfg)
	collector := evidence.NewCollector(sources, logger)

	var polarity sentiment.PolarityScorer = sentiment.NewVADERScorer()
	var classifier sentiment.Classifier
	if bayes, err := sentiment.NewBayesClassifier(); err != nil {
		logger.Warn("sentiment classifier unavailable, running degraded", zap.Error(err))
		polarity = nil
	} else {
		classifier = bayes
	}

	workers := cfg.Concurrency.VerifyWorkers
	if workers < 1 {
		workers = 1
	}

	return &Pipeline{
		extractor:  extract.NewClaimExtractor(provider, logger),
		verifier:   verify.NewVerifier(provider, collector, logger),
		pool:       worker.NewVerifyPool(workers),
		sentiment:  sentiment.NewAnalyzer(polarity, classifier, provider, logger),
		assessor:   credibility.NewAssessor(cfg.Registry, provider, logger),
		aggregator: score.NewAggregator(provider, logger),
		logger:     logger,
	}, nil
}

// NewWithStages wires a pipeline from explicit stages. Used by tests and by
// callers that need to substitute a stage.
func NewWithStages(extractor claimExtractor, verifier worker.Verifier, pool *worker.VerifyPool, analyzer sentimentAnalyzer, assessor credibilityAssessor, aggregator scoreAggregator, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		extractor:  extractor,
		verifier:   verifier,
		pool:       pool,
		sentiment:  analyzer,
		assessor:   assessor,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Analyze runs the complete assessment for one content item. Claim
// verification, sentiment analysis, and source credibility run concurrently
// once claims are extracted; aggregation waits for all three.
func (p *Pipeline) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResponse, error) {
	cleaned := extract.Clean(req.Text)
	if cleaned == "" {
		return nil, fmt.Errorf("no analyzable text after cleaning")
	}

	claims := p.extractor.Extract(ctx, cleaned)
	p.logger.Info("claims extracted", zap.Int("count", len(claims)))

	var (
		verdicts    []model.ClaimVerdict
		profile     model.SentimentProfile
		cred        model.SourceCredibility
		g, groupCtx = errgroup.WithContext(ctx)
	)
	g.Go(func() error {
		verdicts = p.pool.VerifyAll(groupCtx, p.verifier, claims)
		return nil
	})
	g.Go(func() error {
		profile = p.sentiment.Analyze(groupCtx, cleaned)
		return nil
	})
	g.Go(func() error {
		cred = p.assessor.Assess(groupCtx, req.URL)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := p.aggregator.Aggregate(ctx, verdicts, profile, cred)

	return &model.AnalysisResponse{
		TrustScore: result.Score,
		Summary:    result.Summary,
		Breakdown: model.Breakdown{
			ClaimExtraction:   claimBreakdowns(verdicts),
			SourceAnalysis:    sourceBreakdown(req.URL, cred),
			SentimentAnalysis: model.SentimentBreakdown{Score: profile.Compound, Tone: profile.OverallTone},
		},
		Flags: flags(verdicts, profile, cred),
	}, nil
}

func claimBreakdowns(verdicts []model.ClaimVerdict) []model.ClaimBreakdown {
	breakdowns := make([]model.ClaimBreakdown, 0, len(verdicts))
	for _, v := range verdicts {
		sources := v.CitedSources
		if sources == nil {
			sources = []string{}
		}
		breakdowns = append(breakdowns, model.ClaimBreakdown{
			Claim:               v.Claim.Text,
			Status:              v.Assessment,
			Reason:              v.Reasoning,
			CorrectiveStatement: v.CorrectiveStatement,
			SupportingEvidence:  v.SupportingEvidence,
			Sources:             sources,
		})
	}
	return breakdowns
}

func sourceBreakdown(rawURL string, cred model.SourceCredibility) model.SourceBreakdown {
	publisher := ""
	if rawURL != "" {
		if parsed, err := url.Parse(rawURL); err == nil {
			publisher = strings.ToLower(parsed.Hostname())
		}
	}
	return model.SourceBreakdown{
		Publisher:        publisher,
		CredibilityScore: cred.Score,
		PotentialBias:    cred.BiasNote,
	}
}

// flags derives the deterministic warning list from the underlying signals
func flags(verdicts []model.ClaimVerdict, profile model.SentimentProfile, cred model.SourceCredibility) []string {
	out := []string{}
	for _, v := range verdicts {
		if v.Assessment == model.AssessmentContradicted {
			out = append(out, fmt.Sprintf("Contradicted claim: %q", v.Claim.Text))
		}
	}
	if profile.Risky() {
		out = append(out, profile.RiskNote)
	}
	if cred.RegistryMatch != "" {
		out = append(out, fmt.Sprintf("Source domain %q is on the bias watchlist.", cred.RegistryMatch))
	}
	return out
}
