package matching

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/job-portal/internal/extraction"
	"github.com/jonathan/job-portal/internal/llm"
)

// Document is a resume input: either raw file bytes with a MIME type, or
// already-extracted text. When Text is set the bytes are ignored.
type Document struct {
	MIME string
	Data []byte
	Text string
}

// Service is the matching pipeline entry point. It validates the job's
// requirements, extracts resume text, runs the generative analyzer, and
// reconciles the result with the heuristic matcher.
type Service struct {
	analyzer *Analyzer
	graph    *Graph
	validate *validator.Validate
	logger   *zap.Logger
}

// NewService builds a Service around an LLM client. A nil graph uses the
// default tables and a nil logger discards log output.
func NewService(client llm.Client, graph *Graph, logger *zap.Logger) *Service {
	if graph == nil {
		graph = DefaultGraph()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		analyzer: NewAnalyzer(client, graph, logger),
		graph:    graph,
		validate: validator.New(),
		logger:   logger,
	}
}

// Process produces a match report for a resume document against a job's
// weighted requirements.
//
// Requirement validation failures and text extraction failures are
// terminal: no report is produced. A generative analysis failure is not:
// the analyzer's deterministic fallback report is returned as-is, without
// heuristic reconciliation, since its adjustments assume a model-produced
// report.
func (s *Service) Process(ctx context.Context, doc Document, reqs []Requirement, jobDescription string) (*Report, error) {
	if err := s.validateRequirements(reqs); err != nil {
		return nil, err
	}

	text := doc.Text
	if text == "" {
		var err error
		text, err = extraction.FromDocument(doc.MIME, doc.Data)
		if err != nil {
			return nil, err
		}
	}

	report, seed, aiErr := s.analyzer.Analyze(ctx, text, jobDescription, reqs)
	if aiErr != nil {
		s.logger.Warn("generative analysis unavailable, returning local report",
			zap.Error(aiErr),
			zap.Int("match_score", report.MatchScore))
		return report, nil
	}

	// The heuristic pass cross-checks the model's extraction. The local
	// seed stands in only when the model omitted the extracted_skills
	// field; an explicit empty list means the model found nothing and is
	// taken at its word.
	resumeSkills := report.ExtractedSkills
	if resumeSkills == nil {
		resumeSkills = seed
	}
	heuristicMatched, _ := MatchSkills(resumeSkills, reqs)

	final := Reconcile(report, heuristicMatched, reqs, s.graph)
	if final.ExtractedSkills == nil {
		final.ExtractedSkills = []string{}
	}
	s.logger.Info("resume analyzed",
		zap.Int("match_score", final.MatchScore),
		zap.Int("matched", len(final.MatchedSkills)),
		zap.Int("missing", len(final.MissingSkills)))
	return final, nil
}

// validateRequirements checks each requirement's struct tags and wraps
// the first failure in a *ValidationError naming the offending entry.
func (s *Service) validateRequirements(reqs []Requirement) error {
	for i, req := range reqs {
		if err := s.validate.Struct(req); err != nil {
			var field string
			if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
				field = verrs[0].Field()
			}
			return &ValidationError{
				Message: fmt.Sprintf("invalid skill requirement at index %d: %v", i, err),
				Field:   field,
			}
		}
	}
	return nil
}
