package services

import (
	"context"
	"fmt"
	"time"
)

// MatchService scores uploaded résumés against one job description. All of
// its fields are set at construction and only read afterwards.
type MatchService struct {
	jobDescription string
	extractor      TextExtractor
	scorer         SimilarityScorer
	timeout        time.Duration
}

func NewMatchService(jobDescription string, extractor TextExtractor, scorer SimilarityScorer, timeout time.Duration) *MatchService {
	return &MatchService{
		jobDescription: jobDescription,
		extractor:      extractor,
		scorer:         scorer,
		timeout:        timeout,
	}
}

func (m *MatchService) JobDescription() string {
	return m.jobDescription
}

// Match extracts the document at filePath and scores it against the job description.
func (m *MatchService) Match(ctx context.Context, filePath string) (float64, error) {
	resumeText, err := m.extractor.ExtractText(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to extract text: %w", err)
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	score, err := m.scorer.Score(ctx, m.jobDescription, resumeText)
	if err != nil {
		return 0, fmt.Errorf("failed to compute similarity: %w", err)
	}

	return score, nil
}
