// Package insight derives a behavioral FinancialProfile from a user's
// transaction, goal and debt history and turns it into a ranked list of
// personalized insights. The engine is stateless: every call fetches fresh
// records, computes, and discards everything but the returned list.
package insight

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/models"
)

// Engine is the single public entry point: Analyzer, then all generators,
// then the ranker.
type Engine struct {
	analyzer *Analyzer
	log      *logrus.Logger
}

// NewEngine initializes the engine on top of a record source
func NewEngine(records Records, log *logrus.Logger) *Engine {
	return &Engine{analyzer: NewAnalyzer(records, log), log: log}
}

// Analyze exposes the raw profile for callers that render it directly.
func (e *Engine) Analyze(ctx context.Context, userID string) (*models.FinancialProfile, error) {
	return e.analyzer.Analyze(ctx, userID, DefaultLookbackMonths)
}

// GenerateInsights computes the profile over the default lookback window,
// runs every generator against it and the caller-supplied snapshot, and
// returns the ranked list. Identical records and snapshot produce identical
// output; a record-fetch failure returns ErrAnalysisUnavailable and no
// insights.
func (e *Engine) GenerateInsights(ctx context.Context, userID string, snap models.Snapshot) ([]models.Insight, error) {
	profile, err := e.analyzer.Analyze(ctx, userID, DefaultLookbackMonths)
	if err != nil {
		return nil, err
	}

	var insights []models.Insight
	for _, generate := range generators {
		insights = append(insights, generate(profile, snap)...)
	}

	ranked := Rank(insights)
	e.log.WithFields(logrus.Fields{
		"user_id":  userID,
		"insights": len(ranked),
	}).Info("insights generated")
	return ranked, nil
}
