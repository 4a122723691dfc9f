package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/models"
)

func newTestEngine(records Records) *Engine {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	e := NewEngine(records, log)
	e.analyzer.now = func() time.Time { return testNow }
	return e
}

func TestGenerateInsightsDeterminism(t *testing.T) {
	records := &mockRecords{
		transactions: append(spread(models.KindRevenue, 12, 9000, ""), spread(models.KindExpense, 30, 7000, "market")...),
		goals: []models.Goal{
			{TargetAmount: 1000, IsCompleted: true, CreatedAt: testNow.AddDate(0, -5, 0)},
		},
		debts: []models.Debt{
			{Status: models.DebtOpen, CreatedAt: testNow.AddDate(0, -4, 0)},
		},
	}
	engine := newTestEngine(records)
	snap := models.Snapshot{"current_month_expense": 1200, "selic_rate_pct": 10.5}

	first, err := engine.GenerateInsights(context.Background(), "u1", snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := engine.GenerateInsights(context.Background(), "u1", snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if !bytes.Equal(a, b) {
		t.Errorf("identical inputs must produce byte-identical output\nfirst:  %s\nsecond: %s", a, b)
	}
}

func TestGenerateInsightsRankedOutput(t *testing.T) {
	records := &mockRecords{
		transactions: append(spread(models.KindRevenue, 12, 9000, ""), spread(models.KindExpense, 30, 7000, "market")...),
	}
	insights, err := newTestEngine(records).GenerateInsights(context.Background(), "u1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(insights) == 0 {
		t.Fatal("expected at least the behavior and opportunity insights")
	}
	for i := 0; i < len(insights)-1; i++ {
		pa, pb := priorityWeights[insights[i].Priority], priorityWeights[insights[i+1].Priority]
		if pa < pb {
			t.Errorf("output not ranked: %s before %s", insights[i].Priority, insights[i+1].Priority)
		}
		if pa == pb && kindWeights[insights[i].Kind] < kindWeights[insights[i+1].Kind] {
			t.Errorf("output not kind-ranked: %s before %s", insights[i].Kind, insights[i+1].Kind)
		}
	}
}

func TestGenerateInsightsZeroData(t *testing.T) {
	// A brand-new user with nothing recorded still gets insights, not an
	// error: behavior (novice), first goal, opportunity, emergency fund.
	insights, err := newTestEngine(&mockRecords{}).GenerateInsights(context.Background(), "u1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if findByTitle(insights, "first goal") == nil {
		t.Error("expected the first-goal insight for a user with no goals")
	}
	for _, ins := range insights {
		if ins.Title == "" || ins.Priority == "" {
			t.Errorf("incomplete insight: %+v", ins)
		}
	}
}

func TestGenerateInsightsRepositoryFailure(t *testing.T) {
	insights, err := newTestEngine(&mockRecords{failTransactions: true}).GenerateInsights(context.Background(), "u1", nil)
	if !errors.Is(err, ErrAnalysisUnavailable) {
		t.Fatalf("expected ErrAnalysisUnavailable, got %v", err)
	}
	if insights != nil {
		t.Error("no insights may be produced on a fetch failure")
	}
}
