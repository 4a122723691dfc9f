package insight

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/models"
)

var testNow = time.Date(2026, time.May, 15, 12, 0, 0, 0, time.UTC)

type mockRecords struct {
	transactions []models.Transaction
	goals        []models.Goal
	debts        []models.Debt
	user         *models.User

	failTransactions bool
	failGoals        bool
	failDebts        bool
	failUser         bool
}

func (m *mockRecords) ListTransactions(ctx context.Context, userID string, since time.Time) ([]models.Transaction, error) {
	if m.failTransactions {
		return nil, errors.New("db down")
	}
	var out []models.Transaction
	for _, t := range m.transactions {
		if !t.Date.Before(since) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockRecords) ListGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	if m.failGoals {
		return nil, errors.New("db down")
	}
	return m.goals, nil
}

func (m *mockRecords) ListDebts(ctx context.Context, userID string) ([]models.Debt, error) {
	if m.failDebts {
		return nil, errors.New("db down")
	}
	return m.debts, nil
}

func (m *mockRecords) GetUser(ctx context.Context, userID string) (*models.User, error) {
	if m.failUser {
		return nil, errors.New("db down")
	}
	if m.user != nil {
		return m.user, nil
	}
	return &models.User{ID: userID, CreatedAt: testNow.AddDate(-1, 0, 0)}, nil
}

func newTestAnalyzer(records Records) *Analyzer {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	a := NewAnalyzer(records, log)
	a.now = func() time.Time { return testNow }
	return a
}

func tx(kind models.TransactionKind, amount float64, date time.Time, category, description string) models.Transaction {
	return models.Transaction{
		Kind:        kind,
		Amount:      amount,
		Date:        date,
		Category:    category,
		Description: description,
	}
}

// spread returns n transactions of the given kind with equal amounts summing
// to total, spread across recent weeks inside the lookback window.
func spread(kind models.TransactionKind, n int, total float64, category string) []models.Transaction {
	out := make([]models.Transaction, 0, n)
	for i := 0; i < n; i++ {
		date := testNow.AddDate(0, 0, -(i*4 + 1))
		out = append(out, tx(kind, total/float64(n), date, category, "planned and described purchase"))
	}
	return out
}

func TestAnalyzeNoviceOverridesBalance(t *testing.T) {
	// 19 transactions with a clearly positive balance: the transaction
	// count rule must win.
	records := &mockRecords{
		transactions: append(spread(models.KindRevenue, 10, 5000, ""), spread(models.KindExpense, 9, 500, "market")...),
	}
	profile, err := newTestAnalyzer(records).Analyze(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Behavior.UserType != models.UserNovice {
		t.Errorf("expected novice, got %s", profile.Behavior.UserType)
	}
}

func TestAnalyzeConservative(t *testing.T) {
	// 25 transactions, revenue 3000, expense 2000: balance is a third of
	// revenue, above the 20% conservative threshold.
	records := &mockRecords{
		transactions: append(spread(models.KindRevenue, 5, 3000, ""), spread(models.KindExpense, 20, 2000, "market")...),
	}
	profile, err := newTestAnalyzer(records).Analyze(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Behavior.UserType != models.UserConservative {
		t.Errorf("expected conservative, got %s", profile.Behavior.UserType)
	}
}

func TestAnalyzeModerateAndRisky(t *testing.T) {
	cases := []struct {
		name    string
		revenue float64
		expense float64
		want    models.UserType
	}{
		{"thin positive balance", 3000, 2900, models.UserModerate},
		{"negative balance", 2000, 2500, models.UserRisky},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records := &mockRecords{
				transactions: append(spread(models.KindRevenue, 10, tc.revenue, ""), spread(models.KindExpense, 15, tc.expense, "market")...),
			}
			profile, err := newTestAnalyzer(records).Analyze(context.Background(), "u1", 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if profile.Behavior.UserType != tc.want {
				t.Errorf("expected %s, got %s", tc.want, profile.Behavior.UserType)
			}
		})
	}
}

func TestAnalyzeEmptyRecords(t *testing.T) {
	profile, err := newTestAnalyzer(&mockRecords{}).Analyze(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Behavior.UserType != models.UserNovice {
		t.Errorf("expected novice for empty history, got %s", profile.Behavior.UserType)
	}
	if profile.Debts.PayoffHistoryPct != 100 {
		t.Errorf("expected payoff history 100 with no debts, got %.2f", profile.Debts.PayoffHistoryPct)
	}
	if profile.Seasonality.SpendVariabilityPct != 0 {
		t.Errorf("expected variability 0 with no expenses, got %.2f", profile.Seasonality.SpendVariabilityPct)
	}
	if profile.History.ActiveMonths < 1 {
		t.Errorf("active months must be at least 1, got %d", profile.History.ActiveMonths)
	}
	assertPercentageBounds(t, profile)
}

func TestPercentageBounds(t *testing.T) {
	// A busy fixture: daily activity, goals and debts all at once.
	var transactions []models.Transaction
	for i := 0; i < 120; i++ {
		transactions = append(transactions, tx(models.KindRevenue, 500, testNow.AddDate(0, 0, -(i%170+1)), "", "salary deposit received"))
	}
	for i := 0; i < 250; i++ {
		transactions = append(transactions, tx(models.KindExpense, 160, testNow.AddDate(0, 0, -(i%170+1)), "market", ""))
	}
	goals := []models.Goal{
		{TargetAmount: 1000, IsCompleted: true, CreatedAt: testNow.AddDate(0, -8, 0)},
		{TargetAmount: 2000, CreatedAt: testNow.AddDate(0, -2, 0)},
	}
	debts := []models.Debt{
		{Status: models.DebtSettled, CreatedAt: testNow.AddDate(-1, 0, 0)},
		{Status: models.DebtOpen, CreatedAt: testNow.AddDate(0, -1, 0), Installments: []models.DebtInstallment{
			{Amount: 400, DueDate: testNow.AddDate(0, 0, 10)},
		}},
	}
	profile, err := newTestAnalyzer(&mockRecords{transactions: transactions, goals: goals, debts: debts}).
		Analyze(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPercentageBounds(t, profile)
	if profile.Behavior.Consistency != 100 {
		t.Errorf("expected consistency capped at 100, got %.2f", profile.Behavior.Consistency)
	}
}

func assertPercentageBounds(t *testing.T, p *models.FinancialProfile) {
	t.Helper()
	checks := map[string]float64{
		"consistency":        p.Behavior.Consistency,
		"impulsive_pct":      p.Patterns.ImpulsivePct,
		"success_rate_pct":   p.Goals.SuccessRatePct,
		"payoff_history_pct": p.Debts.PayoffHistoryPct,
	}
	for name, v := range checks {
		if v < 0 || v > 100 {
			t.Errorf("%s out of [0,100]: %.2f", name, v)
		}
	}
	if p.Seasonality.SpendVariabilityPct < 0 {
		t.Errorf("spend variability must be non-negative, got %.2f", p.Seasonality.SpendVariabilityPct)
	}
}

func TestSeasonalityConcentratedInDecember(t *testing.T) {
	var transactions []models.Transaction
	for i := 0; i < 25; i++ {
		date := time.Date(2025, time.December, 1+i%28, 10, 0, 0, 0, time.UTC)
		transactions = append(transactions, tx(models.KindExpense, 200, date, "gifts", "holiday shopping trip"))
	}
	profile, err := newTestAnalyzer(&mockRecords{transactions: transactions}).Analyze(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Seasonality.WorstMonth != 12 {
		t.Errorf("expected worst month 12, got %d", profile.Seasonality.WorstMonth)
	}
	if profile.Seasonality.BestMonth != 12 {
		// December is also the only month with positive spend.
		t.Errorf("expected best month 12, got %d", profile.Seasonality.BestMonth)
	}
	if profile.Seasonality.SpendVariabilityPct <= 100 {
		t.Errorf("expected variability above 100 for single-month concentration, got %.2f", profile.Seasonality.SpendVariabilityPct)
	}
}

func TestImpulsivePct(t *testing.T) {
	var transactions []models.Transaction
	for i := 0; i < 4; i++ {
		transactions = append(transactions, tx(models.KindExpense, 20, testNow.AddDate(0, 0, -i-1), "misc", ""))
	}
	for i := 0; i < 6; i++ {
		transactions = append(transactions, tx(models.KindExpense, 120, testNow.AddDate(0, 0, -i-10), "market", "weekly grocery shopping"))
	}
	profile, err := newTestAnalyzer(&mockRecords{transactions: transactions}).Analyze(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Patterns.ImpulsivePct != 40 {
		t.Errorf("expected impulsive pct 40, got %.2f", profile.Patterns.ImpulsivePct)
	}
}

func TestTopCategoryAndWeekday(t *testing.T) {
	monday := time.Date(2026, time.May, 11, 19, 0, 0, 0, time.UTC)
	transactions := []models.Transaction{
		tx(models.KindExpense, 300, monday, "market", "grocery shopping run"),
		tx(models.KindExpense, 500, monday.AddDate(0, 0, -7), "market", "grocery shopping run"),
		tx(models.KindExpense, 100, monday.AddDate(0, 0, 2), "transport", "monthly transit pass"),
	}
	profile, err := newTestAnalyzer(&mockRecords{transactions: transactions}).Analyze(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Patterns.TopCategory != "market" {
		t.Errorf("expected top category market, got %q", profile.Patterns.TopCategory)
	}
	if profile.Patterns.TopSpendingWeekday != "Monday" {
		t.Errorf("expected top weekday Monday, got %q", profile.Patterns.TopSpendingWeekday)
	}
}

func TestTrendClassification(t *testing.T) {
	cases := []struct {
		name   string
		recent float64 // net balance of the last 3 months
		prior  float64 // net balance of months 4-6 back
		want   models.Trend
	}{
		{"improving", 1200, 1000, models.TrendImproving},
		{"worsening", 800, 1000, models.TrendWorsening},
		{"stable", 1050, 1000, models.TrendStable},
		{"zero prior guards to stable", 500, 0, models.TrendStable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var transactions []models.Transaction
			// 20+ one-revenue-per-week filler keeps the user out of the
			// novice bucket without moving either bucket's balance.
			for i := 0; i < 24; i++ {
				date := testNow.AddDate(0, 0, -(i*7 + 1))
				transactions = append(transactions, tx(models.KindRevenue, 0, date, "", "weekly zero marker"))
			}
			if tc.recent != 0 {
				transactions = append(transactions, tx(models.KindRevenue, tc.recent, testNow.AddDate(0, -1, 0), "", "salary deposit received"))
			}
			if tc.prior != 0 {
				transactions = append(transactions, tx(models.KindRevenue, tc.prior, testNow.AddDate(0, -4, 0), "", "salary deposit received"))
			}
			profile, err := newTestAnalyzer(&mockRecords{transactions: transactions}).Analyze(context.Background(), "u1", 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if profile.Behavior.Trend != tc.want {
				t.Errorf("expected trend %s, got %s", tc.want, profile.Behavior.Trend)
			}
		})
	}
}

func TestGoalValueTrend(t *testing.T) {
	makeGoals := func(targets []float64) []models.Goal {
		goals := make([]models.Goal, 0, len(targets))
		for i, target := range targets {
			goals = append(goals, models.Goal{
				ID:           fmt.Sprintf("g%d", i),
				TargetAmount: target,
				CreatedAt:    testNow.AddDate(0, -len(targets)+i, 0),
			})
		}
		return goals
	}

	cases := []struct {
		name    string
		targets []float64
		want    models.ValueTrend
	}{
		{"fewer than five goals stays stable", []float64{100, 100000}, models.ValueStable},
		{"increasing", []float64{100, 100, 100, 100, 100, 500, 500, 500, 500, 500}, models.ValueIncreasing},
		{"decreasing", []float64{500, 500, 500, 500, 500, 100, 100, 100, 100, 100}, models.ValueDecreasing},
		{"flat", []float64{100, 100, 100, 100, 100, 110, 110, 110, 110, 110}, models.ValueStable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile, err := newTestAnalyzer(&mockRecords{goals: makeGoals(tc.targets)}).Analyze(context.Background(), "u1", 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if profile.Goals.ValueTrend != tc.want {
				t.Errorf("expected %s, got %s", tc.want, profile.Goals.ValueTrend)
			}
		})
	}
}

func TestAvgGoalCompletionDays(t *testing.T) {
	completedAt := testNow.AddDate(0, 0, -10)
	goals := []models.Goal{
		{TargetAmount: 500, IsCompleted: true, CreatedAt: completedAt.AddDate(0, 0, -30), CompletedAt: &completedAt},
		// Completed flag without a completion timestamp contributes nothing:
		// edits to a goal must not masquerade as completions.
		{TargetAmount: 500, IsCompleted: true, CreatedAt: testNow.AddDate(0, -6, 0)},
		{TargetAmount: 500, CreatedAt: testNow.AddDate(0, -1, 0)},
	}
	profile, err := newTestAnalyzer(&mockRecords{goals: goals}).Analyze(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.History.AvgGoalCompletionDays != 30 {
		t.Errorf("expected 30 days, got %.2f", profile.History.AvgGoalCompletionDays)
	}
}

func TestDebtState(t *testing.T) {
	debts := []models.Debt{
		{Status: models.DebtSettled, CreatedAt: testNow.AddDate(-2, 0, 0)},
		{Status: models.DebtSettled, CreatedAt: testNow.AddDate(-1, 0, 0)},
		{Status: models.DebtOpen, CreatedAt: testNow.AddDate(0, -2, 0), Installments: []models.DebtInstallment{
			{Amount: 300, DueDate: testNow.AddDate(0, 0, 5)},
			{Amount: 300, DueDate: testNow.AddDate(0, 1, 5)},
			{Amount: 300, DueDate: testNow.AddDate(0, 0, -25), Paid: true},
		}},
	}
	transactions := spread(models.KindRevenue, 6, 18000, "") // 3000/month average
	profile, err := newTestAnalyzer(&mockRecords{debts: debts, transactions: transactions}).Analyze(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := 100 * 2.0 / 3.0; profile.Debts.PayoffHistoryPct < want-0.01 || profile.Debts.PayoffHistoryPct > want+0.01 {
		t.Errorf("expected payoff history %.2f, got %.2f", want, profile.Debts.PayoffHistoryPct)
	}
	if profile.Debts.DebtTrend != models.TrendImproving {
		t.Errorf("expected improving debt trend, got %s", profile.Debts.DebtTrend)
	}
	// One unpaid installment of 300 falls due within a month, against an
	// average monthly revenue of 3000.
	if profile.Debts.IncomeCommitmentPct < 9.99 || profile.Debts.IncomeCommitmentPct > 10.01 {
		t.Errorf("expected income commitment around 10%%, got %.2f", profile.Debts.IncomeCommitmentPct)
	}
}

func TestAnalyzeRepositoryFailure(t *testing.T) {
	cases := []struct {
		name    string
		records *mockRecords
	}{
		{"user fetch fails", &mockRecords{failUser: true}},
		{"transaction fetch fails", &mockRecords{failTransactions: true}},
		{"goal fetch fails", &mockRecords{failGoals: true}},
		{"debt fetch fails", &mockRecords{failDebts: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile, err := newTestAnalyzer(tc.records).Analyze(context.Background(), "u1", 0)
			if !errors.Is(err, ErrAnalysisUnavailable) {
				t.Fatalf("expected ErrAnalysisUnavailable, got %v", err)
			}
			if profile != nil {
				t.Errorf("expected no partial profile on failure")
			}
		})
	}
}
