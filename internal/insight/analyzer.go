package insight

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/models"
)

const (
	// DefaultLookbackMonths is the trailing window used when the caller
	// does not ask for a specific one.
	DefaultLookbackMonths = 6

	// historyCapMonths bounds how far back the single record fetch goes.
	// History and seasonality read this full set; the behavior and pattern
	// analyses read only the lookback window.
	historyCapMonths = 24

	// noviceThreshold is the transaction count below which a user is
	// classified as novice regardless of balance.
	noviceThreshold = 20

	// expectedTransactions is the transaction count of a user logging
	// daily across the default window; consistency is normalized to it.
	expectedTransactions = 180

	smallPurchaseLimit  = 50.0
	vagueDescriptionLen = 10

	goalTrendWindow = 5
)

// Analyzer derives a FinancialProfile from a user's raw records.
// It holds no per-user state; every call fetches and computes fresh.
type Analyzer struct {
	records Records
	log     *logrus.Logger
	now     func() time.Time
}

// NewAnalyzer initializes a new analyzer
func NewAnalyzer(records Records, log *logrus.Logger) *Analyzer {
	return &Analyzer{records: records, log: log, now: time.Now}
}

// Analyze fetches the user's records once and runs the five sub-analyses
// over them. lookbackMonths <= 0 selects the default window. A fetch
// failure surfaces as ErrAnalysisUnavailable with no partial result.
func (a *Analyzer) Analyze(ctx context.Context, userID string, lookbackMonths int) (*models.FinancialProfile, error) {
	if lookbackMonths <= 0 {
		lookbackMonths = DefaultLookbackMonths
	}
	now := a.now()

	user, err := a.records.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch user: %v", ErrAnalysisUnavailable, err)
	}
	all, err := a.records.ListTransactions(ctx, userID, now.AddDate(0, -historyCapMonths, 0))
	if err != nil {
		return nil, fmt.Errorf("%w: fetch transactions: %v", ErrAnalysisUnavailable, err)
	}
	goals, err := a.records.ListGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch goals: %v", ErrAnalysisUnavailable, err)
	}
	debts, err := a.records.ListDebts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch debts: %v", ErrAnalysisUnavailable, err)
	}

	windowStart := now.AddDate(0, -lookbackMonths, 0)
	windowed := make([]models.Transaction, 0, len(all))
	for _, t := range all {
		if !t.Date.Before(windowStart) {
			windowed = append(windowed, t)
		}
	}

	profile := &models.FinancialProfile{
		Behavior:    a.analyzeBehavior(windowed, goals, now),
		History:     a.analyzeHistory(all, goals, user, now),
		Patterns:    analyzePatterns(windowed),
		Goals:       analyzeGoals(goals),
		Debts:       analyzeDebts(debts, windowed, lookbackMonths, now),
		Seasonality: analyzeSeasonality(all),
	}

	a.log.WithFields(logrus.Fields{
		"user_id":      userID,
		"transactions": len(windowed),
		"user_type":    profile.Behavior.UserType,
		"trend":        profile.Behavior.Trend,
	}).Debug("profile computed")

	return profile, nil
}

func (a *Analyzer) analyzeBehavior(windowed []models.Transaction, goals []models.Goal, now time.Time) models.BehaviorProfile {
	var totalRevenue, totalExpense float64
	for _, t := range windowed {
		switch t.Kind {
		case models.KindRevenue:
			totalRevenue += t.Amount
		case models.KindExpense:
			totalExpense += t.Amount
		}
	}
	balance := totalRevenue - totalExpense

	var userType models.UserType
	switch {
	case len(windowed) < noviceThreshold:
		// Too few records to trust the balance-derived rules.
		userType = models.UserNovice
	case balance > 0.2*totalRevenue:
		userType = models.UserConservative
	case balance > 0:
		userType = models.UserModerate
	default:
		userType = models.UserRisky
	}

	goalSuccessRate := 0.0
	if len(goals) > 0 {
		completed := 0
		for _, g := range goals {
			if g.IsCompleted {
				completed++
			}
		}
		goalSuccessRate = float64(completed) / float64(len(goals))
	}

	var discipline models.Discipline
	switch {
	case goalSuccessRate > 0.7 && balance > 0:
		discipline = models.DisciplineHigh
	case goalSuccessRate > 0.4 || balance > 0.1*totalRevenue:
		discipline = models.DisciplineMedium
	default:
		discipline = models.DisciplineLow
	}

	// Recent three months vs the three before them.
	mid := now.AddDate(0, -3, 0)
	var recent, prior float64
	for _, t := range windowed {
		amount := t.Amount
		if t.Kind == models.KindExpense {
			amount = -amount
		}
		if t.Date.Before(mid) {
			prior += amount
		} else {
			recent += amount
		}
	}
	trend := models.TrendStable
	if prior != 0 {
		switch {
		case recent > 1.1*prior:
			trend = models.TrendImproving
		case recent < 0.9*prior:
			trend = models.TrendWorsening
		}
	}

	consistency := math.Min(100, float64(len(windowed))/expectedTransactions*100)

	return models.BehaviorProfile{
		UserType:    userType,
		Discipline:  discipline,
		Trend:       trend,
		Consistency: consistency,
	}
}

func (a *Analyzer) analyzeHistory(all []models.Transaction, goals []models.Goal, user *models.User, now time.Time) models.HistoryProfile {
	days := now.Sub(user.CreatedAt).Hours() / 24
	activeMonths := int(days / 30)
	if activeMonths < 1 {
		activeMonths = 1
	}

	// Single bucketing pass; the month loop then walks buckets, not records.
	byMonth := make(map[string]*models.MonthSummary)
	for _, t := range all {
		key := t.Date.Format("2006-01")
		s := byMonth[key]
		if s == nil {
			s = &models.MonthSummary{}
			byMonth[key] = s
		}
		switch t.Kind {
		case models.KindRevenue:
			s.Revenue += t.Amount
		case models.KindExpense:
			s.Expense += t.Amount
		}
	}

	iterMonths := activeMonths
	if iterMonths > historyCapMonths {
		iterMonths = historyCapMonths
	}
	var maxSavings, maxDeficit float64
	for i := 0; i < iterMonths; i++ {
		key := now.AddDate(0, -i, 0).Format("2006-01")
		var balance float64
		if s := byMonth[key]; s != nil {
			balance = s.Revenue - s.Expense
		}
		if balance > maxSavings {
			maxSavings = balance
		}
		if balance < maxDeficit {
			maxDeficit = balance
		}
	}

	var completionDays float64
	completed := 0
	for _, g := range goals {
		if g.IsCompleted && g.CompletedAt != nil {
			completionDays += g.CompletedAt.Sub(g.CreatedAt).Hours() / 24
			completed++
		}
	}
	avgCompletion := 0.0
	if completed > 0 {
		avgCompletion = completionDays / float64(completed)
	}

	return models.HistoryProfile{
		ActiveMonths:          activeMonths,
		TotalTransactions:     len(all),
		MaxMonthlySavings:     maxSavings,
		MaxMonthlyDeficit:     maxDeficit,
		AvgGoalCompletionDays: avgCompletion,
	}
}

// timeBucket maps an hour of day to a coarse spending period.
func timeBucket(hour int) string {
	switch {
	case hour < 6:
		return "night"
	case hour < 12:
		return "morning"
	case hour < 18:
		return "afternoon"
	default:
		return "evening"
	}
}

func analyzePatterns(windowed []models.Transaction) models.SpendingPatterns {
	var (
		byCategory    = make(map[string]float64)
		categoryOrder []string
		byWeekday     = make(map[string]float64)
		weekdayOrder  []string
		byBucket      = make(map[string]float64)
		byMonth       [13]float64
		expenseCount  int
		impulsive     int
	)

	for _, t := range windowed {
		if t.Kind != models.KindExpense {
			continue
		}
		expenseCount++

		cat := t.Category
		if cat == "" {
			cat = "uncategorized"
		}
		if _, seen := byCategory[cat]; !seen {
			categoryOrder = append(categoryOrder, cat)
		}
		byCategory[cat] += t.Amount

		wd := t.Date.Weekday().String()
		if _, seen := byWeekday[wd]; !seen {
			weekdayOrder = append(weekdayOrder, wd)
		}
		byWeekday[wd] += t.Amount

		byBucket[timeBucket(t.Date.Hour())] += t.Amount
		byMonth[int(t.Date.Month())] += t.Amount

		if t.Amount < smallPurchaseLimit && len(t.Description) < vagueDescriptionLen {
			impulsive++
		}
	}

	// Ties break on first-seen order, so arg-max walks the order slices.
	argMax := func(order []string, totals map[string]float64) string {
		best := ""
		bestTotal := math.Inf(-1)
		for _, k := range order {
			if totals[k] > bestTotal {
				best = k
				bestTotal = totals[k]
			}
		}
		return best
	}

	buckets := make([]string, 0, len(byBucket))
	for b := range byBucket {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if byBucket[buckets[i]] != byBucket[buckets[j]] {
			return byBucket[buckets[i]] > byBucket[buckets[j]]
		}
		return buckets[i] < buckets[j]
	})

	var seasonal []models.MonthTotal
	for m := 1; m <= 12; m++ {
		if byMonth[m] > 0 {
			seasonal = append(seasonal, models.MonthTotal{Month: m, Total: byMonth[m]})
		}
	}

	impulsivePct := 0.0
	if expenseCount > 0 {
		impulsivePct = float64(impulsive) / float64(expenseCount) * 100
	}

	return models.SpendingPatterns{
		TopCategory:        argMax(categoryOrder, byCategory),
		TopSpendingWeekday: argMax(weekdayOrder, byWeekday),
		SpendingTimeBuckets: buckets,
		SeasonalBreakdown:  seasonal,
		ImpulsivePct:       impulsivePct,
	}
}

func analyzeGoals(goals []models.Goal) models.GoalsState {
	state := models.GoalsState{
		TotalCreated: len(goals),
		ValueTrend:   models.ValueStable,
	}
	if len(goals) == 0 {
		return state
	}

	completed := 0
	var targetSum float64
	for _, g := range goals {
		if g.IsCompleted {
			completed++
		}
		targetSum += g.TargetAmount
	}
	state.SuccessRatePct = float64(completed) / float64(len(goals)) * 100
	state.AvgTargetAmount = targetSum / float64(len(goals))

	// With fewer than five goals both windows are the same set, which
	// keeps the trend at stable: not enough data to claim one.
	if len(goals) >= goalTrendWindow {
		ordered := make([]models.Goal, len(goals))
		copy(ordered, goals)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		})
		earliest := meanTarget(ordered[:goalTrendWindow])
		latest := meanTarget(ordered[len(ordered)-goalTrendWindow:])
		if earliest > 0 {
			switch {
			case latest > 1.2*earliest:
				state.ValueTrend = models.ValueIncreasing
			case latest < 0.8*earliest:
				state.ValueTrend = models.ValueDecreasing
			}
		}
	}
	return state
}

func meanTarget(goals []models.Goal) float64 {
	if len(goals) == 0 {
		return 0
	}
	var sum float64
	for _, g := range goals {
		sum += g.TargetAmount
	}
	return sum / float64(len(goals))
}

func analyzeDebts(debts []models.Debt, windowed []models.Transaction, lookbackMonths int, now time.Time) models.DebtState {
	// Absence of debt counts as a perfect payoff history.
	state := models.DebtState{PayoffHistoryPct: 100, DebtTrend: models.TrendStable}
	if len(debts) > 0 {
		settled := 0
		for _, d := range debts {
			if d.Status == models.DebtSettled {
				settled++
			}
		}
		state.PayoffHistoryPct = float64(settled) / float64(len(debts)) * 100

		cutoff := now.AddDate(0, -6, 0)
		recent, older := 0, 0
		for _, d := range debts {
			if d.CreatedAt.Before(cutoff) {
				older++
			} else {
				recent++
			}
		}
		switch {
		case recent < older:
			state.DebtTrend = models.TrendImproving
		case float64(recent) > 1.5*float64(older):
			state.DebtTrend = models.TrendWorsening
		}
	}

	// Commitment: unpaid installments falling due in the coming month,
	// against the average monthly revenue of the window.
	horizon := now.AddDate(0, 1, 0)
	var due float64
	for _, d := range debts {
		if d.Status != models.DebtOpen {
			continue
		}
		for _, inst := range d.Installments {
			if !inst.Paid && !inst.DueDate.Before(now) && inst.DueDate.Before(horizon) {
				due += inst.Amount
			}
		}
	}
	var revenue float64
	for _, t := range windowed {
		if t.Kind == models.KindRevenue {
			revenue += t.Amount
		}
	}
	if revenue > 0 {
		avgMonthlyRevenue := revenue / float64(lookbackMonths)
		state.IncomeCommitmentPct = due / avgMonthlyRevenue * 100
	}
	return state
}

func analyzeSeasonality(all []models.Transaction) models.SeasonalAnalysis {
	var totals [13]float64
	hasExpense := false
	for _, t := range all {
		if t.Kind == models.KindExpense {
			totals[int(t.Date.Month())] += t.Amount
			hasExpense = true
		}
	}
	if !hasExpense {
		return models.SeasonalAnalysis{}
	}

	best, worst := 0, 1
	var sum float64
	for m := 1; m <= 12; m++ {
		sum += totals[m]
		if totals[m] > 0 && (best == 0 || totals[m] < totals[best]) {
			best = m
		}
		if totals[m] > totals[worst] {
			worst = m
		}
	}

	mean := sum / 12
	variability := 0.0
	if mean > 0 {
		var sq float64
		for m := 1; m <= 12; m++ {
			diff := totals[m] - mean
			sq += diff * diff
		}
		variability = math.Sqrt(sq/12) / mean * 100
	}

	return models.SeasonalAnalysis{
		BestMonth:           best,
		WorstMonth:          worst,
		SpendVariabilityPct: variability,
	}
}
