package models

// UserType classifies a user's overall financial risk posture
type UserType string

const (
	UserConservative UserType = "conservative"
	UserModerate     UserType = "moderate"
	UserRisky        UserType = "risky"
	UserNovice       UserType = "novice"
)

// Discipline grades how consistently a user follows through on goals
type Discipline string

const (
	DisciplineHigh   Discipline = "high"
	DisciplineMedium Discipline = "medium"
	DisciplineLow    Discipline = "low"
)

// Trend describes the direction of a user's recent net balance
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendWorsening Trend = "worsening"
)

// ValueTrend describes how goal target amounts evolve over time
type ValueTrend string

const (
	ValueIncreasing ValueTrend = "increasing"
	ValueDecreasing ValueTrend = "decreasing"
	ValueStable     ValueTrend = "stable"
)

// BehaviorProfile classifies risk posture, discipline and trend
type BehaviorProfile struct {
	UserType    UserType   `json:"user_type"`
	Discipline  Discipline `json:"discipline"`
	Trend       Trend      `json:"trend"`
	Consistency float64    `json:"consistency"` // 0-100
}

// HistoryProfile aggregates lifetime activity figures
type HistoryProfile struct {
	ActiveMonths          int     `json:"active_months"`
	TotalTransactions     int     `json:"total_transactions"`
	MaxMonthlySavings     float64 `json:"max_monthly_savings"`
	MaxMonthlyDeficit     float64 `json:"max_monthly_deficit"`
	AvgGoalCompletionDays float64 `json:"avg_goal_completion_days"`
}

// MonthTotal holds the expense total for one calendar month
type MonthTotal struct {
	Month int     `json:"month"` // 1-12
	Total float64 `json:"total"`
}

// SpendingPatterns captures where and when money is spent
type SpendingPatterns struct {
	TopCategory         string       `json:"top_category"`
	TopSpendingWeekday  string       `json:"top_spending_weekday"`
	SpendingTimeBuckets []string     `json:"spending_time_buckets"`
	SeasonalBreakdown   []MonthTotal `json:"seasonal_breakdown"`
	ImpulsivePct        float64      `json:"impulsive_pct"` // 0-100
}

// GoalsState aggregates goal creation and completion figures
type GoalsState struct {
	TotalCreated    int        `json:"total_created"`
	SuccessRatePct  float64    `json:"success_rate_pct"` // 0-100
	AvgTargetAmount float64    `json:"avg_target_amount"`
	ValueTrend      ValueTrend `json:"value_trend"`
}

// DebtState aggregates debt commitment and payoff figures
type DebtState struct {
	IncomeCommitmentPct float64 `json:"income_commitment_pct"`
	PayoffHistoryPct    float64 `json:"payoff_history_pct"` // 0-100
	DebtTrend           Trend   `json:"debt_trend"`
}

// SeasonalAnalysis captures month-over-month spending variation
type SeasonalAnalysis struct {
	BestMonth           int     `json:"best_month"`  // 1-12
	WorstMonth          int     `json:"worst_month"` // 1-12
	SpendVariabilityPct float64 `json:"spend_variability_pct"`
}

// FinancialProfile is the full behavioral profile derived from a user's
// records. It is recomputed on every analysis call and never persisted.
type FinancialProfile struct {
	Behavior    BehaviorProfile  `json:"behavior"`
	History     HistoryProfile   `json:"history"`
	Patterns    SpendingPatterns `json:"patterns"`
	Goals       GoalsState       `json:"goals"`
	Debts       DebtState        `json:"debts"`
	Seasonality SeasonalAnalysis `json:"seasonality"`
}
