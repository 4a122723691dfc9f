package insight

import (
	"fmt"
	"time"

	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/models"
)

// A Generator is a pure function of the profile and the caller-supplied
// current snapshot. Generators never mutate the profile and may emit zero
// insights.
type Generator func(p *models.FinancialProfile, snap models.Snapshot) []models.Insight

// generators lists all generator units in emission order. The ranker is
// stable, so this order decides ties.
var generators = []Generator{
	GenerateBehaviorInsights,
	GenerateTrendInsights,
	GenerateOpportunityInsights,
	GenerateMotivationalInsights,
	GeneratePlanningInsights,
	GenerateEducationalInsights,
}

// GenerateBehaviorInsights emits exactly one insight describing the user's
// risk posture, selected by user type.
func GenerateBehaviorInsights(p *models.FinancialProfile, snap models.Snapshot) []models.Insight {
	metrics := fmt.Sprintf("discipline %s, trend %s, consistency %.0f%%",
		p.Behavior.Discipline, p.Behavior.Trend, p.Behavior.Consistency)

	var ins models.Insight
	switch p.Behavior.UserType {
	case models.UserConservative:
		ins = models.Insight{
			Kind:           models.KindSuccess,
			Title:          "You have a saver's profile",
			Description:    "You consistently keep a comfortable share of your income unspent. That is the strongest position to build wealth from.",
			Recommendation: "Put the surplus to work: move what you don't need short-term into an investment with yield above inflation.",
			Icon:           "🛡️",
			Priority:       models.PriorityLow,
		}
	case models.UserModerate:
		ins = models.Insight{
			Kind:           models.KindInfo,
			Title:          "Balanced, with room to grow",
			Description:    "You end most periods slightly positive, but the margin is thin. Small changes would widen it noticeably.",
			Recommendation: "Pick one recurring expense to trim this month and redirect the difference to savings.",
			Icon:           "⚖️",
			Priority:       models.PriorityMedium,
		}
	case models.UserRisky:
		ins = models.Insight{
			Kind:           models.KindAlert,
			Title:          "Spending is outpacing income",
			Description:    "Your expenses currently meet or exceed what comes in, which erodes any reserve you have.",
			Recommendation: "Review your three largest expense categories and set a hard monthly ceiling for each.",
			Icon:           "⚠️",
			Priority:       models.PriorityHigh,
		}
	default: // novice
		ins = models.Insight{
			Kind:           models.KindTip,
			Title:          "Keep logging to unlock your profile",
			Description:    "There isn't enough recorded activity yet to classify your financial behavior reliably.",
			Recommendation: "Record every revenue and expense for a few weeks; the analysis sharpens quickly with data.",
			Icon:           "🌱",
			Priority:       models.PriorityMedium,
		}
	}
	ins.Category = "behavior"
	ins.MetricsSummary = metrics
	return []models.Insight{ins}
}

// GenerateTrendInsights reacts to the direction of the recent balance and
// to impulsive-spending pressure.
func GenerateTrendInsights(p *models.FinancialProfile, snap models.Snapshot) []models.Insight {
	var out []models.Insight

	switch p.Behavior.Trend {
	case models.TrendImproving:
		out = append(out, models.Insight{
			Kind:           models.KindSuccess,
			Category:       "trends",
			Title:          "Your balance is trending up",
			Description:    "The last three months closed better than the three before them. Whatever you changed is working.",
			Recommendation: "Lock in the gain: set the improvement aside automatically before it gets reabsorbed by spending.",
			MetricsSummary: "recent 3-month balance above 110% of the prior 3 months",
			Icon:           "📈",
			Priority:       models.PriorityHigh,
		})
	case models.TrendWorsening:
		out = append(out, models.Insight{
			Kind:           models.KindSupport,
			Category:       "trends",
			Title:          "Rough patch — let's turn it around",
			Description:    "The last three months closed worse than the three before them. This is the moment to intervene, not to look away.",
			Recommendation: "Start with one week of conscious spending: write down every purchase before making it.",
			MetricsSummary: "recent 3-month balance below 90% of the prior 3 months",
			Icon:           "🤝",
			Priority:       models.PriorityCritical,
		})
	}

	if p.Patterns.ImpulsivePct > 30 {
		out = append(out, models.Insight{
			Kind:           models.KindAlert,
			Category:       "trends",
			Title:          "Many small unplanned purchases",
			Description:    "A large share of your expenses are small amounts with little or no description — the usual signature of impulse buys.",
			Recommendation: "Try the 24-hour rule: for any non-essential purchase, wait a day before paying.",
			MetricsSummary: fmt.Sprintf("%.0f%% of expenses look impulsive (small amount, vague description)", p.Patterns.ImpulsivePct),
			Icon:           "🛒",
			Priority:       models.PriorityMedium,
		})
	}
	return out
}

// GenerateOpportunityInsights points at concrete places where spending can
// be optimized.
func GenerateOpportunityInsights(p *models.FinancialProfile, snap models.Snapshot) []models.Insight {
	category := p.Patterns.TopCategory
	if category == "" {
		category = "your largest category"
	}
	weekday := p.Patterns.TopSpendingWeekday
	if weekday == "" {
		weekday = "your heaviest day"
	}

	out := []models.Insight{{
		Kind:           models.KindOpportunity,
		Category:       "opportunities",
		Title:          fmt.Sprintf("Your money concentrates on %s", category),
		Description:    fmt.Sprintf("Most of your spending lands in %s, and %s is when you spend the most.", category, weekday),
		Recommendation: fmt.Sprintf("Set a weekly budget for %s and plan purchases that usually happen on %s in advance.", category, weekday),
		MetricsSummary: fmt.Sprintf("top category %s, heaviest weekday %s", category, weekday),
		Icon:           "💡",
		Priority:       models.PriorityMedium,
	}}

	if p.Seasonality.SpendVariabilityPct > 50 && p.Seasonality.WorstMonth >= 1 && p.Seasonality.BestMonth >= 1 {
		best := time.Month(p.Seasonality.BestMonth).String()
		worst := time.Month(p.Seasonality.WorstMonth).String()
		out = append(out, models.Insight{
			Kind:           models.KindPlanning,
			Category:       "opportunities",
			Title:          "Your spending swings hard across the year",
			Description:    fmt.Sprintf("%s is historically your most expensive month, while %s is your lightest.", worst, best),
			Recommendation: fmt.Sprintf("Reserve part of the surplus from months like %s to absorb the spike in %s.", best, worst),
			MetricsSummary: fmt.Sprintf("month-to-month spend variability %.0f%%", p.Seasonality.SpendVariabilityPct),
			Icon:           "📅",
			Priority:       models.PriorityMedium,
		})
	}
	return out
}

// GenerateMotivationalInsights celebrates milestones and nudges users with
// no goals to create one.
func GenerateMotivationalInsights(p *models.FinancialProfile, snap models.Snapshot) []models.Insight {
	var out []models.Insight

	if p.History.TotalTransactions >= 100 {
		out = append(out, models.Insight{
			Kind:           models.KindCelebration,
			Category:       "motivation",
			Title:          "100+ transactions logged",
			Description:    "You've built a real habit of tracking your money. Most people give up long before this point.",
			Recommendation: "Keep the streak going — the longer the history, the sharper every analysis gets.",
			MetricsSummary: fmt.Sprintf("%d transactions on record", p.History.TotalTransactions),
			Icon:           "🎉",
			Priority:       models.PriorityMedium,
		})
	}

	if p.Goals.TotalCreated == 0 {
		out = append(out, models.Insight{
			Kind:           models.KindMotivation,
			Category:       "motivation",
			Title:          "Create your first goal",
			Description:    "You track your money but haven't given it a destination yet. A concrete goal is the single best predictor of saving.",
			Recommendation: "Start small: pick an amount you can reach in two or three months and name the goal after what it buys.",
			MetricsSummary: "0 goals created so far",
			Icon:           "🎯",
			Priority:       models.PriorityHigh,
		})
	}

	if p.Goals.SuccessRatePct > 70 {
		out = append(out, models.Insight{
			Kind:           models.KindCelebration,
			Category:       "motivation",
			Title:          "You finish what you start",
			Description:    "You complete the large majority of the goals you set. That kind of follow-through is rare.",
			Recommendation: "Raise the bar: your next goal can be bolder than the last one.",
			MetricsSummary: fmt.Sprintf("%.0f%% of %d goals completed", p.Goals.SuccessRatePct, p.Goals.TotalCreated),
			Icon:           "🏆",
			Priority:       models.PriorityHigh,
		})
	}
	return out
}

// GeneratePlanningInsights turns demonstrated capacity into forward-looking
// plans. When the snapshot carries the current base rate, the emergency-fund
// recommendation quotes it.
func GeneratePlanningInsights(p *models.FinancialProfile, snap models.Snapshot) []models.Insight {
	var out []models.Insight

	if p.History.MaxMonthlySavings > 0 {
		out = append(out, models.Insight{
			Kind:           models.KindPlanning,
			Category:       "planning",
			Title:          "You've proven you can save",
			Description:    fmt.Sprintf("Your best month closed R$ %.2f positive. That figure is your demonstrated saving capacity.", p.History.MaxMonthlySavings),
			Recommendation: "Set a standing monthly target at around half of your best month — ambitious but already proven possible.",
			MetricsSummary: fmt.Sprintf("best monthly savings R$ %.2f", p.History.MaxMonthlySavings),
			Icon:           "💰",
			Priority:       models.PriorityMedium,
		})
	}

	if p.Behavior.UserType != models.UserConservative {
		rec := "Build an emergency fund of three to six months of expenses in an account you can withdraw from at any time."
		if rate, ok := snap["selic_rate_pct"]; ok {
			rec = fmt.Sprintf("Build an emergency fund of three to six months of expenses in a liquid investment — Selic-tracking options currently yield around %.2f%% a year.", rate)
		}
		out = append(out, models.Insight{
			Kind:           models.KindPlanning,
			Category:       "planning",
			Title:          "Protect yourself with an emergency fund",
			Description:    "Without a reserve, one unexpected bill is enough to turn a stable month into debt.",
			Recommendation: rec,
			MetricsSummary: fmt.Sprintf("profile %s, max monthly deficit R$ %.2f", p.Behavior.UserType, -p.History.MaxMonthlyDeficit),
			Icon:           "🛟",
			Priority:       models.PriorityHigh,
		})
	}
	return out
}

// GenerateEducationalInsights teaches concepts appropriate to the user's
// stage.
func GenerateEducationalInsights(p *models.FinancialProfile, snap models.Snapshot) []models.Insight {
	var out []models.Insight

	if p.Behavior.UserType == models.UserNovice {
		out = append(out, models.Insight{
			Kind:           models.KindEducation,
			Category:       "education",
			Title:          "Meet the 50/30/20 rule",
			Description:    "A simple starting split: 50% of income for needs, 30% for wants, 20% for savings and debt payments.",
			Recommendation: "Compare last month against the rule and pick the bucket furthest off to adjust first.",
			MetricsSummary: fmt.Sprintf("%d transactions recorded — early days", p.History.TotalTransactions),
			Icon:           "📚",
			Priority:       models.PriorityLow,
		})
	}

	if p.History.ActiveMonths >= 3 {
		out = append(out, models.Insight{
			Kind:           models.KindEducation,
			Category:       "education",
			Title:          "Your history can predict your future",
			Description:    "With a few months of data, recurring spending patterns emerge — and patterns you can see, you can plan for.",
			Recommendation: "Before each month starts, glance at the same month last period and pre-allocate for what repeated.",
			MetricsSummary: fmt.Sprintf("%d months of activity on record", p.History.ActiveMonths),
			Icon:           "🔭",
			Priority:       models.PriorityLow,
		})
	}
	return out
}
