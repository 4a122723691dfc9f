package models

// InsightKind categorizes an insight for ranking purposes
type InsightKind string

const (
	KindSupport     InsightKind = "support"
	KindMotivation  InsightKind = "motivation"
	KindCelebration InsightKind = "celebration"
	KindError       InsightKind = "error"
	KindAlert       InsightKind = "alert"
	KindSuccess     InsightKind = "success"
	KindOpportunity InsightKind = "opportunity"
	KindTip         InsightKind = "tip"
	KindPlanning    InsightKind = "planning"
	KindEducation   InsightKind = "education"
	KindInfo        InsightKind = "info"
)

// InsightPriority grades how urgently an insight should surface
type InsightPriority string

const (
	PriorityCritical InsightPriority = "critical"
	PriorityHigh     InsightPriority = "high"
	PriorityMedium   InsightPriority = "medium"
	PriorityLow      InsightPriority = "low"
)

// Insight is a single templated, data-backed recommendation. Insights are
// created fresh on every analysis call and never mutated afterwards.
type Insight struct {
	Kind           InsightKind     `json:"kind"`
	Category       string          `json:"category"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Recommendation string          `json:"recommendation"`
	MetricsSummary string          `json:"metrics_summary"`
	Icon           string          `json:"icon"`
	Priority       InsightPriority `json:"priority"`
}

// Snapshot carries caller-supplied current-period figures (e.g. the current
// month's totals). The engine passes it through to generators untouched and
// makes no assumption about which keys are present.
type Snapshot map[string]float64
