package insight

import (
	"sort"

	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/models"
)

// priorityWeights orders priorities for ranking. Every priority the engine
// can emit has an entry; an unmapped value ranks last with weight 0.
var priorityWeights = map[models.InsightPriority]int{
	models.PriorityCritical: 4,
	models.PriorityHigh:     3,
	models.PriorityMedium:   2,
	models.PriorityLow:      1,
}

// kindWeights breaks ties within a priority. The table is exhaustive over
// InsightKind so a new kind can't silently fall through to weight 0.
var kindWeights = map[models.InsightKind]int{
	models.KindSupport:     10,
	models.KindMotivation:  9,
	models.KindCelebration: 8,
	models.KindError:       7,
	models.KindAlert:       6,
	models.KindSuccess:     5,
	models.KindOpportunity: 4,
	models.KindTip:         3,
	models.KindPlanning:    2,
	models.KindEducation:   1,
	models.KindInfo:        1,
}

// Rank returns the insights ordered by descending priority weight, then
// descending kind weight. The sort is stable: equal-rank insights keep the
// order in which generators emitted them.
func Rank(insights []models.Insight) []models.Insight {
	ranked := make([]models.Insight, len(insights))
	copy(ranked, insights)
	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := priorityWeights[ranked[i].Priority], priorityWeights[ranked[j].Priority]
		if pi != pj {
			return pi > pj
		}
		return kindWeights[ranked[i].Kind] > kindWeights[ranked[j].Kind]
	})
	return ranked
}
