package insight

import (
	"testing"

	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/models"
)

func TestRankOrdersByPriorityThenKind(t *testing.T) {
	input := []models.Insight{
		{Title: "edu", Kind: models.KindEducation, Priority: models.PriorityLow},
		{Title: "planning", Kind: models.KindPlanning, Priority: models.PriorityMedium},
		{Title: "support", Kind: models.KindSupport, Priority: models.PriorityCritical},
		{Title: "celebration", Kind: models.KindCelebration, Priority: models.PriorityMedium},
		{Title: "motivation", Kind: models.KindMotivation, Priority: models.PriorityHigh},
		{Title: "success", Kind: models.KindSuccess, Priority: models.PriorityHigh},
	}

	ranked := Rank(input)

	want := []string{"support", "motivation", "success", "celebration", "planning", "edu"}
	for i, title := range want {
		if ranked[i].Title != title {
			t.Fatalf("position %d: expected %q, got %q", i, title, ranked[i].Title)
		}
	}

	// The ranking law itself: no later insight may outrank an earlier one.
	for i := 0; i < len(ranked)-1; i++ {
		a, b := ranked[i], ranked[i+1]
		pa, pb := priorityWeights[a.Priority], priorityWeights[b.Priority]
		if pa < pb {
			t.Errorf("priority order violated at %d: %s before %s", i, a.Priority, b.Priority)
		}
		if pa == pb && kindWeights[a.Kind] < kindWeights[b.Kind] {
			t.Errorf("kind order violated at %d: %s before %s", i, a.Kind, b.Kind)
		}
	}
}

func TestRankIsStable(t *testing.T) {
	input := []models.Insight{
		{Title: "first", Kind: models.KindEducation, Priority: models.PriorityLow},
		{Title: "second", Kind: models.KindInfo, Priority: models.PriorityLow},
		{Title: "third", Kind: models.KindEducation, Priority: models.PriorityLow},
	}
	// Education and info share the same weight; emission order must hold.
	ranked := Rank(input)
	for i, title := range []string{"first", "second", "third"} {
		if ranked[i].Title != title {
			t.Fatalf("stability violated at %d: expected %q, got %q", i, title, ranked[i].Title)
		}
	}
}

func TestRankUnmappedKindFallsLast(t *testing.T) {
	input := []models.Insight{
		{Title: "unknown", Kind: kindUnknown, Priority: models.PriorityLow},
		{Title: "edu", Kind: models.KindEducation, Priority: models.PriorityLow},
	}
	ranked := Rank(input)
	if ranked[0].Title != "edu" || ranked[1].Title != "unknown" {
		t.Errorf("unmapped kind must rank below mapped kinds, got %q first", ranked[0].Title)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	input := []models.Insight{
		{Title: "low", Priority: models.PriorityLow, Kind: models.KindInfo},
		{Title: "critical", Priority: models.PriorityCritical, Kind: models.KindSupport},
	}
	Rank(input)
	if input[0].Title != "low" {
		t.Error("Rank must operate on a copy of its input")
	}
}

// kindUnknown is deliberately absent from the weight table.
const kindUnknown models.InsightKind = "mystery"
