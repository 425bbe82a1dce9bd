package timeline

import (
	"sort"

	"github.com/keepsake-io/keepsake/internal/analytics"
	"github.com/keepsake-io/keepsake/internal/record"
)

// expectedDecades is the assumed lifetime span used as the coverage
// denominator. The decade half of the score is deliberately uncapped
// before the final clamp.
const expectedDecades = 8

// DecadesCovered returns the sorted set of decade labels a memory set
// touches, derived the same way the timeline analyzer and decade grouper
// derive them (explicit label first, then event-date year).
func DecadesCovered(memories []record.MemoryRecord) []string {
	seen := make(map[string]bool)
	for i := range memories {
		m := &memories[i]
		switch {
		case m.Decade != "":
			seen[m.Decade] = true
		case m.DateOfEvent != nil:
			seen[analytics.DecadeLabel(m.DateOfEvent.Year())] = true
		}
	}
	covered := make([]string, 0, len(seen))
	for d := range seen {
		covered = append(covered, d)
	}
	sort.Strings(covered)
	return covered
}

// CompletenessScore rates timeline coverage on a 0-100 scale: up to 50
// points for decade coverage against an eight-decade lifetime, up to 50
// for category diversity against ten categories. Empty collections score 0.
func CompletenessScore(decadesCovered []string, memories []record.MemoryRecord) float64 {
	if len(memories) == 0 {
		return 0.0
	}

	decadeScore := float64(len(decadesCovered)) / expectedDecades * 50

	distinct := make(map[string]bool)
	for i := range memories {
		if memories[i].Category != "" {
			distinct[memories[i].Category] = true
		}
	}
	categoryScore := float64(len(distinct)) / 10 * 50
	if categoryScore > 50 {
		categoryScore = 50
	}

	score := decadeScore + categoryScore
	if score > 100.0 {
		return 100.0
	}
	return score
}
