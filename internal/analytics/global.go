package analytics

import (
	"sort"

	"github.com/keepsake-io/keepsake/internal/record"
)

const topCategoryLimit = 5

// GlobalStats aggregates across every elder in the archive.
type GlobalStats struct {
	TotalElders             int             `json:"total_elders"`
	TotalMemories           int             `json:"total_memories"`
	TotalDurationSeconds    int             `json:"total_duration_seconds"`
	TotalDurationFormatted  string          `json:"total_duration_formatted"`
	AverageMemoriesPerElder int             `json:"average_memories_per_elder"`
	MostCommonCategories    []CategoryCount `json:"most_common_categories"`
}

// Global computes archive-wide totals and the five most common categories
// (ties keep first-seen order).
func Global(elders []record.ElderProfile, memories []record.MemoryRecord) GlobalStats {
	stats := GlobalStats{
		TotalElders:   len(elders),
		TotalMemories: len(memories),
	}

	categories := newOrderedCounter()
	for i := range memories {
		m := &memories[i]
		stats.TotalDurationSeconds += m.DurationSeconds
		if m.Category != "" {
			categories.add(m.Category)
		}
	}

	stats.TotalDurationFormatted = FormatDuration(stats.TotalDurationSeconds)
	if len(elders) > 0 {
		stats.AverageMemoriesPerElder = len(memories) / len(elders)
	}

	ranked := categories.pairs()
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].count > ranked[j].count
	})
	if len(ranked) > topCategoryLimit {
		ranked = ranked[:topCategoryLimit]
	}
	stats.MostCommonCategories = make([]CategoryCount, 0, len(ranked))
	for _, p := range ranked {
		stats.MostCommonCategories = append(stats.MostCommonCategories, CategoryCount{Category: p.key, Count: p.count})
	}
	return stats
}
