package timeline

import (
	"github.com/keepsake-io/keepsake/internal/record"
)

// Stats summarizes an elder's timeline coverage in one pass: bounds,
// decades touched, category/era frequencies, and the completeness score.
type Stats struct {
	TotalMemories     int            `json:"total_memories"`
	EarliestMemory    string         `json:"earliest_memory,omitempty"`
	LatestMemory      string         `json:"latest_memory,omitempty"`
	DecadesCovered    []string       `json:"decades_covered"`
	TotalDecades      int            `json:"total_decades"`
	Categories        map[string]int `json:"categories"`
	Eras              map[string]int `json:"eras"`
	CompletenessScore float64        `json:"completeness_score"`
}

// ComputeStats builds timeline statistics for a memory set.
func ComputeStats(memories []record.MemoryRecord) Stats {
	stats := Stats{
		TotalMemories: len(memories),
		Categories:    make(map[string]int),
		Eras:          make(map[string]int),
	}

	var earliest, latest *record.MemoryRecord
	for i := range memories {
		m := &memories[i]
		if m.DateOfEvent != nil {
			if earliest == nil || m.DateOfEvent.Before(*earliest.DateOfEvent) {
				earliest = m
			}
			if latest == nil || m.DateOfEvent.After(*latest.DateOfEvent) {
				latest = m
			}
		}
		if m.Category != "" {
			stats.Categories[m.Category]++
		}
		if m.Era != "" {
			stats.Eras[m.Era]++
		}
	}
	if earliest != nil {
		stats.EarliestMemory = earliest.DateOfEvent.Format("2006-01-02")
	}
	if latest != nil {
		stats.LatestMemory = latest.DateOfEvent.Format("2006-01-02")
	}

	stats.DecadesCovered = DecadesCovered(memories)
	stats.TotalDecades = len(stats.DecadesCovered)
	stats.CompletenessScore = CompletenessScore(stats.DecadesCovered, memories)
	return stats
}
