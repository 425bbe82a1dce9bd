package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/keepsake-io/keepsake/internal/record"
)

// DecadeCount is a decade bucket, keyed by a label like "1970s".
type DecadeCount struct {
	Decade string `json:"decade"`
	Count  int    `json:"count"`
}

// EraCount is a life-stage bucket.
type EraCount struct {
	Era   string `json:"era"`
	Count int    `json:"count"`
}

// YearCount is a calendar-year bucket.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// TimelineAnalysis describes how a memory set spreads across time.
// Earliest/Latest are "YYYY-MM-DD" dates, empty when no record carries an
// event date.
type TimelineAnalysis struct {
	Decades           []DecadeCount `json:"decades"`
	Eras              []EraCount    `json:"eras"`
	YearsWithMemories []YearCount   `json:"years_with_memories"`
	EarliestMemory    string        `json:"earliest_memory,omitempty"`
	LatestMemory      string        `json:"latest_memory,omitempty"`
	SpanYears         int           `json:"span_years"`
}

// DecadeLabel derives a decade label such as "1970s" from a year.
func DecadeLabel(year int) string {
	return fmt.Sprintf("%ds", (year/10)*10)
}

// AnalyzeTimeline buckets records into decades, eras and years. An explicit
// decade label wins over the event date; the per-year table only counts
// records whose decade was derived from a date. Records with neither field
// contribute to no decade or year bucket. Eras count independently.
func AnalyzeTimeline(memories []record.MemoryRecord) TimelineAnalysis {
	decades := newOrderedCounter()
	eras := newOrderedCounter()
	years := make(map[int]int)

	var earliest, latest *time.Time

	for i := range memories {
		m := &memories[i]
		if m.Decade != "" {
			decades.add(m.Decade)
		} else if m.DateOfEvent != nil {
			decades.add(DecadeLabel(m.DateOfEvent.Year()))
			years[m.DateOfEvent.Year()]++
		}

		if m.Era != "" {
			eras.add(m.Era)
		}

		if m.DateOfEvent != nil {
			if earliest == nil || m.DateOfEvent.Before(*earliest) {
				earliest = m.DateOfEvent
			}
			if latest == nil || m.DateOfEvent.After(*latest) {
				latest = m.DateOfEvent
			}
		}
	}

	analysis := TimelineAnalysis{
		Decades:           make([]DecadeCount, 0, decades.len()),
		Eras:              make([]EraCount, 0, eras.len()),
		YearsWithMemories: make([]YearCount, 0, len(years)),
	}

	for _, p := range decades.pairs() {
		analysis.Decades = append(analysis.Decades, DecadeCount{Decade: p.key, Count: p.count})
	}
	sort.Slice(analysis.Decades, func(i, j int) bool {
		return analysis.Decades[i].Decade < analysis.Decades[j].Decade
	})

	// Eras keep first-seen order.
	for _, p := range eras.pairs() {
		analysis.Eras = append(analysis.Eras, EraCount{Era: p.key, Count: p.count})
	}

	for y, c := range years {
		analysis.YearsWithMemories = append(analysis.YearsWithMemories, YearCount{Year: y, Count: c})
	}
	sort.Slice(analysis.YearsWithMemories, func(i, j int) bool {
		return analysis.YearsWithMemories[i].Year < analysis.YearsWithMemories[j].Year
	})

	if earliest != nil && latest != nil {
		analysis.EarliestMemory = earliest.Format("2006-01-02")
		analysis.LatestMemory = latest.Format("2006-01-02")
		analysis.SpanYears = latest.Year() - earliest.Year()
	}
	return analysis
}
