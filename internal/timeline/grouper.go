// Package timeline partitions memory collections into ordered period
// buckets and scores how completely they cover a lifetime. Like the
// analytics package, everything here is a pure function over a snapshot.
package timeline

import (
	"errors"
	"sort"

	"github.com/keepsake-io/keepsake/internal/analytics"
	"github.com/keepsake-io/keepsake/internal/record"
)

// Strategy selects how Group partitions records.
type Strategy string

const (
	GroupByDecade   Strategy = "decade"
	GroupByYear     Strategy = "year"
	GroupByEra      Strategy = "era"
	GroupByCategory Strategy = "category"
)

// ErrInvalidGroupBy is returned for a strategy outside the known set.
var ErrInvalidGroupBy = errors.New("invalid group_by strategy")

// Sentinel bucket keys for records missing the grouping field.
const (
	unknownPeriod         = "Unknown"
	uncategorizedPeriod   = "Uncategorized"
	unknownPeriodSortKey  = "9999"
	unknownYearSortValue  = 9999
)

// eraOrder is the fixed life-stage vocabulary. Labels outside it sort
// after every listed one.
var eraOrder = []string{
	"childhood",
	"adolescence",
	"young_adult",
	"adult",
	"middle_age",
	"senior",
	unknownPeriod,
}

// MemorySummary is the lightweight per-record shape carried in buckets.
type MemorySummary struct {
	ID            int64  `json:"id"`
	Title         string `json:"title,omitempty"`
	Category      string `json:"category,omitempty"`
	DateOfEvent   string `json:"date_of_event,omitempty"`
	Summary       string `json:"summary,omitempty"`
	EmotionalTone string `json:"emotional_tone,omitempty"`
	Location      string `json:"location,omitempty"`
}

// Bucket is one period of a grouped timeline. Memories keep the order they
// were supplied in; callers wanting chronological buckets pre-sort the
// snapshot by event date.
type Bucket struct {
	Period   string          `json:"period"`
	Memories []MemorySummary `json:"memories"`
	Count    int             `json:"count"`
}

// Group partitions records by the given strategy. Every record lands in
// exactly one bucket; records missing the grouping field fall into the
// strategy's sentinel bucket.
func Group(memories []record.MemoryRecord, strategy Strategy) ([]Bucket, error) {
	switch strategy {
	case GroupByDecade:
		return groupByDecade(memories), nil
	case GroupByYear:
		return groupByYear(memories), nil
	case GroupByEra:
		return groupByEra(memories), nil
	case GroupByCategory:
		return groupByCategory(memories), nil
	default:
		return nil, ErrInvalidGroupBy
	}
}

func summarize(m *record.MemoryRecord) MemorySummary {
	s := MemorySummary{
		ID:            m.ID,
		Title:         m.Title,
		Category:      m.Category,
		Summary:       m.Summary,
		EmotionalTone: m.EmotionalTone,
		Location:      m.Location,
	}
	if m.DateOfEvent != nil {
		s.DateOfEvent = m.DateOfEvent.Format("2006-01-02")
	}
	return s
}

// partition buckets records under keyFn, preserving first-seen key order
// and supplied record order within each bucket.
func partition(memories []record.MemoryRecord, keyFn func(*record.MemoryRecord) string) []Bucket {
	byKey := make(map[string]int)
	var buckets []Bucket

	for i := range memories {
		m := &memories[i]
		key := keyFn(m)
		idx, ok := byKey[key]
		if !ok {
			idx = len(buckets)
			byKey[key] = idx
			buckets = append(buckets, Bucket{Period: key})
		}
		buckets[idx].Memories = append(buckets[idx].Memories, summarize(m))
	}
	for i := range buckets {
		buckets[i].Count = len(buckets[i].Memories)
	}
	return buckets
}

func groupByDecade(memories []record.MemoryRecord) []Bucket {
	buckets := partition(memories, func(m *record.MemoryRecord) string {
		if m.Decade != "" {
			return m.Decade
		}
		if m.DateOfEvent != nil {
			return analytics.DecadeLabel(m.DateOfEvent.Year())
		}
		return unknownPeriod
	})

	// "Unknown" maps to a key sorting after any real decade label.
	sortKey := func(period string) string {
		if period == unknownPeriod {
			return unknownPeriodSortKey
		}
		return period
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return sortKey(buckets[i].Period) < sortKey(buckets[j].Period)
	})
	return buckets
}

func groupByYear(memories []record.MemoryRecord) []Bucket {
	yearOf := make(map[string]int)
	buckets := partition(memories, func(m *record.MemoryRecord) string {
		if m.DateOfEvent == nil {
			yearOf[unknownPeriod] = unknownYearSortValue
			return unknownPeriod
		}
		key := m.DateOfEvent.Format("2006")
		yearOf[key] = m.DateOfEvent.Year()
		return key
	})

	sort.SliceStable(buckets, func(i, j int) bool {
		return yearOf[buckets[i].Period] < yearOf[buckets[j].Period]
	})
	return buckets
}

func groupByEra(memories []record.MemoryRecord) []Bucket {
	buckets := partition(memories, func(m *record.MemoryRecord) string {
		if m.Era != "" {
			return m.Era
		}
		return unknownPeriod
	})

	rank := func(era string) int {
		for i, known := range eraOrder {
			if era == known {
				return i
			}
		}
		return len(eraOrder)
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return rank(buckets[i].Period) < rank(buckets[j].Period)
	})
	return buckets
}

func groupByCategory(memories []record.MemoryRecord) []Bucket {
	buckets := partition(memories, func(m *record.MemoryRecord) string {
		if m.Category != "" {
			return m.Category
		}
		return uncategorizedPeriod
	})

	// Largest bucket first; stable sort keeps first-seen order on ties.
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	return buckets
}
