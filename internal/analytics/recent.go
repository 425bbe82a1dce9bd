package analytics

import (
	"sort"
	"time"

	"github.com/keepsake-io/keepsake/internal/record"
)

// DayMemory is a lightweight record summary inside a day bucket.
type DayMemory struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title,omitempty"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DayActivity groups the records created on one calendar day.
type DayActivity struct {
	Date     string      `json:"date"`
	Count    int         `json:"count"`
	Memories []DayMemory `json:"memories"`
}

// RecentActivity reports creation activity inside a lookback window.
type RecentActivity struct {
	PeriodDays     int           `json:"period_days"`
	TotalMemories  int           `json:"total_memories"`
	MemoriesByDay  []DayActivity `json:"memories_by_day"`
	AveragePerWeek float64       `json:"average_per_week"`
}

// AnalyzeRecentActivity selects records created within the last `days`
// before now, groups them by calendar day (most recent day first) and
// computes the weekly average. Windows shorter than a week report 0 as the
// average. Record order within a day follows the supplied order.
func AnalyzeRecentActivity(memories []record.MemoryRecord, now time.Time, days int) RecentActivity {
	cutoff := now.AddDate(0, 0, -days)

	buckets := make(map[string][]DayMemory)
	var keys []string
	total := 0

	for i := range memories {
		m := &memories[i]
		if m.CreatedAt.Before(cutoff) {
			continue
		}
		total++
		day := m.CreatedAt.Format("2006-01-02")
		if _, ok := buckets[day]; !ok {
			keys = append(keys, day)
		}
		buckets[day] = append(buckets[day], DayMemory{
			ID:        m.ID,
			Title:     m.Title,
			Category:  m.Category,
			CreatedAt: m.CreatedAt,
		})
	}

	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	activity := RecentActivity{
		PeriodDays:    days,
		TotalMemories: total,
		MemoriesByDay: make([]DayActivity, 0, len(keys)),
	}
	for _, day := range keys {
		activity.MemoriesByDay = append(activity.MemoriesByDay, DayActivity{
			Date:     day,
			Count:    len(buckets[day]),
			Memories: buckets[day],
		})
	}

	if days >= 7 {
		activity.AveragePerWeek = float64(total) / (float64(days) / 7)
	}
	return activity
}
