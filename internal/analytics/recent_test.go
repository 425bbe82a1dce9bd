package analytics

import (
	"testing"
	"time"

	"github.com/keepsake-io/keepsake/internal/record"
)

func TestAnalyzeRecentActivity(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	mk := func(id int64, daysAgo int) record.MemoryRecord {
		return record.MemoryRecord{ID: id, CreatedAt: now.AddDate(0, 0, -daysAgo)}
	}
	memories := []record.MemoryRecord{
		mk(1, 0), mk(2, 0), mk(3, 3), mk(4, 40), // last one outside window
	}

	activity := AnalyzeRecentActivity(memories, now, 14)

	if activity.PeriodDays != 14 {
		t.Errorf("period = %d, want 14", activity.PeriodDays)
	}
	if activity.TotalMemories != 3 {
		t.Errorf("total = %d, want 3", activity.TotalMemories)
	}
	if len(activity.MemoriesByDay) != 2 {
		t.Fatalf("got %d days, want 2", len(activity.MemoriesByDay))
	}
	// Most recent day first.
	if activity.MemoriesByDay[0].Date != "2024-06-15" || activity.MemoriesByDay[0].Count != 2 {
		t.Errorf("first day = %+v", activity.MemoriesByDay[0])
	}
	if activity.MemoriesByDay[1].Date != "2024-06-12" {
		t.Errorf("second day = %+v", activity.MemoriesByDay[1])
	}
	// 3 memories over 2 weeks.
	if activity.AveragePerWeek != 1.5 {
		t.Errorf("avg per week = %v, want 1.5", activity.AveragePerWeek)
	}
}

func TestAnalyzeRecentActivityShortWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	memories := []record.MemoryRecord{{ID: 1, CreatedAt: now}}
	activity := AnalyzeRecentActivity(memories, now, 3)
	if activity.AveragePerWeek != 0 {
		t.Errorf("avg per week = %v, want 0 for windows under a week", activity.AveragePerWeek)
	}
}

func TestAnalyzeRecentActivityEmpty(t *testing.T) {
	activity := AnalyzeRecentActivity(nil, time.Now(), 30)
	if activity.TotalMemories != 0 || activity.AveragePerWeek != 0 || len(activity.MemoriesByDay) != 0 {
		t.Errorf("expected empty activity, got %+v", activity)
	}
}
