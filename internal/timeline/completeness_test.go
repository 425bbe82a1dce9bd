package timeline

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/keepsake-io/keepsake/internal/record"
)

func TestDecadesCovered(t *testing.T) {
	memories := []record.MemoryRecord{
		{Decade: "1970s"},
		{DateOfEvent: date(1963, 1, 1)},
		{Decade: "1970s"},
		{},
	}
	got := DecadesCovered(memories)
	want := []string{"1960s", "1970s"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCompletenessScoreEmpty(t *testing.T) {
	if score := CompletenessScore([]string{"1950s"}, nil); score != 0.0 {
		t.Errorf("got %v, want 0.0 for empty collection", score)
	}
}

func TestCompletenessScore(t *testing.T) {
	memories := []record.MemoryRecord{
		{Category: "family"},
		{Category: "work"},
	}
	// 4 of 8 decades -> 25, 2 of 10 categories -> 10.
	decades := []string{"1950s", "1960s", "1970s", "1980s"}
	if score := CompletenessScore(decades, memories); score != 35.0 {
		t.Errorf("got %v, want 35.0", score)
	}
}

func TestCompletenessScoreClampedAt100(t *testing.T) {
	var decades []string
	var memories []record.MemoryRecord
	for i := 0; i < 12; i++ {
		decades = append(decades, fmt.Sprintf("%d0s", 190+i))
		memories = append(memories, record.MemoryRecord{Category: fmt.Sprintf("cat-%d", i)})
	}
	// Decade half exceeds 50 uncapped (12/8*50 = 75); category half caps
	// at 50; the sum clamps to 100.
	if score := CompletenessScore(decades, memories); score != 100.0 {
		t.Errorf("got %v, want 100.0", score)
	}
}

func TestCompletenessScoreMonotonic(t *testing.T) {
	base := []record.MemoryRecord{{Category: "family"}}
	prev := 0.0
	var decades []string
	for i := 0; i < 10; i++ {
		decades = append(decades, fmt.Sprintf("%d0s", 190+i))
		score := CompletenessScore(decades, base)
		if score < prev {
			t.Fatalf("score decreased from %v to %v at %d decades", prev, score, i+1)
		}
		if score < 0 || score > 100 {
			t.Fatalf("score %v outside [0,100]", score)
		}
		prev = score
	}
}

func TestComputeStats(t *testing.T) {
	memories := []record.MemoryRecord{
		{DateOfEvent: date(1955, 3, 10), Category: "family", Era: "childhood"},
		{DateOfEvent: date(1972, 11, 2), Category: "work"},
		{Decade: "1980s", Category: "family"},
	}
	stats := ComputeStats(memories)

	if stats.TotalMemories != 3 {
		t.Errorf("total = %d, want 3", stats.TotalMemories)
	}
	if stats.EarliestMemory != "1955-03-10" || stats.LatestMemory != "1972-11-02" {
		t.Errorf("bounds = %q..%q", stats.EarliestMemory, stats.LatestMemory)
	}
	if stats.TotalDecades != 3 {
		t.Errorf("decades = %v", stats.DecadesCovered)
	}
	if stats.Categories["family"] != 2 || stats.Eras["childhood"] != 1 {
		t.Errorf("categories = %v, eras = %v", stats.Categories, stats.Eras)
	}
	// 3/8*50 + 2/10*50 = 18.75 + 10
	if stats.CompletenessScore != 28.75 {
		t.Errorf("score = %v, want 28.75", stats.CompletenessScore)
	}
}
