package analytics

import (
	"testing"

	"github.com/keepsake-io/keepsake/internal/record"
)

func TestEngagement(t *testing.T) {
	memories := []record.MemoryRecord{
		{ID: 1, Title: "quiet one", PlayCount: 0, ShareCount: 1},
		{ID: 2, Title: "the wedding", PlayCount: 5, ShareCount: 0},
		{ID: 3, Title: "the move", PlayCount: 5, ShareCount: 3},
		{ID: 4, Title: "harvest", PlayCount: 2, ShareCount: 3},
	}
	metrics := Engagement(memories)

	if metrics.TotalPlays != 12 {
		t.Errorf("total plays = %d, want 12", metrics.TotalPlays)
	}
	if metrics.TotalShares != 7 {
		t.Errorf("total shares = %d, want 7", metrics.TotalShares)
	}
	if metrics.AveragePlaysPerMemory != 3 {
		t.Errorf("average plays = %d, want 3", metrics.AveragePlaysPerMemory)
	}

	// First record at the maximum wins the tie.
	if metrics.MostPlayedMemory == nil || metrics.MostPlayedMemory.ID != 2 {
		t.Errorf("most played = %+v, want id 2", metrics.MostPlayedMemory)
	}
	if metrics.MostSharedMemory == nil || metrics.MostSharedMemory.ID != 3 {
		t.Errorf("most shared = %+v, want id 3", metrics.MostSharedMemory)
	}
}

func TestEngagementSuppressedWhenZero(t *testing.T) {
	memories := []record.MemoryRecord{{ID: 1}, {ID: 2}}
	metrics := Engagement(memories)
	if metrics.MostPlayedMemory != nil {
		t.Errorf("most played = %+v, want nil", metrics.MostPlayedMemory)
	}
	if metrics.MostSharedMemory != nil {
		t.Errorf("most shared = %+v, want nil", metrics.MostSharedMemory)
	}
}

func TestEngagementEmpty(t *testing.T) {
	metrics := Engagement(nil)
	if metrics.TotalPlays != 0 || metrics.AveragePlaysPerMemory != 0 {
		t.Errorf("expected zero metrics, got %+v", metrics)
	}
	if metrics.MostPlayedMemory != nil || metrics.MostSharedMemory != nil {
		t.Error("expected nil most-engaged records for empty input")
	}
}
