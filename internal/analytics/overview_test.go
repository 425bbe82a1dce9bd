package analytics

import (
	"testing"

	"github.com/keepsake-io/keepsake/internal/record"
)

func TestOverviewEmpty(t *testing.T) {
	stats := Overview(nil)
	if stats.TotalMemories != 0 || stats.TotalDurationSeconds != 0 || stats.AverageDurationSeconds != 0 {
		t.Errorf("expected all-zero stats, got %+v", stats)
	}
	if stats.TotalDurationFormatted != "0s" {
		t.Errorf("got %q, want %q", stats.TotalDurationFormatted, "0s")
	}
}

func TestOverview(t *testing.T) {
	memories := []record.MemoryRecord{
		{DurationSeconds: 120, AudioURL: "ipfs://a", Transcription: "we walked to school"},
		{DurationSeconds: 65, AudioURL: "ipfs://b"},
		{}, // no duration, no media
	}
	stats := Overview(memories)

	if stats.TotalMemories != 3 {
		t.Errorf("total = %d, want 3", stats.TotalMemories)
	}
	if stats.TotalDurationSeconds != 185 {
		t.Errorf("duration = %d, want 185", stats.TotalDurationSeconds)
	}
	if stats.TotalDurationFormatted != "3m 5s" {
		t.Errorf("formatted = %q, want %q", stats.TotalDurationFormatted, "3m 5s")
	}
	// Floor division: 185 / 3.
	if stats.AverageDurationSeconds != 61 {
		t.Errorf("average = %d, want 61", stats.AverageDurationSeconds)
	}
	if stats.MemoriesWithAudio != 2 {
		t.Errorf("with audio = %d, want 2", stats.MemoriesWithAudio)
	}
	if stats.MemoriesWithTranscription != 1 {
		t.Errorf("with transcription = %d, want 1", stats.MemoriesWithTranscription)
	}
}
