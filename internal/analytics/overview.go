package analytics

import "github.com/keepsake-io/keepsake/internal/record"

// OverviewStats aggregates basic counts and durations over a memory set.
type OverviewStats struct {
	TotalMemories             int    `json:"total_memories"`
	TotalDurationSeconds      int    `json:"total_duration_seconds"`
	TotalDurationFormatted    string `json:"total_duration_formatted"`
	AverageDurationSeconds    int    `json:"average_duration_seconds"`
	MemoriesWithAudio         int    `json:"memories_with_audio"`
	MemoriesWithTranscription int    `json:"memories_with_transcription"`
}

// Overview computes overview statistics. Missing durations count as zero;
// an empty collection yields an all-zero result.
func Overview(memories []record.MemoryRecord) OverviewStats {
	stats := OverviewStats{TotalMemories: len(memories)}

	for i := range memories {
		m := &memories[i]
		stats.TotalDurationSeconds += m.DurationSeconds
		if m.AudioURL != "" {
			stats.MemoriesWithAudio++
		}
		if m.Transcription != "" {
			stats.MemoriesWithTranscription++
		}
	}

	stats.TotalDurationFormatted = FormatDuration(stats.TotalDurationSeconds)
	if stats.TotalMemories > 0 {
		stats.AverageDurationSeconds = stats.TotalDurationSeconds / stats.TotalMemories
	}
	return stats
}
