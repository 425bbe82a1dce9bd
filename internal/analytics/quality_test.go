package analytics

import (
	"testing"

	"github.com/keepsake-io/keepsake/internal/record"
)

func TestQuality(t *testing.T) {
	memories := []record.MemoryRecord{
		{TranscriptionConfidence: conf(0.9), AudioQualityScore: conf(0.8)},
		{TranscriptionConfidence: conf(0.4), AudioQualityScore: conf(0.6)},
		{TranscriptionConfidence: conf(0.6)},
		{}, // no scores at all
	}
	metrics := Quality(memories)

	// (0.9 + 0.4 + 0.6) / 3 = 0.6333... -> 0.63
	if metrics.AverageTranscriptionConfidence != 0.63 {
		t.Errorf("avg confidence = %v, want 0.63", metrics.AverageTranscriptionConfidence)
	}
	if metrics.AverageAudioQuality != 0.7 {
		t.Errorf("avg audio = %v, want 0.7", metrics.AverageAudioQuality)
	}
	if metrics.HighQualityTranscriptions != 1 {
		t.Errorf("high quality = %d, want 1", metrics.HighQualityTranscriptions)
	}
	if metrics.LowQualityTranscriptions != 1 {
		t.Errorf("low quality = %d, want 1", metrics.LowQualityTranscriptions)
	}
	if metrics.NeedingReview != metrics.LowQualityTranscriptions {
		t.Errorf("needing review = %d, must equal low quality %d", metrics.NeedingReview, metrics.LowQualityTranscriptions)
	}
}

func TestQualityZeroScoreIsPresent(t *testing.T) {
	metrics := Quality([]record.MemoryRecord{{TranscriptionConfidence: conf(0)}})
	if metrics.AverageTranscriptionConfidence != 0 {
		t.Errorf("avg = %v, want 0", metrics.AverageTranscriptionConfidence)
	}
	if metrics.LowQualityTranscriptions != 1 {
		t.Errorf("low quality = %d, want 1 (0.0 counts as present)", metrics.LowQualityTranscriptions)
	}
}

func TestQualityEmpty(t *testing.T) {
	metrics := Quality(nil)
	if metrics.AverageTranscriptionConfidence != 0 || metrics.AverageAudioQuality != 0 {
		t.Errorf("expected zero averages, got %+v", metrics)
	}
}
