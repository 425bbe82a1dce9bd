package analytics

import "github.com/keepsake-io/keepsake/internal/record"

const (
	highConfidence = 0.8
	lowConfidence  = 0.5
)

// QualityMetrics reports transcription and audio quality over the records
// that carry a score. Averages are 0 when no record has the field; a
// present 0.0 score still counts as present. LowQuality and NeedingReview
// are the same predicate (confidence < 0.5) reported under both names.
type QualityMetrics struct {
	AverageTranscriptionConfidence float64 `json:"average_transcription_confidence"`
	AverageAudioQuality            float64 `json:"average_audio_quality"`
	HighQualityTranscriptions      int     `json:"memories_with_high_quality_transcription"`
	LowQualityTranscriptions       int     `json:"memories_with_low_quality_transcription"`
	NeedingReview                  int     `json:"memories_needing_review"`
}

// Quality computes quality metrics, rounding averages to two decimals.
func Quality(memories []record.MemoryRecord) QualityMetrics {
	var metrics QualityMetrics

	var confSum float64
	var confN int
	var audioSum float64
	var audioN int

	for i := range memories {
		m := &memories[i]
		if m.TranscriptionConfidence != nil {
			c := *m.TranscriptionConfidence
			confSum += c
			confN++
			if c > highConfidence {
				metrics.HighQualityTranscriptions++
			}
			if c < lowConfidence {
				metrics.LowQualityTranscriptions++
			}
		}
		if m.AudioQualityScore != nil {
			audioSum += *m.AudioQualityScore
			audioN++
		}
	}

	if confN > 0 {
		metrics.AverageTranscriptionConfidence = roundTo(confSum/float64(confN), 2)
	}
	if audioN > 0 {
		metrics.AverageAudioQuality = roundTo(audioSum/float64(audioN), 2)
	}
	metrics.NeedingReview = metrics.LowQualityTranscriptions
	return metrics
}
