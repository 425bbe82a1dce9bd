package analytics

import (
	"testing"

	"github.com/keepsake-io/keepsake/internal/record"
)

func TestAnalyzeEmotionsEmpty(t *testing.T) {
	insights := AnalyzeEmotions(nil)
	if len(insights.EmotionDistribution) != 0 {
		t.Errorf("expected empty distribution, got %+v", insights.EmotionDistribution)
	}
	if insights.DominantEmotion != "" {
		t.Errorf("dominant = %q, want empty", insights.DominantEmotion)
	}
	if insights.EmotionalDiversity != 0 {
		t.Errorf("diversity = %d, want 0", insights.EmotionalDiversity)
	}
}

func TestAnalyzeEmotions(t *testing.T) {
	memories := []record.MemoryRecord{
		{EmotionalTone: "joy", Sentiment: "positive"},
		{EmotionalTone: "joy", Sentiment: "positive"},
		{EmotionalTone: "nostalgia", Sentiment: "neutral"},
		{}, // untagged record still counts toward percentages
	}
	insights := AnalyzeEmotions(memories)

	if insights.DominantEmotion != "joy" {
		t.Errorf("dominant = %q, want joy", insights.DominantEmotion)
	}
	if insights.EmotionalDiversity != 2 {
		t.Errorf("diversity = %d, want 2", insights.EmotionalDiversity)
	}

	top := insights.EmotionDistribution[0]
	if top.Emotion != "joy" || top.Count != 2 || top.Percentage != 50.0 {
		t.Errorf("top = %+v, want joy/2/50.0", top)
	}
	second := insights.EmotionDistribution[1]
	if second.Emotion != "nostalgia" || second.Percentage != 25.0 {
		t.Errorf("second = %+v, want nostalgia/25.0", second)
	}

	if len(insights.SentimentDistribution) != 2 || insights.SentimentDistribution[0].Sentiment != "positive" {
		t.Errorf("sentiments = %+v", insights.SentimentDistribution)
	}
}

func TestAnalyzeEmotionsPercentageRounding(t *testing.T) {
	memories := []record.MemoryRecord{
		{EmotionalTone: "joy"},
		{EmotionalTone: "grief"},
		{EmotionalTone: "grief"},
	}
	insights := AnalyzeEmotions(memories)
	// 1/3 -> 33.3, 2/3 -> 66.7 at one decimal place.
	if insights.EmotionDistribution[0].Percentage != 66.7 {
		t.Errorf("got %v, want 66.7", insights.EmotionDistribution[0].Percentage)
	}
	if insights.EmotionDistribution[1].Percentage != 33.3 {
		t.Errorf("got %v, want 33.3", insights.EmotionDistribution[1].Percentage)
	}
}

func TestAnalyzeEmotionsDominantTieIsFirstSeen(t *testing.T) {
	memories := []record.MemoryRecord{
		{EmotionalTone: "pride"},
		{EmotionalTone: "joy"},
		{EmotionalTone: "joy"},
		{EmotionalTone: "pride"},
	}
	insights := AnalyzeEmotions(memories)
	if insights.DominantEmotion != "pride" {
		t.Errorf("dominant = %q, want pride (first seen among maxima)", insights.DominantEmotion)
	}
}
