package analytics

import (
	"sort"

	"github.com/keepsake-io/keepsake/internal/record"
)

// EmotionCount is one emotion bucket with its share of the whole set.
type EmotionCount struct {
	Emotion    string  `json:"emotion"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// SentimentCount is one sentiment bucket.
type SentimentCount struct {
	Sentiment string `json:"sentiment"`
	Count     int    `json:"count"`
}

// EmotionalInsights describes the emotional texture of a memory set.
type EmotionalInsights struct {
	EmotionDistribution   []EmotionCount   `json:"emotion_distribution"`
	DominantEmotion       string           `json:"dominant_emotion,omitempty"`
	SentimentDistribution []SentimentCount `json:"sentiment_distribution"`
	EmotionalDiversity    int              `json:"emotional_diversity"`
}

// AnalyzeEmotions builds emotion and sentiment frequency tables. The
// emotion distribution is sorted by count descending with first-seen order
// breaking ties, which also makes the dominant emotion (the head of that
// list) the first-seen label among maxima. Percentages are over the full
// record count, rounded to one decimal place.
func AnalyzeEmotions(memories []record.MemoryRecord) EmotionalInsights {
	emotions := newOrderedCounter()
	sentiments := newOrderedCounter()

	for i := range memories {
		m := &memories[i]
		if m.EmotionalTone != "" {
			emotions.add(m.EmotionalTone)
		}
		if m.Sentiment != "" {
			sentiments.add(m.Sentiment)
		}
	}

	insights := EmotionalInsights{
		EmotionDistribution:   make([]EmotionCount, 0, emotions.len()),
		SentimentDistribution: make([]SentimentCount, 0, sentiments.len()),
		EmotionalDiversity:    emotions.len(),
	}

	total := len(memories)
	for _, p := range emotions.pairs() {
		var pct float64
		if total > 0 {
			pct = roundTo(float64(p.count)/float64(total)*100, 1)
		}
		insights.EmotionDistribution = append(insights.EmotionDistribution, EmotionCount{
			Emotion:    p.key,
			Count:      p.count,
			Percentage: pct,
		})
	}
	sort.SliceStable(insights.EmotionDistribution, func(i, j int) bool {
		return insights.EmotionDistribution[i].Count > insights.EmotionDistribution[j].Count
	})

	if len(insights.EmotionDistribution) > 0 {
		insights.DominantEmotion = insights.EmotionDistribution[0].Emotion
	}

	for _, p := range sentiments.pairs() {
		insights.SentimentDistribution = append(insights.SentimentDistribution, SentimentCount{
			Sentiment: p.key,
			Count:     p.count,
		})
	}
	return insights
}
