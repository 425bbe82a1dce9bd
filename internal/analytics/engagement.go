package analytics

import "github.com/keepsake-io/keepsake/internal/record"

// MostPlayed identifies the record with the highest play count.
type MostPlayed struct {
	ID        int64  `json:"id"`
	Title     string `json:"title,omitempty"`
	PlayCount int    `json:"play_count"`
}

// MostShared identifies the record with the highest share count.
type MostShared struct {
	ID         int64  `json:"id"`
	Title      string `json:"title,omitempty"`
	ShareCount int    `json:"share_count"`
}

// EngagementMetrics aggregates play and share activity. MostPlayedMemory
// and MostSharedMemory are nil when the respective maximum is zero.
type EngagementMetrics struct {
	TotalPlays            int         `json:"total_plays"`
	TotalShares           int         `json:"total_shares"`
	AveragePlaysPerMemory int         `json:"average_plays_per_memory"`
	MostPlayedMemory      *MostPlayed `json:"most_played_memory"`
	MostSharedMemory      *MostShared `json:"most_shared_memory"`
}

// Engagement sums plays and shares and picks the most engaged records.
// Strict comparisons during a single ordered pass make the first-seen
// record win ties on the maximum.
func Engagement(memories []record.MemoryRecord) EngagementMetrics {
	var metrics EngagementMetrics

	playedIdx, sharedIdx := -1, -1
	for i := range memories {
		m := &memories[i]
		metrics.TotalPlays += m.PlayCount
		metrics.TotalShares += m.ShareCount
		if playedIdx < 0 || m.PlayCount > memories[playedIdx].PlayCount {
			playedIdx = i
		}
		if sharedIdx < 0 || m.ShareCount > memories[sharedIdx].ShareCount {
			sharedIdx = i
		}
	}

	if len(memories) > 0 {
		metrics.AveragePlaysPerMemory = metrics.TotalPlays / len(memories)
	}

	if playedIdx >= 0 && memories[playedIdx].PlayCount > 0 {
		m := &memories[playedIdx]
		metrics.MostPlayedMemory = &MostPlayed{ID: m.ID, Title: m.Title, PlayCount: m.PlayCount}
	}
	if sharedIdx >= 0 && memories[sharedIdx].ShareCount > 0 {
		m := &memories[sharedIdx]
		metrics.MostSharedMemory = &MostShared{ID: m.ID, Title: m.Title, ShareCount: m.ShareCount}
	}
	return metrics
}
