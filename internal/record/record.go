// Package record defines the read-only shapes shared by every analytic
// component: a memory record and the elder profile that owns it.
package record

import (
	"encoding/json"
	"sort"
	"time"
)

// MemoryRecord is one preserved life-story entry. Optional text fields use
// "" for unset; optional numerics that need presence semantics use pointers.
// A record handed to the analytics packages is assumed live (not soft
// deleted) and scoped to a single elder.
type MemoryRecord struct {
	ID      int64 `json:"id"`
	ElderID int64 `json:"elder_id"`

	// Content
	Title         string `json:"title,omitempty"`
	Transcription string `json:"transcription,omitempty"`
	Summary       string `json:"summary,omitempty"`

	// Media
	AudioURL        string `json:"audio_url,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`

	// Classification
	Category    string     `json:"category,omitempty"`
	Era         string     `json:"era,omitempty"`
	Decade      string     `json:"decade,omitempty"`
	DateOfEvent *time.Time `json:"date_of_event,omitempty"`

	// Context
	Location        string  `json:"location,omitempty"`
	PeopleMentioned NameSet `json:"people_mentioned,omitempty"`

	// AI-derived
	Tags          TagList `json:"tags,omitempty"`
	EmotionalTone string  `json:"emotional_tone,omitempty"`
	Sentiment     string  `json:"sentiment,omitempty"`

	// Quality
	TranscriptionConfidence *float64 `json:"transcription_confidence,omitempty"`
	AudioQualityScore       *float64 `json:"audio_quality_score,omitempty"`

	// Engagement
	PlayCount  int `json:"play_count"`
	ShareCount int `json:"share_count"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// EventYear returns the year of the event date, or 0 when unset.
func (m *MemoryRecord) EventYear() int {
	if m.DateOfEvent == nil {
		return 0
	}
	return m.DateOfEvent.Year()
}

// ElderProfile identifies the owner of a memory collection. Analytics only
// ever echo the id and name; the remaining fields exist for the store and
// export layers.
type ElderProfile struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Hometown    string     `json:"hometown,omitempty"`
	Bio         string     `json:"bio,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// NameSet holds the people mentioned in a memory. Upstream enrichment has
// produced two wire shapes over time: a bare list of names, and an object
// whose keys are names (values carry relationship hints that we discard).
// Both decode into one deduplicated set so analytic code sees a single
// representation.
type NameSet []string

func (n *NameSet) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*n = dedupe(list)
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	// Map iteration order is random; keep the set stable.
	sort.Strings(names)
	*n = names
	return nil
}

// Contains reports whether name is in the set.
func (n NameSet) Contains(name string) bool {
	for _, v := range n {
		if v == name {
			return true
		}
	}
	return false
}

// TagList holds a memory's tags as a multiset. The wire shape is either a
// bare list or an object with a "tags" key; both decode to a flat list with
// duplicates preserved (tag frequency counts rely on them).
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}

	var obj struct {
		Tags []string `json:"tags"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*t = obj.Tags
	return nil
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
