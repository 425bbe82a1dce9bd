package analytics

import (
	"sort"

	"github.com/keepsake-io/keepsake/internal/record"
)

const topTagLimit = 10

// CategoryCount is a category bucket.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// TagCount is a tag bucket.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// ContentAnalysis summarizes what a memory set is about: category spread,
// distinct locations and people, and the most frequent tags.
type ContentAnalysis struct {
	Categories         []CategoryCount `json:"categories"`
	TotalCategories    int             `json:"total_categories"`
	LocationsMentioned []string        `json:"locations_mentioned"`
	TotalLocations     int             `json:"total_locations"`
	PeopleMentioned    []string        `json:"people_mentioned"`
	TotalPeople        int             `json:"total_people"`
	TopTags            []TagCount      `json:"top_tags"`
}

// AnalyzeContent computes category frequency (descending, ties keep
// first-seen order), location and people sets, and the top ten tags.
func AnalyzeContent(memories []record.MemoryRecord) ContentAnalysis {
	categories := newOrderedCounter()
	tags := newOrderedCounter()

	var locations []string
	locationSeen := make(map[string]bool)
	var people []string
	peopleSeen := make(map[string]bool)

	for i := range memories {
		m := &memories[i]
		if m.Category != "" {
			categories.add(m.Category)
		}
		if m.Location != "" && !locationSeen[m.Location] {
			locationSeen[m.Location] = true
			locations = append(locations, m.Location)
		}
		for _, name := range m.PeopleMentioned {
			if !peopleSeen[name] {
				peopleSeen[name] = true
				people = append(people, name)
			}
		}
		for _, tag := range m.Tags {
			tags.add(tag)
		}
	}

	analysis := ContentAnalysis{
		Categories:         make([]CategoryCount, 0, categories.len()),
		TotalCategories:    categories.len(),
		LocationsMentioned: locations,
		TotalLocations:     len(locations),
		PeopleMentioned:    people,
		TotalPeople:        len(people),
	}

	for _, p := range categories.pairs() {
		analysis.Categories = append(analysis.Categories, CategoryCount{Category: p.key, Count: p.count})
	}
	sort.SliceStable(analysis.Categories, func(i, j int) bool {
		return analysis.Categories[i].Count > analysis.Categories[j].Count
	})

	ranked := tags.pairs()
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].count > ranked[j].count
	})
	if len(ranked) > topTagLimit {
		ranked = ranked[:topTagLimit]
	}
	analysis.TopTags = make([]TagCount, 0, len(ranked))
	for _, p := range ranked {
		analysis.TopTags = append(analysis.TopTags, TagCount{Tag: p.key, Count: p.count})
	}
	return analysis
}
