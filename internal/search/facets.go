package search

import (
	"sort"

	"github.com/keepsake-io/keepsake/internal/record"
)

// facetCounter counts values in first-seen order.
type facetCounter struct {
	counts map[string]int
	order  []string
}

func newFacetCounter() *facetCounter {
	return &facetCounter{counts: make(map[string]int)}
}

func (c *facetCounter) add(value string) {
	if value == "" {
		return
	}
	if _, ok := c.counts[value]; !ok {
		c.order = append(c.order, value)
	}
	c.counts[value]++
}

func (c *facetCounter) values() []FacetValue {
	out := make([]FacetValue, 0, len(c.order))
	for _, v := range c.order {
		out = append(out, FacetValue{Value: v, Count: c.counts[v]})
	}
	return out
}

// computeFacets tallies the categorical fields of the elder-scoped
// population. Decades come back sorted by label; the rest keep first-seen
// order.
func computeFacets(scoped []record.MemoryRecord) Facets {
	categories := newFacetCounter()
	eras := newFacetCounter()
	decades := newFacetCounter()
	tones := newFacetCounter()

	for i := range scoped {
		m := &scoped[i]
		categories.add(m.Category)
		eras.add(m.Era)
		decades.add(m.Decade)
		tones.add(m.EmotionalTone)
	}

	decadeValues := decades.values()
	sort.Slice(decadeValues, func(i, j int) bool {
		return decadeValues[i].Value < decadeValues[j].Value
	})

	return Facets{
		Categories:     categories.values(),
		Eras:           eras.values(),
		Decades:        decadeValues,
		EmotionalTones: tones.values(),
	}
}
