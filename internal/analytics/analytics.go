// Package analytics derives statistics and insights from a snapshot of
// memory records. Every function here is pure: it reads the supplied slice,
// performs no I/O, and returns a plain result. Callers fetch the snapshot
// (already scoped to one elder and excluding soft-deleted records) and may
// run several analyzers concurrently over it.
package analytics

import "math"

// keyCount is one bucket of a frequency table.
type keyCount struct {
	key   string
	count int
}

// orderedCounter counts string keys while remembering first-seen order, so
// ties in any later ranking resolve deterministically to input order.
type orderedCounter struct {
	counts map[string]int
	order  []string
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *orderedCounter) len() int {
	return len(c.order)
}

// pairs returns buckets in first-seen order.
func (c *orderedCounter) pairs() []keyCount {
	out := make([]keyCount, len(c.order))
	for i, k := range c.order {
		out[i] = keyCount{key: k, count: c.counts[k]}
	}
	return out
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
