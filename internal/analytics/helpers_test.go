package analytics

import (
	"time"

	"github.com/keepsake-io/keepsake/internal/record"
)

func date(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func conf(v float64) *float64 {
	return &v
}

func withDecade(decade string) record.MemoryRecord {
	return record.MemoryRecord{Decade: decade}
}

func withEvent(y, m, d int) record.MemoryRecord {
	return record.MemoryRecord{DateOfEvent: date(y, m, d)}
}
