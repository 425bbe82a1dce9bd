// Package search filters a memory snapshot with free text, field equality
// and date-range criteria, and reports facet counts for further refinement.
// Facets are computed over the elder-scoped population before any other
// filter, so the UI can always show what is available to narrow by.
package search

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/keepsake-io/keepsake/internal/record"
)

var (
	// ErrQueryTooShort is returned when the free-text query (or the
	// suggestion prefix) is under its contractual minimum length.
	ErrQueryTooShort = errors.New("search query too short")
	// ErrInvalidDateRange is returned for a malformed date boundary.
	ErrInvalidDateRange = errors.New("invalid date range")
)

// Order selects the stable ordering applied before pagination.
type Order string

const (
	OrderRecent    Order = "recent" // created_at descending (default)
	OrderOldest    Order = "oldest" // created_at ascending
	OrderEventDate Order = "event_date"
)

const (
	defaultPageSize  = 20
	maxPageSize      = 100
	minPrefixLength  = 2
	defaultSuggested = 10
	maxSuggested     = 20
)

// Params carries the search criteria. Zero values mean "no filter";
// ElderID 0 searches across all elders.
type Params struct {
	Query         string
	ElderID       int64
	Category      string
	Era           string
	Decade        string
	EmotionalTone string
	Location      string
	DateFrom      string // inclusive, "YYYY-MM-DD"
	DateTo        string // inclusive, "YYYY-MM-DD"
	Page          int
	PageSize      int
	Sort          Order
}

// Result is one matched record, trimmed for listing.
type Result struct {
	ID            int64     `json:"id"`
	ElderID       int64     `json:"elder_id"`
	Title         string    `json:"title,omitempty"`
	Summary       string    `json:"summary,omitempty"`
	Category      string    `json:"category,omitempty"`
	Era           string    `json:"era,omitempty"`
	Decade        string    `json:"decade,omitempty"`
	EmotionalTone string    `json:"emotional_tone,omitempty"`
	Location      string    `json:"location,omitempty"`
	DateOfEvent   string    `json:"date_of_event,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// FacetValue is one value of a facet with its occurrence count.
type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Facets breaks the elder-scoped population down by categorical fields.
type Facets struct {
	Categories     []FacetValue `json:"categories"`
	Eras           []FacetValue `json:"eras"`
	Decades        []FacetValue `json:"decades"`
	EmotionalTones []FacetValue `json:"emotional_tones"`
}

// Response is the full search result page.
type Response struct {
	Query      string   `json:"query"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
	Results    []Result `json:"results"`
	Facets     Facets   `json:"facets"`
}

// Search applies the filters in p to the snapshot and paginates the
// matches. The total counts the fully filtered set; facets deliberately
// ignore everything but the elder filter.
func Search(memories []record.MemoryRecord, p Params) (*Response, error) {
	query := strings.TrimSpace(p.Query)
	if query == "" {
		return nil, ErrQueryTooShort
	}

	var dateFrom, dateTo *time.Time
	var err error
	if dateFrom, err = parseBound(p.DateFrom); err != nil {
		return nil, err
	}
	if dateTo, err = parseBound(p.DateTo); err != nil {
		return nil, err
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	pageSize := p.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	scoped := make([]record.MemoryRecord, 0, len(memories))
	for i := range memories {
		if p.ElderID == 0 || memories[i].ElderID == p.ElderID {
			scoped = append(scoped, memories[i])
		}
	}

	needle := strings.ToLower(query)
	locNeedle := strings.ToLower(p.Location)
	matched := make([]record.MemoryRecord, 0, len(scoped))
	for i := range scoped {
		m := &scoped[i]
		if !matchesText(m, needle) {
			continue
		}
		if p.Category != "" && m.Category != p.Category {
			continue
		}
		if p.Era != "" && m.Era != p.Era {
			continue
		}
		if p.Decade != "" && m.Decade != p.Decade {
			continue
		}
		if p.EmotionalTone != "" && m.EmotionalTone != p.EmotionalTone {
			continue
		}
		if locNeedle != "" && !strings.Contains(strings.ToLower(m.Location), locNeedle) {
			continue
		}
		if (dateFrom != nil || dateTo != nil) && m.DateOfEvent == nil {
			continue
		}
		if dateFrom != nil && m.DateOfEvent.Before(*dateFrom) {
			continue
		}
		if dateTo != nil && m.DateOfEvent.After(*dateTo) {
			continue
		}
		matched = append(matched, *m)
	}

	sortResults(matched, p.Sort)

	total := len(matched)
	resp := &Response{
		Query:      query,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
		Results:    []Result{},
		Facets:     computeFacets(scoped),
	}

	offset := (page - 1) * pageSize
	if offset < total {
		end := offset + pageSize
		if end > total {
			end = total
		}
		for i := offset; i < end; i++ {
			resp.Results = append(resp.Results, toResult(&matched[i]))
		}
	}
	return resp, nil
}

// Suggest returns up to limit distinct titles starting with prefix
// (case-insensitive), scoped to one elder when elderID is non-zero. The
// limit clamps to [1, 20].
func Suggest(memories []record.MemoryRecord, prefix string, elderID int64, limit int) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if len(prefix) < minPrefixLength {
		return nil, fmt.Errorf("%w: prefix needs at least %d characters", ErrQueryTooShort, minPrefixLength)
	}
	if limit < 1 {
		limit = defaultSuggested
	}
	if limit > maxSuggested {
		limit = maxSuggested
	}

	needle := strings.ToLower(prefix)
	seen := make(map[string]bool)
	var suggestions []string
	for i := range memories {
		m := &memories[i]
		if elderID != 0 && m.ElderID != elderID {
			continue
		}
		if m.Title == "" || !strings.HasPrefix(strings.ToLower(m.Title), needle) {
			continue
		}
		if seen[m.Title] {
			continue
		}
		seen[m.Title] = true
		suggestions = append(suggestions, m.Title)
		if len(suggestions) == limit {
			break
		}
	}
	return suggestions, nil
}

func parseBound(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDateRange, value)
	}
	return &t, nil
}

func matchesText(m *record.MemoryRecord, needle string) bool {
	return strings.Contains(strings.ToLower(m.Title), needle) ||
		strings.Contains(strings.ToLower(m.Transcription), needle) ||
		strings.Contains(strings.ToLower(m.Summary), needle)
}

func sortResults(matched []record.MemoryRecord, order Order) {
	switch order {
	case OrderOldest:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		})
	case OrderEventDate:
		// Dated records ascending, undated ones after them.
		sort.SliceStable(matched, func(i, j int) bool {
			di, dj := matched[i].DateOfEvent, matched[j].DateOfEvent
			switch {
			case di == nil:
				return false
			case dj == nil:
				return true
			default:
				return di.Before(*dj)
			}
		})
	default: // OrderRecent
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
	}
}

func toResult(m *record.MemoryRecord) Result {
	r := Result{
		ID:            m.ID,
		ElderID:       m.ElderID,
		Title:         m.Title,
		Summary:       m.Summary,
		Category:      m.Category,
		Era:           m.Era,
		Decade:        m.Decade,
		EmotionalTone: m.EmotionalTone,
		Location:      m.Location,
		CreatedAt:     m.CreatedAt,
	}
	if m.DateOfEvent != nil {
		r.DateOfEvent = m.DateOfEvent.Format("2006-01-02")
	}
	return r
}
