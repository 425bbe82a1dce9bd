// Package export renders an elder's memory collection as downloadable
// documents: a structured JSON archive, a flat CSV, and a Markdown life
// book grouped by decade.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/keepsake-io/keepsake/internal/record"
)

// Options narrows and shapes an export.
type Options struct {
	Category              string // "" exports all categories
	IncludeAudioURLs      bool
	IncludeTranscriptions bool
}

// jsonMemory is the archive shape of one memory. Null-able fields use
// pointers so omitted content serializes as null, matching archives
// produced by earlier versions of the platform.
type jsonMemory struct {
	ID              int64          `json:"id"`
	Title           string         `json:"title"`
	Transcription   *string        `json:"transcription"`
	Summary         string         `json:"summary"`
	Category        string         `json:"category"`
	Era             string         `json:"era"`
	Decade          string         `json:"decade"`
	Location        string         `json:"location"`
	DateOfEvent     *string        `json:"date_of_event"`
	PeopleMentioned record.NameSet `json:"people_mentioned"`
	Tags            record.TagList `json:"tags"`
	EmotionalTone   string         `json:"emotional_tone"`
	Sentiment       string         `json:"sentiment"`
	AudioURL        *string        `json:"audio_url"`
	DurationSeconds int            `json:"duration_seconds"`
	CreatedAt       string         `json:"created_at"`
}

type jsonElder struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	DateOfBirth *string `json:"date_of_birth"`
	Hometown    string  `json:"hometown"`
	Bio         string  `json:"bio"`
}

type jsonArchive struct {
	ExportID      string       `json:"export_id"`
	ExportDate    string       `json:"export_date"`
	Elder         jsonElder    `json:"elder"`
	TotalMemories int          `json:"total_memories"`
	Memories      []jsonMemory `json:"memories"`
}

// JSON renders the archive document. Memories come out newest first.
func JSON(elder *record.ElderProfile, memories []record.MemoryRecord, opts Options, now time.Time) ([]byte, error) {
	selected := filterByCategory(memories, opts.Category)
	sortByCreatedDesc(selected)

	archive := jsonArchive{
		ExportID:      uuid.NewString(),
		ExportDate:    now.Format(time.RFC3339),
		Elder:         toJSONElder(elder),
		TotalMemories: len(selected),
		Memories:      make([]jsonMemory, 0, len(selected)),
	}
	for i := range selected {
		archive.Memories = append(archive.Memories, toJSONMemory(&selected[i], opts))
	}

	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return data, nil
}

// CSV renders a flat spreadsheet of the collection, newest first.
func CSV(elder *record.ElderProfile, memories []record.MemoryRecord, opts Options) ([]byte, error) {
	selected := filterByCategory(memories, opts.Category)
	sortByCreatedDesc(selected)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"ID", "Title", "Summary", "Category", "Era", "Decade", "Location",
		"Date of Event", "Emotional Tone", "Duration (seconds)", "Created At",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for i := range selected {
		m := &selected[i]
		eventDate := ""
		if m.DateOfEvent != nil {
			eventDate = m.DateOfEvent.Format("2006-01-02")
		}
		row := []string{
			strconv.FormatInt(m.ID, 10), m.Title, m.Summary, m.Category, m.Era,
			m.Decade, m.Location, eventDate, m.EmotionalTone,
			strconv.Itoa(m.DurationSeconds), m.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Markdown renders a life book: a header about the elder followed by the
// memories in chronological order, grouped under decade headings.
func Markdown(elder *record.ElderProfile, memories []record.MemoryRecord, opts Options, now time.Time) []byte {
	selected := filterByCategory(memories, opts.Category)
	sortByEventAsc(selected)

	var b strings.Builder
	fmt.Fprintf(&b, "# Life Memories: %s\n\n", elder.Name)
	if elder.Bio != "" {
		fmt.Fprintf(&b, "## About\n\n%s\n\n", elder.Bio)
	}
	if elder.DateOfBirth != nil {
		fmt.Fprintf(&b, "**Born:** %s\n\n", elder.DateOfBirth.Format("January 2, 2006"))
	}
	if elder.Hometown != "" {
		fmt.Fprintf(&b, "**Hometown:** %s\n\n", elder.Hometown)
	}
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "## Memories (%d)\n\n", len(selected))

	currentDecade := ""
	for i := range selected {
		m := &selected[i]
		decade := m.Decade
		if decade == "" {
			decade = "Unknown Period"
		}
		if decade != currentDecade {
			fmt.Fprintf(&b, "\n### %s\n\n", decade)
			currentDecade = decade
		}

		title := m.Title
		if title == "" {
			title = "Untitled"
		}
		fmt.Fprintf(&b, "#### %s\n\n", title)

		if m.DateOfEvent != nil {
			fmt.Fprintf(&b, "*%s*", m.DateOfEvent.Format("January 2, 2006"))
		}
		if m.Location != "" {
			fmt.Fprintf(&b, " • *%s*", m.Location)
		}
		b.WriteString("\n\n")

		if m.Summary != "" {
			fmt.Fprintf(&b, "%s\n\n", m.Summary)
		}
		if opts.IncludeTranscriptions && m.Transcription != "" {
			fmt.Fprintf(&b, "> %s\n\n", m.Transcription)
		}
		if m.EmotionalTone != "" {
			fmt.Fprintf(&b, "**Emotional Tone:** %s\n\n", m.EmotionalTone)
		}
		if m.Category != "" {
			fmt.Fprintf(&b, "**Category:** %s\n\n", m.Category)
		}
		if len(m.PeopleMentioned) > 0 {
			fmt.Fprintf(&b, "**People Mentioned:** %s\n\n", strings.Join(m.PeopleMentioned, ", "))
		}
		b.WriteString("---\n\n")
	}

	fmt.Fprintf(&b, "\n*Exported on %s*\n", now.Format("January 2, 2006"))
	return []byte(b.String())
}

// AudioFile is one downloadable recording in a compilation manifest.
type AudioFile struct {
	ID              int64  `json:"id"`
	Title           string `json:"title,omitempty"`
	URL             string `json:"url"`
	DurationSeconds int    `json:"duration_seconds"`
	DateOfEvent     string `json:"date_of_event,omitempty"`
}

// AudioCompilation lists the audio recordings of a collection in
// chronological order with the total listening time.
type AudioCompilation struct {
	ElderID              int64       `json:"elder_id"`
	ElderName            string      `json:"elder_name"`
	TotalAudioFiles      int         `json:"total_audio_files"`
	TotalDurationSeconds int         `json:"total_duration_seconds"`
	AudioFiles           []AudioFile `json:"audio_files"`
}

// CompileAudio builds the audio manifest, skipping memories without a
// recording.
func CompileAudio(elder *record.ElderProfile, memories []record.MemoryRecord, category string) *AudioCompilation {
	selected := filterByCategory(memories, category)
	sortByEventAsc(selected)

	comp := &AudioCompilation{
		ElderID:    elder.ID,
		ElderName:  elder.Name,
		AudioFiles: []AudioFile{},
	}
	for i := range selected {
		m := &selected[i]
		if m.AudioURL == "" {
			continue
		}
		f := AudioFile{
			ID:              m.ID,
			Title:           m.Title,
			URL:             m.AudioURL,
			DurationSeconds: m.DurationSeconds,
		}
		if m.DateOfEvent != nil {
			f.DateOfEvent = m.DateOfEvent.Format("2006-01-02")
		}
		comp.AudioFiles = append(comp.AudioFiles, f)
		comp.TotalAudioFiles++
		comp.TotalDurationSeconds += m.DurationSeconds
	}
	return comp
}

// Filename builds the download name for an export, e.g.
// "memories_Ana_Horvat_20240601.json".
func Filename(elder *record.ElderProfile, format string, now time.Time) string {
	name := strings.ReplaceAll(elder.Name, " ", "_")
	return fmt.Sprintf("memories_%s_%s.%s", name, now.Format("20060102"), format)
}

func toJSONElder(e *record.ElderProfile) jsonElder {
	out := jsonElder{ID: e.ID, Name: e.Name, Hometown: e.Hometown, Bio: e.Bio}
	if e.DateOfBirth != nil {
		dob := e.DateOfBirth.Format("2006-01-02")
		out.DateOfBirth = &dob
	}
	return out
}

func toJSONMemory(m *record.MemoryRecord, opts Options) jsonMemory {
	out := jsonMemory{
		ID:              m.ID,
		Title:           m.Title,
		Summary:         m.Summary,
		Category:        m.Category,
		Era:             m.Era,
		Decade:          m.Decade,
		Location:        m.Location,
		PeopleMentioned: m.PeopleMentioned,
		Tags:            m.Tags,
		EmotionalTone:   m.EmotionalTone,
		Sentiment:       m.Sentiment,
		DurationSeconds: m.DurationSeconds,
		CreatedAt:       m.CreatedAt.Format(time.RFC3339),
	}
	if opts.IncludeTranscriptions {
		out.Transcription = &m.Transcription
	}
	if opts.IncludeAudioURLs {
		out.AudioURL = &m.AudioURL
	}
	if m.DateOfEvent != nil {
		d := m.DateOfEvent.Format("2006-01-02")
		out.DateOfEvent = &d
	}
	return out
}

func filterByCategory(memories []record.MemoryRecord, category string) []record.MemoryRecord {
	out := make([]record.MemoryRecord, 0, len(memories))
	for i := range memories {
		if category == "" || memories[i].Category == category {
			out = append(out, memories[i])
		}
	}
	return out
}

func sortByCreatedDesc(memories []record.MemoryRecord) {
	sort.SliceStable(memories, func(i, j int) bool {
		return memories[i].CreatedAt.After(memories[j].CreatedAt)
	})
}

func sortByEventAsc(memories []record.MemoryRecord) {
	sort.SliceStable(memories, func(i, j int) bool {
		di, dj := memories[i].DateOfEvent, memories[j].DateOfEvent
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return di.Before(*dj)
		}
	})
}
