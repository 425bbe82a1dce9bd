package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/keepsake-io/keepsake/internal/record"
)

const memoryColumns = `
	id, elder_id, COALESCE(title, ''), COALESCE(transcription, ''),
	COALESCE(summary, ''), COALESCE(audio_url, ''), duration_seconds,
	COALESCE(category, ''), COALESCE(era, ''), COALESCE(decade, ''),
	date_of_event, COALESCE(location, ''), people_mentioned, tags,
	COALESCE(emotional_tone, ''), COALESCE(sentiment, ''),
	transcription_confidence, audio_quality_score,
	play_count, share_count, created_at, updated_at`

// MemoryFilter narrows ListMemories. Zero values mean "no filter".
// Search matches title, transcription and summary case-insensitively.
type MemoryFilter struct {
	ElderID  int64
	Category string
	Era      string
	Search   string
	Page     int
	PageSize int
}

// CreateMemory inserts a memory record and returns its id.
func (s *Store) CreateMemory(ctx context.Context, m *record.MemoryRecord) (int64, error) {
	people, err := json.Marshal(m.PeopleMentioned)
	if err != nil {
		return 0, fmt.Errorf("marshal people: %w", err)
	}
	tags, err := json.Marshal(m.Tags)
	if err != nil {
		return 0, fmt.Errorf("marshal tags: %w", err)
	}

	var id int64
	err = s.db.QueryRow(ctx, `
		INSERT INTO memories (
			elder_id, title, transcription, summary, audio_url, duration_seconds,
			category, era, decade, date_of_event, location, people_mentioned,
			tags, emotional_tone, sentiment, transcription_confidence,
			audio_quality_score
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`,
		m.ElderID, nullable(m.Title), nullable(m.Transcription), nullable(m.Summary),
		nullable(m.AudioURL), m.DurationSeconds, nullable(m.Category), nullable(m.Era),
		nullable(m.Decade), m.DateOfEvent, nullable(m.Location), people, tags,
		nullable(m.EmotionalTone), nullable(m.Sentiment),
		m.TranscriptionConfidence, m.AudioQualityScore,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create memory: %w", err)
	}
	return id, nil
}

// GetMemory fetches one live memory and bumps its play count, so every
// retrieval registers as a listen.
func (s *Store) GetMemory(ctx context.Context, id int64) (*record.MemoryRecord, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE memories SET play_count = play_count + 1
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+memoryColumns, id)

	m, err := scanMemory(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get memory: %w", err)
	}
	return m, nil
}

// ListMemories returns a page of live memories matching the filter, newest
// first, together with the total match count.
func (s *Store) ListMemories(ctx context.Context, f MemoryFilter) ([]record.MemoryRecord, int, error) {
	where := []string{"deleted_at IS NULL"}
	var args []any
	if f.ElderID != 0 {
		args = append(args, f.ElderID)
		where = append(where, "elder_id = $"+strconv.Itoa(len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, "category = $"+strconv.Itoa(len(args)))
	}
	if f.Era != "" {
		args = append(args, f.Era)
		where = append(where, "era = $"+strconv.Itoa(len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := strconv.Itoa(len(args))
		where = append(where, "(title ILIKE $"+n+" OR transcription ILIKE $"+n+" OR summary ILIKE $"+n+")")
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM memories WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count memories: %w", err)
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(
		"SELECT %s FROM memories WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		memoryColumns, cond, len(args)-1, len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list memories: %w", err)
	}
	defer rows.Close()

	memories, err := collectMemories(rows)
	if err != nil {
		return nil, 0, err
	}
	return memories, total, nil
}

// ListByElder returns all live memories of one elder ordered by event date
// ascending, undated records last. This is the snapshot the analytics and
// timeline packages consume.
func (s *Store) ListByElder(ctx context.Context, elderID int64) ([]record.MemoryRecord, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+memoryColumns+`
		FROM memories
		WHERE elder_id = $1 AND deleted_at IS NULL
		ORDER BY date_of_event ASC NULLS LAST, id ASC`, elderID)
	if err != nil {
		return nil, fmt.Errorf("list elder memories: %w", err)
	}
	defer rows.Close()
	return collectMemories(rows)
}

// ListAll returns every live memory across all elders, for platform-wide
// statistics and cross-elder search.
func (s *Store) ListAll(ctx context.Context) ([]record.MemoryRecord, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+memoryColumns+`
		FROM memories
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list all memories: %w", err)
	}
	defer rows.Close()
	return collectMemories(rows)
}

// UpdateMemory rewrites the mutable fields of a memory record.
func (s *Store) UpdateMemory(ctx context.Context, m *record.MemoryRecord) error {
	people, err := json.Marshal(m.PeopleMentioned)
	if err != nil {
		return fmt.Errorf("marshal people: %w", err)
	}
	tags, err := json.Marshal(m.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE memories SET
			title = $2, transcription = $3, summary = $4, audio_url = $5,
			duration_seconds = $6, category = $7, era = $8, decade = $9,
			date_of_event = $10, location = $11, people_mentioned = $12,
			tags = $13, emotional_tone = $14, sentiment = $15,
			transcription_confidence = $16, audio_quality_score = $17,
			updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`,
		m.ID, nullable(m.Title), nullable(m.Transcription), nullable(m.Summary),
		nullable(m.AudioURL), m.DurationSeconds, nullable(m.Category), nullable(m.Era),
		nullable(m.Decade), m.DateOfEvent, nullable(m.Location), people, tags,
		nullable(m.EmotionalTone), nullable(m.Sentiment),
		m.TranscriptionConfidence, m.AudioQualityScore)
	if err != nil {
		return fmt.Errorf("update memory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMemory soft-deletes a memory record.
func (s *Store) DeleteMemory(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE memories SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete memory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordShare bumps the share count of a memory and returns the new value.
func (s *Store) RecordShare(ctx context.Context, id int64) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `
		UPDATE memories SET share_count = share_count + 1
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING share_count`, id).Scan(&count)
	if err != nil {
		if isNoRows(err) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("record share: %w", err)
	}
	return count, nil
}

func scanMemory(row pgx.Row) (*record.MemoryRecord, error) {
	var m record.MemoryRecord
	var people, tags []byte
	err := row.Scan(
		&m.ID, &m.ElderID, &m.Title, &m.Transcription, &m.Summary, &m.AudioURL,
		&m.DurationSeconds, &m.Category, &m.Era, &m.Decade, &m.DateOfEvent,
		&m.Location, &people, &tags, &m.EmotionalTone, &m.Sentiment,
		&m.TranscriptionConfidence, &m.AudioQualityScore,
		&m.PlayCount, &m.ShareCount, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(people) > 0 {
		if err := json.Unmarshal(people, &m.PeopleMentioned); err != nil {
			return nil, fmt.Errorf("decode people_mentioned: %w", err)
		}
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &m.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	return &m, nil
}

func collectMemories(rows pgx.Rows) ([]record.MemoryRecord, error) {
	var memories []record.MemoryRecord
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan memory: %w", err)
		}
		memories = append(memories, *m)
	}
	return memories, rows.Err()
}
