package store

import (
	"context"
	"fmt"
	"time"

	"github.com/keepsake-io/keepsake/internal/record"
)

// CreateElder inserts a new elder profile and returns its id.
func (s *Store) CreateElder(ctx context.Context, e *record.ElderProfile) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO elders (name, date_of_birth, hometown, bio)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		e.Name, e.DateOfBirth, nullable(e.Hometown), nullable(e.Bio),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create elder: %w", err)
	}
	return id, nil
}

// GetElder fetches one elder by id. Soft-deleted rows are invisible.
func (s *Store) GetElder(ctx context.Context, id int64) (*record.ElderProfile, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, date_of_birth, COALESCE(hometown, ''), COALESCE(bio, ''),
		       created_at, updated_at
		FROM elders
		WHERE id = $1 AND deleted_at IS NULL`, id)

	var e record.ElderProfile
	err := row.Scan(&e.ID, &e.Name, &e.DateOfBirth, &e.Hometown, &e.Bio, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get elder: %w", err)
	}
	return &e, nil
}

// ListElders returns all live elder profiles, newest first.
func (s *Store) ListElders(ctx context.Context) ([]record.ElderProfile, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, date_of_birth, COALESCE(hometown, ''), COALESCE(bio, ''),
		       created_at, updated_at
		FROM elders
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list elders: %w", err)
	}
	defer rows.Close()

	var elders []record.ElderProfile
	for rows.Next() {
		var e record.ElderProfile
		if err := rows.Scan(&e.ID, &e.Name, &e.DateOfBirth, &e.Hometown, &e.Bio, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan elder: %w", err)
		}
		elders = append(elders, e)
	}
	return elders, rows.Err()
}

// UpdateElder rewrites the mutable fields of an elder profile.
func (s *Store) UpdateElder(ctx context.Context, e *record.ElderProfile) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE elders
		SET name = $2, date_of_birth = $3, hometown = $4, bio = $5, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`,
		e.ID, e.Name, e.DateOfBirth, nullable(e.Hometown), nullable(e.Bio))
	if err != nil {
		return fmt.Errorf("update elder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteElder soft-deletes an elder and all of their memories.
func (s *Store) DeleteElder(ctx context.Context, id int64) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete elder: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	tag, err := tx.Exec(ctx, `
		UPDATE elders SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, now)
	if err != nil {
		return fmt.Errorf("delete elder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	if _, err := tx.Exec(ctx, `
		UPDATE memories SET deleted_at = $2 WHERE elder_id = $1 AND deleted_at IS NULL`, id, now); err != nil {
		return fmt.Errorf("delete elder memories: %w", err)
	}
	return tx.Commit(ctx)
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
