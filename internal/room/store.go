package room

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Store persists one durable record per room code: the full snapshot,
// last write wins.
type Store interface {
	Load(ctx context.Context, code string) (*Room, error)
	Save(ctx context.Context, room *Room) error
}

// SQLiteStore keeps room snapshots as JSONB rows keyed by code. The phase
// column is denormalized for operator queries; the document is the source
// of truth.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS rooms (
			code  TEXT PRIMARY KEY,
			phase TEXT NOT NULL,
			data  JSONB NOT NULL
		)`)
	if err != nil {
		return nil, fmt.Errorf("creating rooms table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, code string) (*Room, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM rooms WHERE code = ?`, code,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no snapshot for room %q", ErrNotFound, code)
	}
	if err != nil {
		return nil, err
	}

	var r Room
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return nil, fmt.Errorf("decoding snapshot for room %q: %w", code, err)
	}
	if r.Players == nil {
		r.Players = make(map[string]*Player)
	}
	return &r, nil
}

func (s *SQLiteStore) Save(ctx context.Context, room *Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO rooms (code, phase, data) VALUES (?, ?, jsonb(?))
		 ON CONFLICT(code) DO UPDATE SET phase = excluded.phase, data = excluded.data`,
		room.Code, string(room.Phase), string(data),
	)
	return err
}
