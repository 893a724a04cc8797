package server

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/daliev/quizroom/internal/room"
)

var errNoHostSession = errors.New("no valid host session")

// Documents stored as JSONB in per-model tables.

type hostDoc struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

type hostSessionDoc struct {
	ID     string `json:"id"`
	HostID string `json:"hostId"`
	Email  string `json:"email"`
}

type scenarioDoc struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Rounds    []room.Round `json:"rounds"`
	CreatedAt string       `json:"createdAt"`
}

// HostStore keeps host accounts, their sessions, and the scenario library
// a host draws from when creating rooms.
type HostStore struct {
	db *sql.DB
}

func NewHostStore(ctx context.Context, db *sql.DB) (*HostStore, error) {
	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS hosts (
			id    TEXT PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			data  JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS host_sessions (
			id   TEXT PRIMARY KEY,
			data JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS scenarios (
			id    TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			data  JSONB NOT NULL
		)`,
	} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return nil, fmt.Errorf("creating table: %w", err)
		}
	}
	return &HostStore{db: db}, nil
}

func newID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func nowUTC() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

func (s *HostStore) CountHosts(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hosts`).Scan(&count)
	return count, err
}

func (s *HostStore) CreateHost(ctx context.Context, email, passwordHash string) error {
	h := hostDoc{ID: newID(), Email: email, PasswordHash: passwordHash}
	data, err := json.Marshal(h)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO hosts (id, email, data) VALUES (?, ?, jsonb(?))`,
		h.ID, h.Email, string(data),
	)
	return err
}

func (s *HostStore) HostByEmail(ctx context.Context, email string) (hostID, passwordHash string, err error) {
	var data string
	err = s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM hosts WHERE email = ?`, email,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", room.ErrNotFound
	}
	if err != nil {
		return "", "", err
	}
	var h hostDoc
	if err := json.Unmarshal([]byte(data), &h); err != nil {
		return "", "", err
	}
	return h.ID, h.PasswordHash, nil
}

func (s *HostStore) CreateSession(ctx context.Context, hostID, email string) (string, error) {
	doc := hostSessionDoc{ID: newID(), HostID: hostID, Email: email}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO host_sessions (id, data) VALUES (?, jsonb(?))`,
		doc.ID, string(data),
	)
	return doc.ID, err
}

func (s *HostStore) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM host_sessions WHERE id = ?`, sessionID)
	return err
}

func (s *HostStore) HostFromSession(ctx context.Context, sessionID string) (hostSession, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM host_sessions WHERE id = ?`, sessionID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return hostSession{}, errNoHostSession
	}
	if err != nil {
		return hostSession{}, err
	}
	var doc hostSessionDoc
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return hostSession{}, err
	}
	return hostSession{HostID: doc.HostID, Email: doc.Email}, nil
}

func (s *HostStore) ListScenarios(ctx context.Context) ([]ScenarioSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT json(data) FROM scenarios ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []ScenarioSummary{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var doc scenarioDoc
		if err := json.Unmarshal([]byte(data), &doc); err != nil {
			return nil, err
		}
		summaries = append(summaries, ScenarioSummary{
			ID:         doc.ID,
			Title:      doc.Title,
			RoundCount: len(doc.Rounds),
			CreatedAt:  doc.CreatedAt,
		})
	}
	return summaries, rows.Err()
}

func (s *HostStore) CreateScenario(ctx context.Context, req ScenarioRequest) (ScenarioDetail, error) {
	doc := scenarioDoc{
		ID:        newID(),
		Title:     req.Title,
		Rounds:    req.Rounds,
		CreatedAt: nowUTC(),
	}
	if err := s.putScenario(ctx, doc); err != nil {
		return ScenarioDetail{}, err
	}
	return detailFromDoc(doc), nil
}

func (s *HostStore) GetScenario(ctx context.Context, id string) (ScenarioDetail, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM scenarios WHERE id = ?`, id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return ScenarioDetail{}, room.ErrNotFound
	}
	if err != nil {
		return ScenarioDetail{}, err
	}
	var doc scenarioDoc
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return ScenarioDetail{}, err
	}
	return detailFromDoc(doc), nil
}

func (s *HostStore) UpdateScenario(ctx context.Context, id string, req ScenarioRequest) (ScenarioDetail, error) {
	existing, err := s.GetScenario(ctx, id)
	if err != nil {
		return ScenarioDetail{}, err
	}

	doc := scenarioDoc{
		ID:        id,
		Title:     req.Title,
		Rounds:    req.Rounds,
		CreatedAt: existing.CreatedAt,
	}
	if err := s.putScenario(ctx, doc); err != nil {
		return ScenarioDetail{}, err
	}
	return detailFromDoc(doc), nil
}

func (s *HostStore) DeleteScenario(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return room.ErrNotFound
	}
	return nil
}

func (s *HostStore) putScenario(ctx context.Context, doc scenarioDoc) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scenarios (id, title, data) VALUES (?, ?, jsonb(?))
		 ON CONFLICT(id) DO UPDATE SET title = excluded.title, data = excluded.data`,
		doc.ID, doc.Title, string(data),
	)
	return err
}

func detailFromDoc(doc scenarioDoc) ScenarioDetail {
	rounds := doc.Rounds
	if rounds == nil {
		rounds = []room.Round{}
	}
	return ScenarioDetail{
		ID:        doc.ID,
		Title:     doc.Title,
		Rounds:    rounds,
		CreatedAt: doc.CreatedAt,
	}
}
