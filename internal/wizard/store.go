// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wizard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/topic-wizard/pkg/types"
)

// ErrNotFound is returned when a session id has no row.
var ErrNotFound = errors.New("wizard session not found")

// Session is one user's progress through the wizard flow. Selection
// indices are -1 until a choice is made.
type Session struct {
	ID            string    `json:"id"`
	Step          Step      `json:"step"`
	Topic         string    `json:"topic"`
	SelectedPaper int       `json:"selected_paper"`
	SelectedNiche int       `json:"selected_niche"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Progress returns the session's position in the flow as a percentage.
func (s Session) Progress() int {
	return Progress(s.Step)
}

// Store persists wizard sessions in an SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the session database at cfg.DBPath and
// creates the schema if it does not exist.
func NewStore(cfg types.WizardConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating session database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			step TEXT NOT NULL,
			topic TEXT NOT NULL DEFAULT '',
			selected_paper INTEGER NOT NULL DEFAULT -1,
			selected_niche INTEGER NOT NULL DEFAULT -1,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Create starts a new session at the first step.
func (s *Store) Create(ctx context.Context, topic string) (Session, error) {
	now := time.Now().UTC()
	session := Session{
		ID:            uuid.NewString(),
		Step:          StepTopicInput,
		Topic:         topic,
		SelectedPaper: -1,
		SelectedNiche: -1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, step, topic, selected_paper, selected_niche, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.ID, string(session.Step), session.Topic,
		session.SelectedPaper, session.SelectedNiche,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if err != nil {
		return Session{}, fmt.Errorf("inserting session: %w", err)
	}
	return session, nil
}

// Get loads a session by id.
func (s *Store) Get(ctx context.Context, id string) (Session, error) {
	var (
		session              Session
		step                 string
		createdAt, updatedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, step, topic, selected_paper, selected_niche, created_at, updated_at
		 FROM sessions WHERE id = ?`, id).
		Scan(&session.ID, &step, &session.Topic,
			&session.SelectedPaper, &session.SelectedNiche, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("loading session: %w", err)
	}

	session.Step = Step(step)
	if session.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return Session{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if session.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return Session{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return session, nil
}

// Update writes the session's mutable fields.
func (s *Store) Update(ctx context.Context, session Session) (Session, error) {
	if !Valid(session.Step) {
		return Session{}, fmt.Errorf("unknown wizard step %q", session.Step)
	}

	session.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET step = ?, topic = ?, selected_paper = ?, selected_niche = ?, updated_at = ?
		 WHERE id = ?`,
		string(session.Step), session.Topic,
		session.SelectedPaper, session.SelectedNiche,
		session.UpdatedAt.Format(time.RFC3339Nano), session.ID)
	if err != nil {
		return Session{}, fmt.Errorf("updating session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Session{}, ErrNotFound
	}
	return session, nil
}

// Advance moves the session one step forward and persists it.
func (s *Store) Advance(ctx context.Context, id string) (Session, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	next, err := Next(session.Step)
	if err != nil {
		return Session{}, err
	}
	session.Step = next
	return s.Update(ctx, session)
}

// Regress moves the session one step backward and persists it.
func (s *Store) Regress(ctx context.Context, id string) (Session, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	prev, err := Back(session.Step)
	if err != nil {
		return Session{}, err
	}
	session.Step = prev
	return s.Update(ctx, session)
}
