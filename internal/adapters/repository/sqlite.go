package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite driver
	"github.com/perceptlab/syntrial/internal/domain/model"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore persists batches to a SQLite database. SQLite supports one
// writer at a time, so the connection pool is pinned to a single connection
// to avoid SQLITE_BUSY churn.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite creates or opens the database at path and applies pragmas and
// the schema. Safe to call repeatedly on the same file.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// SaveBatch inserts the batch and its responses in one transaction.
// ON CONFLICT DO NOTHING keeps duplicate batch ids idempotent.
func (s *SQLiteStore) SaveBatch(ctx context.Context, batch model.Batch, summary model.BatchSummary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save batch: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.ExecContext(ctx, `
		INSERT INTO batches
		(batch_id, session_id, participant_id, test_type, trial_count, mean_reaction_ms, consistency, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(batch_id) DO NOTHING
	`,
		batch.BatchID,
		batch.SessionID,
		batch.ParticipantID,
		batch.TestType,
		summary.TrialCount,
		summary.MeanReactionMS,
		summary.Consistency,
		batch.CompletedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save batch: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Batch already stored; keep the first copy.
		return nil
	}

	for i, rec := range batch.Responses {
		var r, g, b any
		var hex any
		if rec.SelectedColor != nil {
			r, g, b = rec.SelectedColor.R, rec.SelectedColor.G, rec.SelectedColor.B
			hex = rec.SelectedColor.Hex
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO responses
			(batch_id, position, stimulus, r, g, b, hex, no_experience, reaction_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, batch.BatchID, i, rec.Stimulus, r, g, b, hex, rec.NoExperience, rec.ReactionTimeMS); err != nil {
			return fmt.Errorf("save response %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save batch: %w", err)
	}
	return nil
}

// Summaries returns the participant's summaries newest first.
func (s *SQLiteStore) Summaries(ctx context.Context, participantID string) ([]model.BatchSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT batch_id, test_type, trial_count, mean_reaction_ms, consistency, completed_at
		FROM batches
		WHERE participant_id = ?
		ORDER BY completed_at DESC, batch_id DESC
	`, participantID)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var out []model.BatchSummary
	for rows.Next() {
		var sm model.BatchSummary
		var completed string
		if err := rows.Scan(&sm.BatchID, &sm.TestType, &sm.TrialCount, &sm.MeanReactionMS, &sm.Consistency, &completed); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, completed); err == nil {
			sm.CompletedAt = ts
		}
		out = append(out, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

// Responses returns all stored responses for a participant and test type,
// in ingest order.
func (s *SQLiteStore) Responses(ctx context.Context, participantID, testType string) ([]model.ResponseRecord, error) {
	query := `
		SELECT r.stimulus, r.r, r.g, r.b, r.hex, r.no_experience, r.reaction_ms
		FROM responses r
		JOIN batches b ON b.batch_id = r.batch_id
		WHERE b.participant_id = ?`
	args := []any{participantID}
	if testType != "" {
		query += " AND b.test_type = ?"
		args = append(args, testType)
	}
	query += " ORDER BY b.completed_at ASC, r.batch_id ASC, r.position ASC"

	var known int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM batches WHERE participant_id = ?`, participantID).Scan(&known); err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	if known == 0 {
		return nil, ErrNotFound
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	var out []model.ResponseRecord
	for rows.Next() {
		var rec model.ResponseRecord
		var r, g, b sql.NullInt64
		var hex sql.NullString
		if err := rows.Scan(&rec.Stimulus, &r, &g, &b, &hex, &rec.NoExperience, &rec.ReactionTimeMS); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		if r.Valid && g.Valid && b.Valid {
			rec.SelectedColor = &model.Color{
				R:   uint8(r.Int64),
				G:   uint8(g.Int64),
				B:   uint8(b.Int64),
				Hex: hex.String,
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	return out, nil
}

// BatchCount returns the number of stored batches.
func (s *SQLiteStore) BatchCount(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM batches`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// ParticipantCount returns the number of distinct participants.
func (s *SQLiteStore) ParticipantCount(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT participant_id) FROM batches`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
