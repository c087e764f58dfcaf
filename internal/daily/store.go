package daily

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const defaultLimit = 20

// Result is one completed puzzle.
type Result struct {
	SessionID string    `json:"sessionId"`
	PuzzleID  string    `json:"puzzleId"`
	Date      string    `json:"date"`
	Sentence  string    `json:"sentence"`
	ElapsedMs int64     `json:"elapsedMs"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists results in the puzzle_results table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// InsertResult records a completion. A session is recorded at most once;
// later completions of the same session are ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO puzzle_results(session_id, puzzle_id, date, sentence, elapsed_ms)
		VALUES(?,?,?,?,?)`, r.SessionID, r.PuzzleID, r.Date, r.Sentence, r.ElapsedMs,
	)
	return err
}

// Completed reports whether a session already has a recorded result.
func (s *Store) Completed(ctx context.Context, sessionID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM puzzle_results WHERE session_id=?", sessionID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Results returns the fastest completions for a date.
// A non-positive limit means the default of 20.
func (s *Store) Results(ctx context.Context, date string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, puzzle_id, date, sentence, elapsed_ms, created_at
		FROM puzzle_results
		WHERE date=?
		ORDER BY elapsed_ms ASC, created_at ASC
		LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var r Result
		var created string
		if err := rows.Scan(&r.SessionID, &r.PuzzleID, &r.Date, &r.Sentence, &r.ElapsedMs, &created); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", created)
		out = append(out, r)
	}
	return out, rows.Err()
}
