package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Run is one finished game of a mode.
type Run struct {
	ID        int64
	Mode      string
	Score     int
	Level     int    // Level reached, 1-indexed
	Boards    int    // Boards completed during the run
	Won       bool   // The run ended by clearing the last level
	Reason    string // Why the run ended when it was lost
	CreatedAt time.Time
}

// ModeStats aggregates the runs of one mode.
type ModeStats struct {
	Mode        string
	Runs        int
	Wins        int
	BestScore   int
	AvgScore    float64
	BestLevel   int
	TotalBoards int
	LastPlayed  time.Time
}

const runColumns = "id, mode, score, level, boards, won, reason, created_at"

// Ties on score go to the run that piped more boards, then to the older run.
const runOrder = "ORDER BY score DESC, boards DESC, id ASC"

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.Mode == "" {
		return 0, fmt.Errorf("storage: cannot save run: mode is empty")
	}

	result, err := s.db.Exec(
		"INSERT INTO runs (mode, score, level, boards, won, reason) VALUES (?, ?, ?, ?, ?, ?)",
		r.Mode, r.Score, r.Level, r.Boards, r.Won, r.Reason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns returns the best limit runs of a mode. A non-positive limit means 10.
func (s *Store) TopRuns(mode string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		"SELECT "+runColumns+" FROM runs WHERE mode = ? "+runOrder+" LIMIT ?",
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// AllRuns returns every run of a mode, best first.
func (s *Store) AllRuns(mode string) ([]Run, error) {
	rows, err := s.db.Query("SELECT "+runColumns+" FROM runs WHERE mode = ? "+runOrder, mode)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Mode, &r.Score, &r.Level, &r.Boards, &r.Won, &r.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// BestScore returns the highest score of a mode, 0 when it was never played.
func (s *Store) BestScore(mode string) (int, error) {
	var best int
	err := s.db.QueryRow("SELECT COALESCE(MAX(score), 0) FROM runs WHERE mode = ?", mode).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return best, nil
}

// ClearRuns deletes every run of a mode.
func (s *Store) ClearRuns(mode string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE mode = ?", mode); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

const statsColumns = `COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
	COALESCE(MAX(level), 0), COALESCE(SUM(boards), 0), MAX(created_at)`

// Stats aggregates the runs of a mode. A mode without runs yields zero stats.
func (s *Store) Stats(mode string) (*ModeStats, error) {
	st := &ModeStats{Mode: mode}
	var lastPlayed any
	err := s.db.QueryRow("SELECT "+statsColumns+" FROM runs WHERE mode = ?", mode).Scan(
		&st.Runs, &st.Wins, &st.BestScore, &st.AvgScore, &st.BestLevel, &st.TotalBoards, &lastPlayed,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	st.LastPlayed = parseTime(lastPlayed)
	return st, nil
}

// AllStats aggregates the runs of every mode that has been played.
func (s *Store) AllStats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query("SELECT mode, " + statsColumns + " FROM runs GROUP BY mode")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	all := make(map[string]*ModeStats)
	for rows.Next() {
		var st ModeStats
		var lastPlayed any
		if err := rows.Scan(&st.Mode, &st.Runs, &st.Wins, &st.BestScore, &st.AvgScore,
			&st.BestLevel, &st.TotalBoards, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		all[st.Mode] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return all, nil
}
