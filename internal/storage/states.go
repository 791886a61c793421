package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// SaveState stores an opaque saved-game blob under key, replacing any previous one.
func (s *Store) SaveState(key string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO saved_states (key, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save state %q: %w", key, err)
	}
	return nil
}

// LoadState returns the blob saved under key. ok is false when nothing is saved.
func (s *Store) LoadState(key string) (data []byte, ok bool, err error) {
	err = s.db.QueryRow("SELECT data FROM saved_states WHERE key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: cannot load state %q: %w", key, err)
	}
	return data, true, nil
}

// DeleteState removes the blob saved under key. Deleting a missing key is not an error.
func (s *Store) DeleteState(key string) error {
	if _, err := s.db.Exec("DELETE FROM saved_states WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete state %q: %w", key, err)
	}
	return nil
}
