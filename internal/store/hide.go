package store

import "fmt"

// HideStore records the commits the user has dismissed from the smartlog.
// Ids are stored as full 40-character hex strings.
type HideStore struct {
	db *DB
}

// NewHideStore creates a hide store backed by db.
func NewHideStore(db *DB) *HideStore {
	return &HideStore{db: db}
}

// HiddenOIDs returns the hex ids of every hidden commit.
func (s *HideStore) HiddenOIDs() (map[string]struct{}, error) {
	rows, err := s.db.sql.Query("SELECT oid FROM hidden_oids")
	if err != nil {
		return nil, fmt.Errorf("querying hidden commits: %w", err)
	}
	defer rows.Close()

	hidden := make(map[string]struct{})
	for rows.Next() {
		var oid string
		if err := rows.Scan(&oid); err != nil {
			return nil, fmt.Errorf("scanning hidden commit: %w", err)
		}
		hidden[oid] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading hidden commits: %w", err)
	}
	return hidden, nil
}

// Hide marks the given commit ids hidden. Already-hidden ids are ignored.
func (s *HideStore) Hide(oids []string) error {
	tx, err := s.db.sql.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, oid := range oids {
		if _, err := tx.Exec("INSERT OR IGNORE INTO hidden_oids (oid) VALUES (?)", oid); err != nil {
			return fmt.Errorf("hiding commit %s: %w", oid, err)
		}
	}
	return tx.Commit()
}

// Unhide removes ids from the hidden set, reporting how many were actually
// removed.
func (s *HideStore) Unhide(oids []string) (int, error) {
	tx, err := s.db.sql.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	removed := 0
	for _, oid := range oids {
		res, err := tx.Exec("DELETE FROM hidden_oids WHERE oid = ?", oid)
		if err != nil {
			return 0, fmt.Errorf("unhiding commit %s: %w", oid, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			removed += int(n)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return removed, nil
}
