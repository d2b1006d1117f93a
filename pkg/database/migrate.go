package database

import (
	"database/sql"
	"fmt"
)

// tracker_state is a single-key JSON slot; the tracker stores the whole
// progress overlay under one fixed key and replaces it on every persist.
const schema = `
CREATE TABLE IF NOT EXISTS tracker_state (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
