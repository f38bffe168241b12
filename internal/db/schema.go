package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS clothes (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL,
    images         TEXT NOT NULL DEFAULT '[]',
    category       TEXT NOT NULL, -- validated at the API layer; imports store unknown values as-is
    area           TEXT,
    season         TEXT NOT NULL DEFAULT '["all"]',
    occasion       TEXT NOT NULL DEFAULT '["home"]',
    color          TEXT NOT NULL DEFAULT '#FFFFFF',
    brand          TEXT,
    notes          TEXT,
    purchase_date  TEXT,
    price          REAL,
    wear_frequency INTEGER NOT NULL DEFAULT 3 CHECK (wear_frequency BETWEEN 1 AND 5),
    needs_wash     INTEGER NOT NULL DEFAULT 0,
    is_favorite    INTEGER NOT NULL DEFAULT 0,
    created_at     DATETIME NOT NULL,
    updated_at     DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_clothes_category ON clothes(category);
CREATE INDEX IF NOT EXISTS idx_clothes_color ON clothes(color);
CREATE INDEX IF NOT EXISTS idx_clothes_favorite ON clothes(is_favorite);
CREATE INDEX IF NOT EXISTS idx_clothes_wash ON clothes(needs_wash);
CREATE INDEX IF NOT EXISTS idx_clothes_created ON clothes(created_at);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
