package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Zuo-Peng/cuedit/internal/cue"
	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS documents (
    name       TEXT PRIMARY KEY,
    created_at TEXT NOT NULL DEFAULT '',
    updated_at TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS cues (
    doc_name TEXT NOT NULL,
    position INTEGER NOT NULL,
    time     REAL NOT NULL,
    text     TEXT NOT NULL,
    PRIMARY KEY (doc_name, position)
);

CREATE VIRTUAL TABLE IF NOT EXISTS cues_fts USING fts5(
    text,
    content=cues,
    content_rowid=rowid,
    tokenize='unicode61'
);

-- triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS cues_ai AFTER INSERT ON cues BEGIN
    INSERT INTO cues_fts(rowid, text) VALUES (new.rowid, new.text);
END;

CREATE TRIGGER IF NOT EXISTS cues_ad AFTER DELETE ON cues BEGIN
    INSERT INTO cues_fts(cues_fts, rowid, text) VALUES('delete', old.rowid, old.text);
END;

CREATE TRIGGER IF NOT EXISTS cues_au AFTER UPDATE ON cues BEGIN
    INSERT INTO cues_fts(cues_fts, rowid, text) VALUES('delete', old.rowid, old.text);
    INSERT INTO cues_fts(rowid, text) VALUES (new.rowid, new.text);
END;

CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);
`

// schemaVersion is recorded in meta; bump it when the tables change shape.
const schemaVersion = "1"

const timeLayout = "2006-01-02T15:04:05Z"

type DB struct {
	db  *sql.DB
	now func() time.Time
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	if _, err := db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("write schema version: %w", err)
	}

	return &DB{db: db, now: time.Now}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

// DocumentRow is the stored metadata of one document.
type DocumentRow struct {
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	CueCount  int
}

// SaveDocument replaces the cues of name with rows, creating it if needed.
func (d *DB) SaveDocument(name string, rows []cue.Row) error {
	now := d.now().UTC().Format(timeLayout)

	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO documents (name, created_at, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET updated_at = excluded.updated_at`,
		name, now, now,
	)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM cues WHERE doc_name = ?", name); err != nil {
		return fmt.Errorf("clear cues: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO cues (doc_name, position, time, text) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range rows {
		if _, err := stmt.Exec(name, i, r.Time, r.Text); err != nil {
			return fmt.Errorf("insert cue %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// LoadDocument returns the cues of name in stored order.
// The boolean is false when no such document exists.
func (d *DB) LoadDocument(name string) ([]cue.Row, bool, error) {
	var exists int
	err := d.db.QueryRow("SELECT 1 FROM documents WHERE name = ?", name).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	rows, err := d.db.Query("SELECT time, text FROM cues WHERE doc_name = ? ORDER BY position", name)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var out []cue.Row
	for rows.Next() {
		var r cue.Row
		if err := rows.Scan(&r.Time, &r.Text); err != nil {
			return nil, false, err
		}
		out = append(out, r)
	}
	return out, true, rows.Err()
}

func (d *DB) ListDocuments() ([]DocumentRow, error) {
	rows, err := d.db.Query(`
		SELECT d.name, d.created_at, d.updated_at, COUNT(c.position)
		FROM documents d
		LEFT JOIN cues c ON c.doc_name = d.name
		GROUP BY d.name
		ORDER BY d.updated_at DESC, d.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []DocumentRow
	for rows.Next() {
		var doc DocumentRow
		var created, updated string
		if err := rows.Scan(&doc.Name, &created, &updated, &doc.CueCount); err != nil {
			return nil, err
		}
		if doc.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("document %s: created_at: %w", doc.Name, err)
		}
		if doc.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
			return nil, fmt.Errorf("document %s: updated_at: %w", doc.Name, err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// DeleteDocument removes name and its cues. It reports whether anything was deleted.
func (d *DB) DeleteDocument(name string) (bool, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cues WHERE doc_name = ?", name); err != nil {
		return false, err
	}
	res, err := tx.Exec("DELETE FROM documents WHERE name = ?", name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, tx.Commit()
}

func (d *DB) DocumentCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&n)
	return n, err
}

func (d *DB) CueCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM cues").Scan(&n)
	return n, err
}

// FTSCount returns the number of rows in the full-text index.
func (d *DB) FTSCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM cues_fts").Scan(&n)
	return n, err
}
