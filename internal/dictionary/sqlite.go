package dictionary

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/blake2b"
)

// Migration is one step of the word store schema.
type Migration struct {
	Version     int
	Description string
	Up          string
	Down        string
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema with words table",
		Up: `
CREATE TABLE IF NOT EXISTS words (
    bucket      TEXT NOT NULL,
    ordinal     INTEGER NOT NULL,
    word        TEXT NOT NULL,
    PRIMARY KEY (bucket, ordinal)
);
`,
		Down: `DROP TABLE IF EXISTS words;`,
	},
	{
		Version:     2,
		Description: "Add imports table recording word list provenance",
		Up: `
CREATE TABLE IF NOT EXISTS imports (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    imported_at INTEGER NOT NULL,
    source      TEXT NOT NULL,
    word_count  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_words_word ON words(word);
`,
		Down: `
DROP INDEX IF EXISTS idx_words_word;
DROP TABLE IF EXISTS imports;
`,
	},
	{
		Version:     3,
		Description: "Add content digest to imports",
		Up:          `ALTER TABLE imports ADD COLUMN digest TEXT NOT NULL DEFAULT '';`,
		Down:        `ALTER TABLE imports DROP COLUMN digest;`,
	},
}

// Digest returns a hex BLAKE2b-256 digest of the word list. Two indexes
// with the same buckets in the same order share a digest.
func Digest(idx *Index) string {
	h, _ := blake2b.New256(nil)
	for _, key := range idx.Keys() {
		h.Write([]byte(key))
		h.Write([]byte{0})
		for _, w := range idx.Bucket(key) {
			h.Write([]byte(w))
			h.Write([]byte{0})
		}
		h.Write([]byte{1})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// SQLiteStore persists a word list in SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the word store at path and applies pending
// migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := MigrateDB(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Replace swaps the stored word list for idx in one transaction.
func (s *SQLiteStore) Replace(idx *Index, source string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM words`); err != nil {
		return fmt.Errorf("clear words: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO words (bucket, ordinal, word) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, key := range idx.Keys() {
		for i, w := range idx.Bucket(key) {
			if _, err := stmt.Exec(key, i, w); err != nil {
				return fmt.Errorf("insert word %q: %w", w, err)
			}
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO imports (imported_at, source, word_count, digest) VALUES (?, ?, ?, ?)`,
		time.Now().UnixNano(), source, idx.Len(), Digest(idx),
	); err != nil {
		return fmt.Errorf("record import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// Load reads the stored word list into an Index.
func (s *SQLiteStore) Load() (*Index, error) {
	rows, err := s.db.Query(`SELECT bucket, word FROM words ORDER BY bucket, ordinal`)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	list := make(WordList)
	for rows.Next() {
		var bucket, word string
		if err := rows.Scan(&bucket, &word); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		list[bucket] = append(list[bucket], word)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}
	return NewIndex(list)
}

// Import is one recorded word list import.
type Import struct {
	ImportedAt time.Time
	Source     string
	WordCount  int
	Digest     string
}

// Imports returns the import history, newest first.
func (s *SQLiteStore) Imports() ([]Import, error) {
	rows, err := s.db.Query(`SELECT imported_at, source, word_count, digest FROM imports ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query imports: %w", err)
	}
	defer rows.Close()

	var out []Import
	for rows.Next() {
		var im Import
		var at int64
		if err := rows.Scan(&at, &im.Source, &im.WordCount, &im.Digest); err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		im.ImportedAt = time.Unix(0, at)
		out = append(out, im)
	}
	return out, rows.Err()
}

// MigrateDB applies all pending migrations to db.
func MigrateDB(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version     INTEGER PRIMARY KEY,
			applied_at  INTEGER NOT NULL,
			description TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	var current int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("get current version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin transaction for migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(m.Up); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Description, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, applied_at, description) VALUES (?, ?, ?)",
			m.Version, time.Now().UnixNano(), m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}
	return nil
}

// SchemaVersion returns the highest applied migration.
func (s *SQLiteStore) SchemaVersion() (int, error) {
	var v int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v); err != nil {
		return 0, fmt.Errorf("get schema version: %w", err)
	}
	return v, nil
}
