package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/ejaan/pkg/ejaan/internalerr"
	"github.com/cognicore/ejaan/pkg/ejaan/report"
	"github.com/cognicore/ejaan/pkg/ejaan/store"
)

// Config names the dictionary table. The defaults mirror the KBBI word table
// (`kbbi`, one `kata` column per word).
type Config struct {
	Table  string
	Column string
}

// DefaultConfig returns the default table layout.
func DefaultConfig() Config {
	return Config{Table: "kbbi", Column: "kata"}
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db  *sql.DB
	cfg Config
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
// An optional Config can be passed to point at an existing word table;
// if omitted, DefaultConfig() is used.
func OpenSQLite(ctx context.Context, path string, cfg ...Config) (store.Store, error) {
	c := DefaultConfig()
	if len(cfg) > 0 {
		if cfg[0].Table != "" {
			c.Table = cfg[0].Table
		}
		if cfg[0].Column != "" {
			c.Column = cfg[0].Column
		}
	}
	if !identRe.MatchString(c.Table) || !identRe.MatchString(c.Column) {
		return nil, fmt.Errorf("%w: table %q column %q", internalerr.ErrInvalidConfig, c.Table, c.Column)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db, c); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db, cfg: c}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB, c Config) error {
	schema := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %[1]s (
	%[2]s TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	source TEXT,
	created_at TEXT NOT NULL,
	total INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS report_entries (
	report_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	word TEXT NOT NULL,
	suggestions TEXT,
	count INTEGER NOT NULL DEFAULT 1,
	PRIMARY KEY(report_id, position),
	FOREIGN KEY(report_id) REFERENCES reports(id) ON DELETE CASCADE
);
`, c.Table, c.Column)

	_, err := db.ExecContext(ctx, schema)
	return err
}

// Words returns the dictionary in insertion order.
func (s *sqliteStore) Words(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY rowid`, s.cfg.Column, s.cfg.Table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w sql.NullString
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		if w.Valid && w.String != "" {
			words = append(words, w.String)
		}
	}
	return words, rows.Err()
}

// AddWords inserts words (lowercased, trimmed) and returns how many were new.
func (s *sqliteStore) AddWords(ctx context.Context, words []string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		fmt.Sprintf(`INSERT OR IGNORE INTO %s (%s) VALUES (?)`, s.cfg.Table, s.cfg.Column))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	added := 0
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, w)
		if err != nil {
			return 0, err
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return added, nil
}

// RemoveWord deletes a word from the dictionary table.
func (s *sqliteStore) RemoveWord(ctx context.Context, word string) error {
	word = strings.ToLower(strings.TrimSpace(word))
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, s.cfg.Table, s.cfg.Column), word)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("word %q: %w", word, internalerr.ErrNotFound)
	}
	return nil
}

// CountWords returns the dictionary size.
func (s *sqliteStore) CountWords(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.cfg.Table)).Scan(&n)
	return n, err
}

// SaveReport inserts or replaces a report and its entries.
func (s *sqliteStore) SaveReport(ctx context.Context, r report.Report) error {
	if r.ID == "" {
		return fmt.Errorf("report without id: %w", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO reports (id, source, created_at, total)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	source=excluded.source,
	created_at=excluded.created_at,
	total=excluded.total;
`
	if _, err := tx.ExecContext(ctx, stmt,
		r.ID, r.Source, r.CreatedAt.UTC().Format(time.RFC3339Nano), r.Total); err != nil {
		return err
	}

	if err := replaceEntries(ctx, tx, r.ID, r.Entries); err != nil {
		return err
	}

	return tx.Commit()
}

func replaceEntries(ctx context.Context, tx *sql.Tx, reportID string, entries []report.Entry) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM report_entries WHERE report_id=?`, reportID); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO report_entries (report_id, position, word, suggestions, count) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		sugg := e.Suggestions
		if sugg == nil {
			sugg = []string{}
		}
		data, err := json.Marshal(sugg)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, reportID, i, e.Word, string(data), e.Count); err != nil {
			return err
		}
	}
	return nil
}

// GetReport loads a saved report.
func (s *sqliteStore) GetReport(ctx context.Context, id string) (report.Report, error) {
	var (
		r       report.Report
		source  sql.NullString
		created string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, created_at, total FROM reports WHERE id = ?`, id).
		Scan(&r.ID, &source, &created, &r.Total)
	if errors.Is(err, sql.ErrNoRows) {
		return report.Report{}, fmt.Errorf("report %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return report.Report{}, err
	}
	r.Source = source.String
	if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
		r.CreatedAt = t
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT word, suggestions, count FROM report_entries WHERE report_id = ? ORDER BY position`, id)
	if err != nil {
		return report.Report{}, err
	}
	defer rows.Close()

	r.Entries = []report.Entry{}
	for rows.Next() {
		var (
			e    report.Entry
			sugg sql.NullString
		)
		if err := rows.Scan(&e.Word, &sugg, &e.Count); err != nil {
			return report.Report{}, err
		}
		e.Suggestions = []string{}
		if sugg.Valid && sugg.String != "" {
			if err := json.Unmarshal([]byte(sugg.String), &e.Suggestions); err != nil {
				return report.Report{}, fmt.Errorf("decode suggestions for %q: %w", e.Word, err)
			}
		}
		r.Entries = append(r.Entries, e)
	}
	return r, rows.Err()
}
