package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"orgair-hq/atlas/pkg/settings"
)

// ErrStoreClosed is returned by operations on a closed store.
var ErrStoreClosed = errors.New("history store closed")

// SQLiteStore persists validation records in a SQLite database. It uses a
// write-ahead log for concurrent reads and prepared statements on the hot
// paths. Suitable for single-instance deployments.
type SQLiteStore struct {
	db *sql.DB

	appendStmt *sql.Stmt
	pruneStmt  *sql.Stmt
}

// NewSQLiteStore opens (or creates) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		dbPath, (5 * time.Second).Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS validation_records (
		id TEXT PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		source TEXT NOT NULL,
		detail TEXT,
		fingerprint TEXT NOT NULL,
		valid INTEGER NOT NULL,
		app_env TEXT,
		errors TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_records_timestamp ON validation_records(timestamp);
	CREATE INDEX IF NOT EXISTS idx_records_source ON validation_records(source);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.appendStmt, err = s.db.Prepare(`
		INSERT INTO validation_records (id, timestamp, source, detail, fingerprint, valid, app_env, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare append: %w", err)
	}

	s.pruneStmt, err = s.db.Prepare(`
		DELETE FROM validation_records WHERE timestamp < ?
	`)
	if err != nil {
		return fmt.Errorf("prepare prune: %w", err)
	}

	return nil
}

// Append stores a record.
func (s *SQLiteStore) Append(ctx context.Context, rec Record) error {
	var errsJSON sql.NullString
	if len(rec.Errors) > 0 {
		data, err := json.Marshal(rec.Errors)
		if err != nil {
			return fmt.Errorf("marshal errors: %w", err)
		}
		errsJSON = sql.NullString{String: string(data), Valid: true}
	}

	valid := 0
	if rec.Valid {
		valid = 1
	}

	_, err := s.appendStmt.ExecContext(ctx,
		rec.ID,
		rec.Timestamp.UnixNano(),
		rec.Source,
		rec.Detail,
		rec.Fingerprint,
		valid,
		rec.AppEnv,
		errsJSON,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// List returns stored records, newest first.
func (s *SQLiteStore) List(ctx context.Context, opts ListOptions) ([]Record, error) {
	var (
		where []string
		args  []any
	)
	if opts.OnlyInvalid {
		where = append(where, "valid = 0")
	}
	if opts.Source != "" {
		where = append(where, "source = ?")
		args = append(args, opts.Source)
	}

	query := "SELECT id, timestamp, source, detail, fingerprint, valid, app_env, errors FROM validation_records"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY timestamp DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec      Record
			ts       int64
			valid    int
			detail   sql.NullString
			appEnv   sql.NullString
			errsJSON sql.NullString
		)
		if err := rows.Scan(&rec.ID, &ts, &rec.Source, &detail, &rec.Fingerprint, &valid, &appEnv, &errsJSON); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Timestamp = time.Unix(0, ts).UTC()
		rec.Valid = valid == 1
		rec.Detail = detail.String
		rec.AppEnv = appEnv.String
		if errsJSON.Valid && errsJSON.String != "" {
			var ferrs []settings.FieldError
			if err := json.Unmarshal([]byte(errsJSON.String), &ferrs); err != nil {
				return nil, fmt.Errorf("unmarshal errors: %w", err)
			}
			rec.Errors = ferrs
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Prune deletes records older than the cutoff.
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.pruneStmt.ExecContext(ctx, olderThan.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("prune records: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the prepared statements and the database.
func (s *SQLiteStore) Close() error {
	var errs []error
	if s.appendStmt != nil {
		errs = append(errs, s.appendStmt.Close())
	}
	if s.pruneStmt != nil {
		errs = append(errs, s.pruneStmt.Close())
	}
	errs = append(errs, s.db.Close())
	return errors.Join(errs...)
}
