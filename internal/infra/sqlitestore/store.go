// Package sqlitestore provides a SQLite implementation of domain.Repository.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/runoshun/tasktracker/internal/domain"
)

// Store implements domain.Repository using a local SQLite database.
// Every Save replaces the whole item table in one transaction.
type Store struct {
	db *sqlx.DB
}

// Ensure Store implements domain.Repository.
var _ domain.Repository = (*Store)(nil)

// itemRow mirrors one row of the items table.
// Fields are ordered to minimize memory padding.
type itemRow struct {
	StartTime       sql.NullString `db:"start_time"`
	Kind            string         `db:"kind"`
	Title           string         `db:"title"`
	Status          string         `db:"status"`
	Description     string         `db:"description"`
	EpicID          sql.NullInt64  `db:"epic_id"`
	DurationMinutes int64          `db:"duration_minutes"`
	ID              int            `db:"id"`
}

// Open opens (or creates) a SQLite database at path,
// enables WAL mode, and runs any pending schema migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.GetContext(ctx, &version, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *Store) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Load returns all stored items as records ordered by ID.
func (s *Store) Load(ctx context.Context) ([]domain.Record, error) {
	var rows []itemRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, kind, title, status, description, epic_id, duration_minutes, start_time
		FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}

	records := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.record()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save replaces the stored items with the snapshot.
func (s *Store) Save(ctx context.Context, snap domain.Snapshot) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return fmt.Errorf("clearing items: %w", err)
	}

	const query = `
		INSERT INTO items (
			id, kind, title, status, description,
			epic_id, duration_minutes, start_time
		) VALUES (
			:id, :kind, :title, :status, :description,
			:epic_id, :duration_minutes, :start_time
		)`

	stmt, err := tx.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range snap.Records() {
		if _, err := stmt.ExecContext(ctx, rowOf(rec)); err != nil {
			return fmt.Errorf("inserting item %d: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing items: %w", err)
	}
	return nil
}

func rowOf(rec domain.Record) itemRow {
	row := itemRow{
		ID:          rec.ID,
		Kind:        string(rec.Kind),
		Title:       rec.Title,
		Status:      string(rec.Status),
		Description: rec.Description,
	}
	if rec.Kind == domain.KindEpic {
		return row
	}
	if rec.EpicID != 0 {
		row.EpicID = sql.NullInt64{Int64: int64(rec.EpicID), Valid: true}
	}
	row.DurationMinutes = int64(rec.Duration / time.Minute)
	if !rec.StartTime.IsZero() {
		row.StartTime = sql.NullString{
			String: rec.StartTime.In(time.Local).Format(domain.TimeLayout),
			Valid:  true,
		}
	}
	return row
}

func (r itemRow) record() (domain.Record, error) {
	kind, err := domain.ParseKind(r.Kind)
	if err != nil {
		return domain.Record{}, fmt.Errorf("%w: item %d: %w", domain.ErrMalformedRecord, r.ID, err)
	}
	rec := domain.Record{
		ID:          r.ID,
		Kind:        kind,
		Title:       r.Title,
		Status:      domain.Status(r.Status),
		Description: r.Description,
	}
	if kind != domain.KindEpic {
		if r.EpicID.Valid && kind == domain.KindSubtask {
			rec.EpicID = int(r.EpicID.Int64)
		}
		rec.Duration = time.Duration(r.DurationMinutes) * time.Minute
		if r.StartTime.Valid && r.StartTime.String != "" {
			start, err := time.ParseInLocation(domain.TimeLayout, r.StartTime.String, time.Local)
			if err != nil {
				return domain.Record{}, fmt.Errorf("%w: item %d: start time %q", domain.ErrMalformedRecord, r.ID, r.StartTime.String)
			}
			rec.StartTime = start
		}
	}
	return rec, rec.Validate()
}
