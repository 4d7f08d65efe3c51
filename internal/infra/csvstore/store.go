// Package csvstore provides a CSV file-based implementation of domain.Repository.
package csvstore

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"syscall"
	"time"

	"github.com/runoshun/tasktracker/internal/domain"
)

// Header is the first line of every store file.
var Header = []string{"id", "type", "name", "status", "description", "epic", "duration", "startTime"}

// Column positions.
const (
	colID = iota
	colKind
	colTitle
	colStatus
	colDescription
	colEpic
	colDuration
	colStart
	numColumns
)

// Store implements domain.Repository using a CSV file.
type Store struct {
	path     string
	lockPath string
}

// Ensure Store implements domain.Repository.
var _ domain.Repository = (*Store)(nil)

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first save.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads all records. A missing file yields no records.
func (s *Store) Load(ctx context.Context) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return nil, err
	}
	defer s.releaseLock(lock)

	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}
	return Decode(bytes.NewReader(content))
}

// Save replaces the file content with the snapshot.
func (s *Store) Save(ctx context.Context, snap domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, snap.Records()); err != nil {
		return err
	}

	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	return s.write(buf.Bytes())
}

// Encode writes the header followed by one line per record.
func Encode(w io.Writer, records []domain.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(encodeRecord(r)); err != nil {
			return fmt.Errorf("write record %d: %w", r.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Decode parses a store file. The header line is required unless the
// input is empty. Records are returned sorted by ID.
func Decode(r io.Reader) ([]domain.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedRecord, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if !slices.Equal(rows[0], Header) {
		return nil, fmt.Errorf("%w: unexpected header %v", domain.ErrMalformedRecord, rows[0])
	}

	records := make([]domain.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) == 1 && row[0] == "" {
			continue
		}
		rec, err := decodeRecord(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	slices.SortStableFunc(records, func(a, b domain.Record) int {
		return a.ID - b.ID
	})
	return records, nil
}

func encodeRecord(r domain.Record) []string {
	row := make([]string, numColumns)
	row[colID] = strconv.Itoa(r.ID)
	row[colKind] = string(r.Kind)
	row[colTitle] = r.Title
	row[colStatus] = string(r.Status)
	row[colDescription] = r.Description
	if r.Kind == domain.KindEpic {
		return row
	}
	if r.Kind == domain.KindSubtask && r.EpicID != 0 {
		row[colEpic] = strconv.Itoa(r.EpicID)
	}
	row[colDuration] = strconv.FormatInt(int64(r.Duration/time.Minute), 10)
	if !r.StartTime.IsZero() {
		row[colStart] = r.StartTime.In(time.Local).Format(domain.TimeLayout)
	}
	return row
}

func decodeRecord(row []string) (domain.Record, error) {
	if len(row) != numColumns {
		return domain.Record{}, fmt.Errorf("%w: want %d fields, got %d", domain.ErrMalformedRecord, numColumns, len(row))
	}

	id, err := strconv.Atoi(row[colID])
	if err != nil {
		return domain.Record{}, fmt.Errorf("%w: id %q", domain.ErrMalformedRecord, row[colID])
	}
	kind, err := domain.ParseKind(row[colKind])
	if err != nil {
		return domain.Record{}, fmt.Errorf("%w: %w", domain.ErrMalformedRecord, err)
	}

	rec := domain.Record{
		ID:          id,
		Kind:        kind,
		Title:       row[colTitle],
		Status:      domain.Status(row[colStatus]),
		Description: row[colDescription],
	}
	if kind == domain.KindEpic {
		return rec, rec.Validate()
	}

	if kind == domain.KindSubtask && row[colEpic] != "" {
		epicID, err := strconv.Atoi(row[colEpic])
		if err != nil {
			return domain.Record{}, fmt.Errorf("%w: epic id %q", domain.ErrMalformedRecord, row[colEpic])
		}
		rec.EpicID = epicID
	}
	if row[colDuration] != "" {
		minutes, err := strconv.ParseInt(row[colDuration], 10, 64)
		if err != nil {
			return domain.Record{}, fmt.Errorf("%w: duration %q", domain.ErrMalformedRecord, row[colDuration])
		}
		rec.Duration = time.Duration(minutes) * time.Minute
	}
	if row[colStart] != "" {
		start, err := time.ParseInLocation(domain.TimeLayout, row[colStart], time.Local)
		if err != nil {
			return domain.Record{}, fmt.Errorf("%w: start time %q", domain.ErrMalformedRecord, row[colStart])
		}
		rec.StartTime = start
	}
	return rec, rec.Validate()
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) write(content []byte) error {
	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
