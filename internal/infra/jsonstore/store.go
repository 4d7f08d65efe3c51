// Package jsonstore provides a JSON file-based implementation of domain.Repository.
package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"syscall"
	"time"

	"github.com/runoshun/tasktracker/internal/domain"
)

// storeData represents the JSON file structure.
type storeData struct {
	Items map[string]*itemData `json:"items"`
	Meta  meta                 `json:"meta"`
}

// meta contains store metadata.
type meta struct {
	SavedAt time.Time `json:"savedAt"`
	Count   int       `json:"count"`
}

// itemData is the JSON representation of a record (without ID, which is the map key).
// Duration is in whole minutes and StartTime uses domain.TimeLayout.
// Fields are ordered to minimize memory padding.
type itemData struct {
	Type        domain.Kind   `json:"type"`
	Title       string        `json:"title"`
	Status      domain.Status `json:"status"`
	Description string        `json:"description,omitempty"`
	StartTime   string        `json:"startTime,omitempty"`
	EpicID      int           `json:"epicId,omitempty"`
	Duration    int64         `json:"duration,omitempty"`
}

// Store implements domain.Repository using a JSON file.
type Store struct {
	now      func() time.Time
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first save.
func New(path string) *Store {
	return &Store{
		now:      time.Now,
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored records ordered by ID. A missing file yields no records.
func (s *Store) Load(ctx context.Context) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return nil, err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(data.Items))
	for key, item := range data.Items {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: id %q", domain.ErrMalformedRecord, key)
		}
		rec, err := item.record(id)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	// Sort by ID for consistent ordering
	slices.SortFunc(records, func(a, b domain.Record) int {
		return a.ID - b.ID
	})
	return records, nil
}

// Save replaces the file content with the snapshot.
func (s *Store) Save(ctx context.Context, snap domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	records := snap.Records()
	data := &storeData{
		Items: make(map[string]*itemData, len(records)),
		Meta:  meta{SavedAt: s.now().UTC(), Count: len(records)},
	}
	for _, rec := range records {
		data.Items[strconv.Itoa(rec.ID)] = itemOf(rec)
	}
	return s.write(data)
}

func itemOf(rec domain.Record) *itemData {
	item := &itemData{
		Type:        rec.Kind,
		Title:       rec.Title,
		Status:      rec.Status,
		Description: rec.Description,
	}
	if rec.Kind == domain.KindEpic {
		return item
	}
	item.EpicID = rec.EpicID
	item.Duration = int64(rec.Duration / time.Minute)
	if !rec.StartTime.IsZero() {
		item.StartTime = rec.StartTime.In(time.Local).Format(domain.TimeLayout)
	}
	return item
}

func (d *itemData) record(id int) (domain.Record, error) {
	rec := domain.Record{
		ID:          id,
		Kind:        d.Type,
		Title:       d.Title,
		Status:      d.Status,
		Description: d.Description,
	}
	if rec.Status == "" {
		rec.Status = domain.StatusNew
	}
	if d.Type != domain.KindEpic {
		rec.EpicID = d.EpicID
		rec.Duration = time.Duration(d.Duration) * time.Minute
		if d.StartTime != "" {
			start, err := time.ParseInLocation(domain.TimeLayout, d.StartTime, time.Local)
			if err != nil {
				return domain.Record{}, fmt.Errorf("%w: id %d: start time %q", domain.ErrMalformedRecord, id, d.StartTime)
			}
			rec.StartTime = start
		}
	}
	return rec, rec.Validate()
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	// Ensure lock file directory exists
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

func (s *Store) read() (*storeData, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &storeData{}, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var data storeData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("%w: parse store file: %v", domain.ErrMalformedRecord, err)
	}
	return &data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Ensure Store implements domain.Repository.
var _ domain.Repository = (*Store)(nil)
