package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/runoshun/tasktracker/internal/domain"
)

// sinks owns the console writer and the log files, which open on first use.
// Handlers derived with WithAttrs share one sinks.
type sinks struct {
	console io.Writer
	global  *os.File
	items   map[int]*os.File
	dataDir string
	mu      sync.Mutex
}

func newSinks(dataDir string) *sinks {
	return &sinks{
		dataDir: dataDir,
		items:   make(map[int]*os.File),
	}
}

func (s *sinks) setConsole(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.console = w
}

func (s *sinks) write(itemID int, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if s.console != nil {
		if _, err := io.WriteString(s.console, line); err != nil {
			errs = append(errs, err)
		}
	}
	if s.dataDir == "" {
		return errors.Join(errs...)
	}

	errs = append(errs, appendLine(&s.global, domain.GlobalLogPath(s.dataDir), line))
	if itemID > 0 {
		f := s.items[itemID]
		errs = append(errs, appendLine(&f, domain.ItemLogPath(s.dataDir, itemID), line))
		if f != nil {
			s.items[itemID] = f
		}
	}
	return errors.Join(errs...)
}

// appendLine opens *f at path when it is nil, then appends line.
func appendLine(f **os.File, path, line string) error {
	if *f == nil {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("create logs directory: %w", err)
		}
		opened, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
		if err != nil {
			return fmt.Errorf("open log file %s: %w", filepath.Base(path), err)
		}
		*f = opened
	}
	_, err := io.WriteString(*f, line)
	return err
}

func (s *sinks) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if s.global != nil {
		errs = append(errs, s.global.Close())
		s.global = nil
	}
	for id, f := range s.items {
		errs = append(errs, f.Close())
		delete(s.items, id)
	}
	return errors.Join(errs...)
}
