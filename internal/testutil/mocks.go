// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/runoshun/tasktracker/internal/domain"
)

// MockRepository is a test double for domain.Repository.
// Fields are ordered to minimize memory padding.
type MockRepository struct {
	LoadErr   error
	SaveErr   error
	Records   []domain.Record
	Saved     []domain.Snapshot
	SaveCalls int
	LoadCalls int
}

// NewMockRepository creates a MockRepository that loads the given records.
func NewMockRepository(records ...domain.Record) *MockRepository {
	return &MockRepository{Records: records}
}

// Load returns the configured records.
func (m *MockRepository) Load(_ context.Context) ([]domain.Record, error) {
	m.LoadCalls++
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return append([]domain.Record(nil), m.Records...), nil
}

// Save records the snapshot and replaces Records with its content.
func (m *MockRepository) Save(_ context.Context, snap domain.Snapshot) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saved = append(m.Saved, snap)
	m.Records = snap.Records()
	return nil
}

// LastSaved returns the most recent saved snapshot.
func (m *MockRepository) LastSaved() (domain.Snapshot, bool) {
	if len(m.Saved) == 0 {
		return domain.Snapshot{}, false
	}
	return m.Saved[len(m.Saved)-1], true
}

// LogEntry is a single entry captured by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
	ItemID   int
}

// String formats the entry for assertion messages.
func (e LogEntry) String() string {
	return fmt.Sprintf("[%s] [%d] [%s] %s", e.Level, e.ItemID, e.Category, e.Msg)
}

// MockLogger is a test double for domain.Logger that captures entries.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) add(level string, itemID int, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, ItemID: itemID, Category: category, Msg: msg})
}

// Debug captures a debug entry.
func (m *MockLogger) Debug(itemID int, category, msg string) { m.add("DEBUG", itemID, category, msg) }

// Info captures an info entry.
func (m *MockLogger) Info(itemID int, category, msg string) { m.add("INFO", itemID, category, msg) }

// Warn captures a warn entry.
func (m *MockLogger) Warn(itemID int, category, msg string) { m.add("WARN", itemID, category, msg) }

// Error captures an error entry.
func (m *MockLogger) Error(itemID int, category, msg string) { m.add("ERROR", itemID, category, msg) }

// HasEntry reports whether an entry with the given level and category was captured.
func (m *MockLogger) HasEntry(level, category string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Entries {
		if e.Level == level && e.Category == category {
			return true
		}
	}
	return false
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitDataErr      error
	InitGlobalErr    error
	DataInfo         domain.ConfigInfo
	GlobalInfo       domain.ConfigInfo
	InitDataCalled   bool
	InitGlobalCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{}
}

// DataConfigInfo returns the configured data dir config info.
func (m *MockConfigManager) DataConfigInfo() domain.ConfigInfo {
	return m.DataInfo
}

// GlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalInfo
}

// InitDataConfig records the call.
func (m *MockConfigManager) InitDataConfig(_ *domain.Config) error {
	m.InitDataCalled = true
	return m.InitDataErr
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig(_ *domain.Config) error {
	m.InitGlobalCalled = true
	return m.InitGlobalErr
}

// SerialManager wraps a TaskManager as a domain.Serializer and records the
// lookups and writes made outside Do.
type SerialManager struct {
	domain.TaskManager
	Outside []string
	DoCalls int
	inDo    bool
}

// NewSerialManager wraps inner.
func NewSerialManager(inner domain.TaskManager) *SerialManager {
	return &SerialManager{TaskManager: inner}
}

// Do runs fn with the wrapper itself, marking the calls fn makes as inside.
func (m *SerialManager) Do(fn func(domain.TaskManager) error) error {
	m.DoCalls++
	m.inDo = true
	defer func() { m.inDo = false }()
	return fn(m)
}

func (m *SerialManager) note(call string) {
	if !m.inDo {
		m.Outside = append(m.Outside, call)
	}
}

// CreateSubtask records the call and delegates.
func (m *SerialManager) CreateSubtask(s domain.Subtask) (domain.Subtask, error) {
	m.note("CreateSubtask")
	return m.TaskManager.CreateSubtask(s)
}

// UpdateTask records the call and delegates.
func (m *SerialManager) UpdateTask(t domain.Task) (domain.Task, error) {
	m.note("UpdateTask")
	return m.TaskManager.UpdateTask(t)
}

// UpdateSubtask records the call and delegates.
func (m *SerialManager) UpdateSubtask(s domain.Subtask) (domain.Subtask, error) {
	m.note("UpdateSubtask")
	return m.TaskManager.UpdateSubtask(s)
}

// UpdateEpic records the call and delegates.
func (m *SerialManager) UpdateEpic(e domain.Epic) (domain.Epic, error) {
	m.note("UpdateEpic")
	return m.TaskManager.UpdateEpic(e)
}

// EpicSubtasks records the call and delegates.
func (m *SerialManager) EpicSubtasks(epicID int) ([]domain.Subtask, error) {
	m.note("EpicSubtasks")
	return m.TaskManager.EpicSubtasks(epicID)
}

// Subtasks records the call and delegates.
func (m *SerialManager) Subtasks() []domain.Subtask {
	m.note("Subtasks")
	return m.TaskManager.Subtasks()
}

// Compile-time interface checks.
var (
	_ domain.Repository    = (*MockRepository)(nil)
	_ domain.Logger        = (*MockLogger)(nil)
	_ domain.ConfigManager = (*MockConfigManager)(nil)
	_ domain.Serializer    = (*SerialManager)(nil)
)
