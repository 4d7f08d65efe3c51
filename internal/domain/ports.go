package domain

import (
	"context"
)

// TaskManager owns tasks, epics and subtasks and keeps the derived state
// (epic aggregates, view history, schedule) consistent.
type TaskManager interface {
	// CreateTask stores a new task and returns it with its assigned ID.
	CreateTask(task Task) (Task, error)

	// CreateEpic stores a new epic and returns it with its assigned ID.
	CreateEpic(epic Epic) (Epic, error)

	// CreateSubtask stores a new subtask and returns it with its assigned ID.
	CreateSubtask(subtask Subtask) (Subtask, error)

	// GetTask returns a task and records it in the view history.
	GetTask(id int) (Task, error)

	// GetEpic returns an epic and records it in the view history.
	GetEpic(id int) (Epic, error)

	// GetSubtask returns a subtask and records it in the view history.
	GetSubtask(id int) (Subtask, error)

	// UpdateTask replaces a stored task.
	UpdateTask(task Task) (Task, error)

	// UpdateEpic replaces an epic's title and description.
	UpdateEpic(epic Epic) (Epic, error)

	// UpdateSubtask replaces a stored subtask.
	UpdateSubtask(subtask Subtask) (Subtask, error)

	// DeleteTask removes a task. Missing IDs are ignored.
	DeleteTask(id int) error

	// DeleteEpic removes an epic and all of its subtasks. Missing IDs are ignored.
	DeleteEpic(id int) error

	// DeleteSubtask removes a subtask. Missing IDs are ignored.
	DeleteSubtask(id int) error

	// DeleteAllTasks removes every task.
	DeleteAllTasks() error

	// DeleteAllEpics removes every epic and subtask.
	DeleteAllEpics() error

	// DeleteAllSubtasks removes every subtask.
	DeleteAllSubtasks() error

	// Tasks returns all tasks ordered by ID.
	Tasks() []Task

	// Epics returns all epics ordered by ID.
	Epics() []Epic

	// Subtasks returns all subtasks ordered by ID.
	Subtasks() []Subtask

	// EpicSubtasks returns the subtasks of an epic in the epic's order.
	EpicSubtasks(epicID int) ([]Subtask, error)

	// Prioritized returns scheduled tasks and subtasks ordered by start time.
	Prioritized() []Item

	// History returns viewed items from least to most recent.
	History() []Item
}

// Serializer is implemented by managers that can run several calls as one
// critical section. fn must use the manager it is given, not the receiver.
type Serializer interface {
	Do(fn func(m TaskManager) error) error
}

// Atomically runs fn inside m's critical section when m is a Serializer and
// calls it directly otherwise.
func Atomically(m TaskManager, fn func(m TaskManager) error) error {
	if s, ok := m.(Serializer); ok {
		return s.Do(fn)
	}
	return fn(m)
}

// Snapshot is the full content of a TaskManager.
type Snapshot struct {
	Tasks    []Task
	Epics    []Epic
	Subtasks []Subtask
}

// SnapshotOf collects a Snapshot from a TaskManager.
func SnapshotOf(m TaskManager) Snapshot {
	return Snapshot{
		Tasks:    m.Tasks(),
		Epics:    m.Epics(),
		Subtasks: m.Subtasks(),
	}
}

// Repository persists snapshots and replays them as records.
type Repository interface {
	// Load returns the persisted records. A missing store yields no records.
	Load(ctx context.Context) ([]Record, error)

	// Save replaces the persisted content with the snapshot.
	Save(ctx context.Context, snap Snapshot) error
}

// Logger writes operational log entries. itemID 0 means the entry is not
// tied to a particular item.
type Logger interface {
	Debug(itemID int, category, msg string)
	Info(itemID int, category, msg string)
	Warn(itemID int, category, msg string)
	Error(itemID int, category, msg string)
}

// NopLogger discards all log entries.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(int, string, string) {}

// Info implements Logger.
func (NopLogger) Info(int, string, string) {}

// Warn implements Logger.
func (NopLogger) Warn(int, string, string) {}

// Error implements Logger.
func (NopLogger) Error(int, string, string) {}

// ConfigLoader loads the merged configuration.
type ConfigLoader interface {
	// Load returns the configuration merged from defaults, the global file
	// and the data dir file, in increasing precedence.
	Load() (*Config, error)
}

// ConfigManager inspects and creates config files.
type ConfigManager interface {
	DataConfigInfo() ConfigInfo
	GlobalConfigInfo() ConfigInfo
	InitDataConfig(cfg *Config) error
	InitGlobalConfig(cfg *Config) error
}
