package tracker

import (
	"sync"

	"github.com/runoshun/tasktracker/internal/domain"
)

// Synchronized serializes every call to the wrapped TaskManager.
// Get* calls mutate the view history, so reads take the same lock as writes.
type Synchronized struct {
	inner domain.TaskManager
	mu    sync.Mutex
}

// Ensure Synchronized implements domain.TaskManager and domain.Serializer.
var (
	_ domain.TaskManager = (*Synchronized)(nil)
	_ domain.Serializer  = (*Synchronized)(nil)
)

// NewSynchronized wraps inner.
func NewSynchronized(inner domain.TaskManager) *Synchronized {
	return &Synchronized{inner: inner}
}

// Do runs fn with exclusive access to the wrapped manager.
// Use it to group several operations into one critical section.
func (s *Synchronized) Do(fn func(m domain.TaskManager) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.inner)
}

// CreateTask implements domain.TaskManager.
func (s *Synchronized) CreateTask(task domain.Task) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.CreateTask(task)
}

// CreateEpic implements domain.TaskManager.
func (s *Synchronized) CreateEpic(epic domain.Epic) (domain.Epic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.CreateEpic(epic)
}

// CreateSubtask implements domain.TaskManager.
func (s *Synchronized) CreateSubtask(subtask domain.Subtask) (domain.Subtask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.CreateSubtask(subtask)
}

// GetTask implements domain.TaskManager.
func (s *Synchronized) GetTask(id int) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.GetTask(id)
}

// GetEpic implements domain.TaskManager.
func (s *Synchronized) GetEpic(id int) (domain.Epic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.GetEpic(id)
}

// GetSubtask implements domain.TaskManager.
func (s *Synchronized) GetSubtask(id int) (domain.Subtask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.GetSubtask(id)
}

// UpdateTask implements domain.TaskManager.
func (s *Synchronized) UpdateTask(task domain.Task) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.UpdateTask(task)
}

// UpdateEpic implements domain.TaskManager.
func (s *Synchronized) UpdateEpic(epic domain.Epic) (domain.Epic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.UpdateEpic(epic)
}

// UpdateSubtask implements domain.TaskManager.
func (s *Synchronized) UpdateSubtask(subtask domain.Subtask) (domain.Subtask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.UpdateSubtask(subtask)
}

// DeleteTask implements domain.TaskManager.
func (s *Synchronized) DeleteTask(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.DeleteTask(id)
}

// DeleteEpic implements domain.TaskManager.
func (s *Synchronized) DeleteEpic(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.DeleteEpic(id)
}

// DeleteSubtask implements domain.TaskManager.
func (s *Synchronized) DeleteSubtask(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.DeleteSubtask(id)
}

// DeleteAllTasks implements domain.TaskManager.
func (s *Synchronized) DeleteAllTasks() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.DeleteAllTasks()
}

// DeleteAllEpics implements domain.TaskManager.
func (s *Synchronized) DeleteAllEpics() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.DeleteAllEpics()
}

// DeleteAllSubtasks implements domain.TaskManager.
func (s *Synchronized) DeleteAllSubtasks() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.DeleteAllSubtasks()
}

// Tasks implements domain.TaskManager.
func (s *Synchronized) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Tasks()
}

// Epics implements domain.TaskManager.
func (s *Synchronized) Epics() []domain.Epic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Epics()
}

// Subtasks implements domain.TaskManager.
func (s *Synchronized) Subtasks() []domain.Subtask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Subtasks()
}

// EpicSubtasks implements domain.TaskManager.
func (s *Synchronized) EpicSubtasks(epicID int) ([]domain.Subtask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.EpicSubtasks(epicID)
}

// Prioritized implements domain.TaskManager.
func (s *Synchronized) Prioritized() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Prioritized()
}

// History implements domain.TaskManager.
func (s *Synchronized) History() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.History()
}
