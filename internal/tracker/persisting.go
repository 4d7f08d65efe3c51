package tracker

import (
	"context"
	"fmt"

	"github.com/runoshun/tasktracker/internal/domain"
)

// Persisting saves a full snapshot of the wrapped TaskManager after every
// successful mutation. Reads are passed through unchanged.
//
// A failed save leaves the in-memory mutation in place and returns an error
// wrapping domain.ErrSave together with the mutated value.
type Persisting struct {
	inner domain.TaskManager
	repo  domain.Repository
}

// Ensure Persisting implements domain.TaskManager.
var _ domain.TaskManager = (*Persisting)(nil)

// NewPersisting wraps inner and saves to repo.
func NewPersisting(inner domain.TaskManager, repo domain.Repository) *Persisting {
	return &Persisting{inner: inner, repo: repo}
}

// Save writes the current content of the wrapped manager.
func (p *Persisting) Save(ctx context.Context) error {
	if err := p.repo.Save(ctx, domain.SnapshotOf(p.inner)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSave, err)
	}
	return nil
}

func (p *Persisting) save() error {
	return p.Save(context.Background())
}

// persisted runs a mutation and saves when it succeeds.
func persisted[T any](p *Persisting, v T, err error) (T, error) {
	if err != nil {
		return v, err
	}
	return v, p.save()
}

func (p *Persisting) persistedErr(err error) error {
	if err != nil {
		return err
	}
	return p.save()
}

// CreateTask implements domain.TaskManager.
func (p *Persisting) CreateTask(task domain.Task) (domain.Task, error) {
	v, err := p.inner.CreateTask(task)
	return persisted(p, v, err)
}

// CreateEpic implements domain.TaskManager.
func (p *Persisting) CreateEpic(epic domain.Epic) (domain.Epic, error) {
	v, err := p.inner.CreateEpic(epic)
	return persisted(p, v, err)
}

// CreateSubtask implements domain.TaskManager.
func (p *Persisting) CreateSubtask(subtask domain.Subtask) (domain.Subtask, error) {
	v, err := p.inner.CreateSubtask(subtask)
	return persisted(p, v, err)
}

// GetTask implements domain.TaskManager.
func (p *Persisting) GetTask(id int) (domain.Task, error) { return p.inner.GetTask(id) }

// GetEpic implements domain.TaskManager.
func (p *Persisting) GetEpic(id int) (domain.Epic, error) { return p.inner.GetEpic(id) }

// GetSubtask implements domain.TaskManager.
func (p *Persisting) GetSubtask(id int) (domain.Subtask, error) { return p.inner.GetSubtask(id) }

// UpdateTask implements domain.TaskManager.
func (p *Persisting) UpdateTask(task domain.Task) (domain.Task, error) {
	v, err := p.inner.UpdateTask(task)
	return persisted(p, v, err)
}

// UpdateEpic implements domain.TaskManager.
func (p *Persisting) UpdateEpic(epic domain.Epic) (domain.Epic, error) {
	v, err := p.inner.UpdateEpic(epic)
	return persisted(p, v, err)
}

// UpdateSubtask implements domain.TaskManager.
func (p *Persisting) UpdateSubtask(subtask domain.Subtask) (domain.Subtask, error) {
	v, err := p.inner.UpdateSubtask(subtask)
	return persisted(p, v, err)
}

// DeleteTask implements domain.TaskManager.
func (p *Persisting) DeleteTask(id int) error { return p.persistedErr(p.inner.DeleteTask(id)) }

// DeleteEpic implements domain.TaskManager.
func (p *Persisting) DeleteEpic(id int) error { return p.persistedErr(p.inner.DeleteEpic(id)) }

// DeleteSubtask implements domain.TaskManager.
func (p *Persisting) DeleteSubtask(id int) error {
	return p.persistedErr(p.inner.DeleteSubtask(id))
}

// DeleteAllTasks implements domain.TaskManager.
func (p *Persisting) DeleteAllTasks() error { return p.persistedErr(p.inner.DeleteAllTasks()) }

// DeleteAllEpics implements domain.TaskManager.
func (p *Persisting) DeleteAllEpics() error { return p.persistedErr(p.inner.DeleteAllEpics()) }

// DeleteAllSubtasks implements domain.TaskManager.
func (p *Persisting) DeleteAllSubtasks() error {
	return p.persistedErr(p.inner.DeleteAllSubtasks())
}

// Tasks implements domain.TaskManager.
func (p *Persisting) Tasks() []domain.Task { return p.inner.Tasks() }

// Epics implements domain.TaskManager.
func (p *Persisting) Epics() []domain.Epic { return p.inner.Epics() }

// Subtasks implements domain.TaskManager.
func (p *Persisting) Subtasks() []domain.Subtask { return p.inner.Subtasks() }

// EpicSubtasks implements domain.TaskManager.
func (p *Persisting) EpicSubtasks(epicID int) ([]domain.Subtask, error) {
	return p.inner.EpicSubtasks(epicID)
}

// Prioritized implements domain.TaskManager.
func (p *Persisting) Prioritized() []domain.Item { return p.inner.Prioritized() }

// History implements domain.TaskManager.
func (p *Persisting) History() []domain.Item { return p.inner.History() }
