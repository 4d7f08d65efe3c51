// Package tracker provides the in-memory task store that keeps epics,
// view history and the schedule consistent with the stored items.
package tracker

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/runoshun/tasktracker/internal/domain"
	"github.com/runoshun/tasktracker/internal/history"
	"github.com/runoshun/tasktracker/internal/schedule"
)

// itemRef identifies a stored item in the view history.
type itemRef struct {
	kind domain.Kind
	id   int
}

// Store is the in-memory implementation of domain.TaskManager.
//
// Every operation either completes or fails before mutating anything.
// Values passed in and handed out are copies of the stored state.
//
// Store is not safe for concurrent use; wrap it with Synchronized.
type Store struct {
	ids      *idAllocator
	tasks    map[int]domain.Task
	epics    map[int]domain.Epic
	subtasks map[int]domain.Subtask
	history  *history.History[itemRef]
	schedule *schedule.Index
}

// Ensure Store implements domain.TaskManager.
var _ domain.TaskManager = (*Store)(nil)

// New creates an empty Store.
func New() *Store {
	return &Store{
		ids:      newIDAllocator(),
		tasks:    make(map[int]domain.Task),
		epics:    make(map[int]domain.Epic),
		subtasks: make(map[int]domain.Subtask),
		history:  history.New[itemRef](),
		schedule: schedule.New(),
	}
}

// === Create ===

// CreateTask stores a copy of task under a fresh ID.
func (s *Store) CreateTask(task domain.Task) (domain.Task, error) {
	return s.addTask(task, 0)
}

// CreateSubtask stores a copy of subtask under a fresh ID and attaches it to
// its epic. An EpicID that does not resolve to a stored epic is cleared.
func (s *Store) CreateSubtask(subtask domain.Subtask) (domain.Subtask, error) {
	return s.addSubtask(subtask, 0)
}

// CreateEpic stores a copy of epic under a fresh ID with no subtasks.
func (s *Store) CreateEpic(epic domain.Epic) (domain.Epic, error) {
	return s.addEpic(epic, 0)
}

// addTask stores a task. id 0 allocates a fresh ID.
func (s *Store) addTask(task domain.Task, id int) (domain.Task, error) {
	task = task.Clone()
	if err := normalize(&task); err != nil {
		return domain.Task{}, err
	}
	if id != 0 {
		if err := s.ids.Check(id); err != nil {
			return domain.Task{}, err
		}
	}
	task.ID = id
	if err := s.checkConflict(task); err != nil {
		return domain.Task{}, err
	}

	task.ID = s.assignID(id)
	s.tasks[task.ID] = task
	s.index(task)
	return task.Clone(), nil
}

// addSubtask stores a subtask. id 0 allocates a fresh ID.
func (s *Store) addSubtask(subtask domain.Subtask, id int) (domain.Subtask, error) {
	subtask = subtask.Clone()
	if err := normalize(&subtask.Task); err != nil {
		return domain.Subtask{}, err
	}
	if id != 0 {
		if err := s.ids.Check(id); err != nil {
			return domain.Subtask{}, err
		}
	}
	subtask.ID = id
	if err := s.checkConflict(subtask); err != nil {
		return domain.Subtask{}, err
	}

	subtask.ID = s.assignID(id)
	s.resolveEpic(&subtask)
	s.subtasks[subtask.ID] = subtask
	s.index(subtask)
	if subtask.HasEpic() {
		s.attach(subtask.EpicID, subtask.ID)
	}
	return subtask.Clone(), nil
}

// addEpic stores an epic. id 0 allocates a fresh ID.
func (s *Store) addEpic(epic domain.Epic, id int) (domain.Epic, error) {
	epic = epic.Clone()
	if id != 0 {
		if err := s.ids.Check(id); err != nil {
			return domain.Epic{}, err
		}
	}

	epic.ID = s.assignID(id)
	epic.ClearSubtasks()
	epic.Recompute(nil)
	s.epics[epic.ID] = epic
	return epic.Clone(), nil
}

// === Get ===

// GetTask returns a copy of the task and records it in the view history.
func (s *Store) GetTask(id int) (domain.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, notFound(domain.KindTask, id)
	}
	s.history.Record(id, itemRef{kind: domain.KindTask, id: id})
	return task.Clone(), nil
}

// GetSubtask returns a copy of the subtask and records it in the view history.
func (s *Store) GetSubtask(id int) (domain.Subtask, error) {
	subtask, ok := s.subtasks[id]
	if !ok {
		return domain.Subtask{}, notFound(domain.KindSubtask, id)
	}
	s.history.Record(id, itemRef{kind: domain.KindSubtask, id: id})
	return subtask.Clone(), nil
}

// GetEpic returns a copy of the epic and records it in the view history.
func (s *Store) GetEpic(id int) (domain.Epic, error) {
	epic, ok := s.epics[id]
	if !ok {
		return domain.Epic{}, notFound(domain.KindEpic, id)
	}
	s.history.Record(id, itemRef{kind: domain.KindEpic, id: id})
	return epic.Clone(), nil
}

// === Update ===

// UpdateTask replaces the stored task with the same ID.
func (s *Store) UpdateTask(task domain.Task) (domain.Task, error) {
	if _, ok := s.tasks[task.ID]; !ok {
		return domain.Task{}, notFound(domain.KindTask, task.ID)
	}
	task = task.Clone()
	if err := normalize(&task); err != nil {
		return domain.Task{}, err
	}
	if err := s.checkConflict(task); err != nil {
		return domain.Task{}, err
	}

	s.tasks[task.ID] = task
	s.index(task)
	return task.Clone(), nil
}

// UpdateSubtask replaces the stored subtask with the same ID. Moving a
// subtask to another epic detaches it from the previous one; both epics are
// recomputed.
func (s *Store) UpdateSubtask(subtask domain.Subtask) (domain.Subtask, error) {
	old, ok := s.subtasks[subtask.ID]
	if !ok {
		return domain.Subtask{}, notFound(domain.KindSubtask, subtask.ID)
	}
	subtask = subtask.Clone()
	if err := normalize(&subtask.Task); err != nil {
		return domain.Subtask{}, err
	}
	if err := s.checkConflict(subtask); err != nil {
		return domain.Subtask{}, err
	}

	s.resolveEpic(&subtask)
	s.subtasks[subtask.ID] = subtask
	s.index(subtask)
	if old.HasEpic() && old.EpicID != subtask.EpicID {
		s.detach(old.EpicID, subtask.ID)
	}
	if subtask.HasEpic() {
		s.attach(subtask.EpicID, subtask.ID)
	}
	return subtask.Clone(), nil
}

// UpdateEpic replaces the title and description of the stored epic.
// Status, timing and the subtask list are always derived from the stored
// subtasks and never taken from the argument.
func (s *Store) UpdateEpic(epic domain.Epic) (domain.Epic, error) {
	stored, ok := s.epics[epic.ID]
	if !ok {
		return domain.Epic{}, notFound(domain.KindEpic, epic.ID)
	}

	stored.Title = epic.Title
	stored.Description = epic.Description
	stored.Recompute(s.liveSubtasks(stored))
	s.epics[stored.ID] = stored
	return stored.Clone(), nil
}

// === Delete ===

// DeleteTask removes a task. Missing IDs are ignored.
func (s *Store) DeleteTask(id int) error {
	if _, ok := s.tasks[id]; !ok {
		return nil
	}
	delete(s.tasks, id)
	s.forget(domain.KindTask, id)
	return nil
}

// DeleteSubtask removes a subtask and recomputes its epic. Missing IDs are ignored.
func (s *Store) DeleteSubtask(id int) error {
	subtask, ok := s.subtasks[id]
	if !ok {
		return nil
	}
	s.dropSubtask(id)
	if subtask.HasEpic() {
		s.detach(subtask.EpicID, id)
	}
	return nil
}

// DeleteEpic removes an epic together with all of its subtasks. Missing IDs are ignored.
func (s *Store) DeleteEpic(id int) error {
	epic, ok := s.epics[id]
	if !ok {
		return nil
	}
	for _, subtaskID := range epic.SubtaskIDs() {
		s.dropSubtask(subtaskID)
	}
	delete(s.epics, id)
	s.forget(domain.KindEpic, id)
	return nil
}

// DeleteAllTasks removes every task.
func (s *Store) DeleteAllTasks() error {
	for id := range s.tasks {
		s.forget(domain.KindTask, id)
	}
	clear(s.tasks)
	return nil
}

// DeleteAllSubtasks removes every subtask and resets all epics.
func (s *Store) DeleteAllSubtasks() error {
	for id := range s.subtasks {
		s.forget(domain.KindSubtask, id)
	}
	clear(s.subtasks)
	for id, epic := range s.epics {
		epic.ClearSubtasks()
		epic.Recompute(nil)
		s.epics[id] = epic
	}
	return nil
}

// DeleteAllEpics removes every epic and the subtasks attached to them.
func (s *Store) DeleteAllEpics() error {
	for _, id := range sortedKeys(s.epics) {
		if err := s.DeleteEpic(id); err != nil {
			return err
		}
	}
	return nil
}

// === Queries ===

// Tasks returns copies of all tasks ordered by ID.
func (s *Store) Tasks() []domain.Task {
	out := make([]domain.Task, 0, len(s.tasks))
	for _, id := range sortedKeys(s.tasks) {
		out = append(out, s.tasks[id].Clone())
	}
	return out
}

// Epics returns copies of all epics ordered by ID.
func (s *Store) Epics() []domain.Epic {
	out := make([]domain.Epic, 0, len(s.epics))
	for _, id := range sortedKeys(s.epics) {
		out = append(out, s.epics[id].Clone())
	}
	return out
}

// Subtasks returns copies of all subtasks ordered by ID.
func (s *Store) Subtasks() []domain.Subtask {
	out := make([]domain.Subtask, 0, len(s.subtasks))
	for _, id := range sortedKeys(s.subtasks) {
		out = append(out, s.subtasks[id].Clone())
	}
	return out
}

// EpicSubtasks returns copies of the epic's subtasks in the epic's order.
// It does not touch the view history.
func (s *Store) EpicSubtasks(epicID int) ([]domain.Subtask, error) {
	epic, ok := s.epics[epicID]
	if !ok {
		return nil, notFound(domain.KindEpic, epicID)
	}
	return s.liveSubtasks(epic), nil
}

// Prioritized returns the scheduled tasks and subtasks ordered by start time.
func (s *Store) Prioritized() []domain.Item {
	slots := s.schedule.Ordered()
	out := make([]domain.Item, 0, len(slots))
	for _, slot := range slots {
		if item, ok := s.lookup(slot.Kind, slot.ID); ok {
			out = append(out, item)
		}
	}
	return out
}

// History returns the viewed items from least to most recent, reflecting
// their current stored state.
func (s *Store) History() []domain.Item {
	refs := s.history.Snapshot()
	out := make([]domain.Item, 0, len(refs))
	for _, r := range refs {
		if item, ok := s.lookup(r.kind, r.id); ok {
			out = append(out, item)
		}
	}
	return out
}

// === Internals ===

// normalize defaults an empty status to NEW and rejects values that would not
// survive a save: durations must be whole minutes, start times whole seconds.
func normalize(task *domain.Task) error {
	if task.Status == "" {
		task.Status = domain.StatusNew
	}
	if !task.Status.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, task.Status)
	}
	if task.Duration < 0 {
		return fmt.Errorf("%w: %s is negative", domain.ErrInvalidDuration, task.Duration)
	}
	if task.Duration%time.Minute != 0 {
		return fmt.Errorf("%w: %s is not a whole number of minutes", domain.ErrInvalidDuration, task.Duration)
	}
	if task.StartTime.Nanosecond() != 0 {
		return fmt.Errorf("%w: %s has sub-second precision", domain.ErrInvalidStartTime, task.StartTime.Format(time.RFC3339Nano))
	}
	return nil
}

func (s *Store) assignID(id int) int {
	if id == 0 {
		return s.ids.Next()
	}
	// Check has already passed; Reserve cannot fail here.
	_ = s.ids.Reserve(id)
	return id
}

// checkConflict fails with ErrTaskIntersection when item's interval overlaps
// another scheduled task or subtask.
func (s *Store) checkConflict(item domain.Item) error {
	slot, ok := schedule.SlotOf(item)
	if !ok {
		return nil
	}
	other, found := s.schedule.FirstConflict(slot)
	if !found {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrTaskIntersection, conflictDetail(slot, other))
}

func conflictDetail(candidate, other schedule.Slot) string {
	return fmt.Sprintf("[%s, %s) overlaps %s #%d [%s, %s)",
		candidate.Interval.Start.Format(domain.TimeLayout),
		candidate.Interval.End().Format(domain.TimeLayout),
		kindLabel(other.Kind), other.ID,
		other.Interval.Start.Format(domain.TimeLayout),
		other.Interval.End().Format(domain.TimeLayout),
	)
}

func (s *Store) index(item domain.Item) {
	if slot, ok := schedule.SlotOf(item); ok {
		s.schedule.Insert(slot)
	}
}

// forget removes an item from the view history, the schedule and the
// allocator's live set.
func (s *Store) forget(kind domain.Kind, id int) {
	s.history.Remove(id)
	s.schedule.Remove(kind, id)
	s.ids.Release(id)
}

// dropSubtask removes a subtask without touching its epic.
func (s *Store) dropSubtask(id int) {
	if _, ok := s.subtasks[id]; !ok {
		return
	}
	delete(s.subtasks, id)
	s.forget(domain.KindSubtask, id)
}

// resolveEpic clears an EpicID that does not point to a stored epic.
func (s *Store) resolveEpic(subtask *domain.Subtask) {
	if !subtask.HasEpic() {
		return
	}
	if subtask.EpicID == subtask.ID {
		subtask.EpicID = 0
		return
	}
	if _, ok := s.epics[subtask.EpicID]; !ok {
		subtask.EpicID = 0
	}
}

func (s *Store) attach(epicID, subtaskID int) {
	epic, ok := s.epics[epicID]
	if !ok {
		return
	}
	epic.AttachSubtask(subtaskID)
	epic.Recompute(s.liveSubtasks(epic))
	s.epics[epicID] = epic
}

func (s *Store) detach(epicID, subtaskID int) {
	epic, ok := s.epics[epicID]
	if !ok {
		return
	}
	epic.DetachSubtask(subtaskID)
	epic.Recompute(s.liveSubtasks(epic))
	s.epics[epicID] = epic
}

// liveSubtasks resolves the epic's subtask IDs, skipping any that no longer exist.
func (s *Store) liveSubtasks(epic domain.Epic) []domain.Subtask {
	ids := epic.SubtaskIDs()
	out := make([]domain.Subtask, 0, len(ids))
	for _, id := range ids {
		if subtask, ok := s.subtasks[id]; ok {
			out = append(out, subtask.Clone())
		}
	}
	return out
}

func (s *Store) lookup(kind domain.Kind, id int) (domain.Item, bool) {
	switch kind {
	case domain.KindTask:
		t, ok := s.tasks[id]
		return t.Clone(), ok
	case domain.KindSubtask:
		st, ok := s.subtasks[id]
		return st.Clone(), ok
	case domain.KindEpic:
		e, ok := s.epics[id]
		return e.Clone(), ok
	default:
		return nil, false
	}
}

func notFound(kind domain.Kind, id int) error {
	return fmt.Errorf("%s #%d: %w", kindLabel(kind), id, domain.ErrNotFound)
}

func kindLabel(kind domain.Kind) string {
	switch kind {
	case domain.KindEpic:
		return "epic"
	case domain.KindSubtask:
		return "subtask"
	default:
		return "task"
	}
}

func sortedKeys[V any](m map[int]V) []int {
	return slices.Sorted(maps.Keys(m))
}
