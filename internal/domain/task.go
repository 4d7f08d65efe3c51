// Package domain contains core business entities and interfaces.
package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Kind identifies which of the three work item types a value is.
type Kind string

const (
	KindTask    Kind = "TASK"
	KindEpic    Kind = "EPIC"
	KindSubtask Kind = "SUBTASK"
)

// ParseKind parses a kind string case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	switch k {
	case KindTask, KindEpic, KindSubtask:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Item is implemented by Task, Epic and Subtask.
// Two items are the same logical item when kind and id match.
type Item interface {
	ItemID() int
	Kind() Kind
	Heading() string
}

// SameItem reports whether a and b refer to the same logical item.
func SameItem(a, b Item) bool {
	return a.Kind() == b.Kind() && a.ItemID() == b.ItemID()
}

// Interval is a half-open time span [Start, Start+Duration).
// A zero Start means the interval is not scheduled.
type Interval struct {
	Start    time.Time
	Duration time.Duration
}

// IsScheduled returns true if the interval has a start time.
func (i Interval) IsScheduled() bool {
	return !i.Start.IsZero()
}

// End returns Start+Duration, or the zero time when unscheduled.
func (i Interval) End() time.Time {
	if !i.IsScheduled() {
		return time.Time{}
	}
	return i.Start.Add(i.Duration)
}

// Intersects reports whether the two half-open intervals overlap.
// Unscheduled or empty intervals never overlap, and touching endpoints do not count.
func (i Interval) Intersects(other Interval) bool {
	if !i.IsScheduled() || !other.IsScheduled() {
		return false
	}
	if i.Duration <= 0 || other.Duration <= 0 {
		return false
	}
	return i.Start.Before(other.End()) && other.Start.Before(i.End())
}

// Task is a plain work item.
// Fields are ordered to minimize memory padding.
type Task struct {
	StartTime   time.Time     // Planned start (zero = not scheduled)
	Title       string        // Title
	Description string        // Description (optional)
	Status      Status        // Current status
	Duration    time.Duration // Planned duration (defaults to zero)
	ID          int           // Assigned by the store
}

// NewTask creates an unscheduled task in status NEW.
func NewTask(title, description string) Task {
	return Task{Title: title, Description: description, Status: StatusNew}
}

// ItemID implements Item.
func (t Task) ItemID() int { return t.ID }

// Kind implements Item.
func (t Task) Kind() Kind { return KindTask }

// Heading implements Item.
func (t Task) Heading() string { return t.Title }

// Interval returns the task's scheduled interval.
func (t Task) Interval() Interval {
	return Interval{Start: t.StartTime, Duration: t.Duration}
}

// IsScheduled returns true if the task has a start time.
func (t Task) IsScheduled() bool {
	return !t.StartTime.IsZero()
}

// EndTime returns StartTime+Duration, or the zero time when unscheduled.
func (t Task) EndTime() time.Time {
	return t.Interval().End()
}

// Intersects reports whether the two tasks' time intervals overlap.
func (t Task) Intersects(other Task) bool {
	return t.Interval().Intersects(other.Interval())
}

// Clone returns a copy of the task.
func (t Task) Clone() Task {
	return t
}

// Subtask is a work item that belongs to an epic.
type Subtask struct {
	Task
	EpicID int // Owning epic ID (0 = none)
}

// NewSubtask creates an unscheduled subtask of the given epic in status NEW.
func NewSubtask(title, description string, epicID int) Subtask {
	return Subtask{Task: NewTask(title, description), EpicID: epicID}
}

// Kind implements Item.
func (s Subtask) Kind() Kind { return KindSubtask }

// HasEpic returns true if the subtask references an epic.
func (s Subtask) HasEpic() bool {
	return s.EpicID != 0
}

// Clone returns a copy of the subtask.
func (s Subtask) Clone() Subtask {
	return s
}

// Epic groups subtasks. Status, duration and start/end times are derived
// from the subtasks and can only change through Recompute.
type Epic struct {
	startTime   time.Time
	endTime     time.Time
	Title       string
	Description string
	status      Status
	subtaskIDs  []int
	duration    time.Duration
	ID          int
}

// NewEpic creates an epic with no subtasks.
func NewEpic(title, description string) Epic {
	e := Epic{Title: title, Description: description}
	e.Recompute(nil)
	return e
}

// ItemID implements Item.
func (e Epic) ItemID() int { return e.ID }

// Kind implements Item.
func (e Epic) Kind() Kind { return KindEpic }

// Heading implements Item.
func (e Epic) Heading() string { return e.Title }

// Status returns the derived status.
func (e Epic) Status() Status {
	if e.status == "" {
		return StatusNew
	}
	return e.status
}

// Duration returns the sum of subtask durations.
func (e Epic) Duration() time.Duration { return e.duration }

// StartTime returns the earliest subtask start (zero if none is scheduled).
func (e Epic) StartTime() time.Time { return e.startTime }

// EndTime returns the latest subtask end (zero if none is scheduled).
func (e Epic) EndTime() time.Time { return e.endTime }

// IsScheduled returns true if at least one subtask is scheduled.
func (e Epic) IsScheduled() bool { return !e.startTime.IsZero() }

// SubtaskIDs returns the subtask IDs in insertion order.
func (e Epic) SubtaskIDs() []int {
	return slices.Clone(e.subtaskIDs)
}

// HasSubtask returns true if id is in the epic's subtask list.
func (e Epic) HasSubtask(id int) bool {
	return slices.Contains(e.subtaskIDs, id)
}

// AttachSubtask appends id to the subtask list unless already present.
func (e *Epic) AttachSubtask(id int) {
	if e.HasSubtask(id) {
		return
	}
	e.subtaskIDs = append(e.subtaskIDs, id)
}

// DetachSubtask removes id from the subtask list.
func (e *Epic) DetachSubtask(id int) {
	e.subtaskIDs = slices.DeleteFunc(e.subtaskIDs, func(v int) bool { return v == id })
}

// ClearSubtasks empties the subtask list.
func (e *Epic) ClearSubtasks() {
	e.subtaskIDs = nil
}

// Recompute derives status, duration and start/end times from the given
// subtasks. It reads nothing but its argument.
func (e *Epic) Recompute(subtasks []Subtask) {
	statuses := make([]Status, 0, len(subtasks))
	var (
		total time.Duration
		start time.Time
		end   time.Time
	)
	for _, s := range subtasks {
		statuses = append(statuses, s.Status)
		total += s.Duration
		if !s.IsScheduled() {
			continue
		}
		if start.IsZero() || s.StartTime.Before(start) {
			start = s.StartTime
		}
		if se := s.EndTime(); end.IsZero() || se.After(end) {
			end = se
		}
	}
	e.status = aggregateStatus(statuses)
	e.duration = total
	e.startTime = start
	e.endTime = end
}

// Clone returns a deep copy of the epic.
func (e Epic) Clone() Epic {
	e.subtaskIDs = slices.Clone(e.subtaskIDs)
	return e
}

// Compile-time checks.
var (
	_ Item = Task{}
	_ Item = Subtask{}
	_ Item = Epic{}
)
