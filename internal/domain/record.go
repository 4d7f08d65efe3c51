package domain

import (
	"fmt"
	"slices"
	"time"
)

// TimeLayout is the textual layout of start times in persisted records.
const TimeLayout = "2006-01-02T15:04:05"

// Record is the flat persisted form of a single item.
// Epic records never carry EpicID, Duration or StartTime.
// Fields are ordered to minimize memory padding.
type Record struct {
	StartTime   time.Time
	Kind        Kind
	Title       string
	Status      Status
	Description string
	Duration    time.Duration
	ID          int
	EpicID      int
}

// RecordOfTask converts a task to a record.
func RecordOfTask(t Task) Record {
	return Record{
		ID:          t.ID,
		Kind:        KindTask,
		Title:       t.Title,
		Status:      t.Status,
		Description: t.Description,
		Duration:    t.Duration,
		StartTime:   t.StartTime,
	}
}

// RecordOfSubtask converts a subtask to a record.
func RecordOfSubtask(s Subtask) Record {
	r := RecordOfTask(s.Task)
	r.Kind = KindSubtask
	r.EpicID = s.EpicID
	return r
}

// RecordOfEpic converts an epic to a record. Derived fields are left out.
func RecordOfEpic(e Epic) Record {
	return Record{
		ID:          e.ID,
		Kind:        KindEpic,
		Title:       e.Title,
		Status:      e.Status(),
		Description: e.Description,
	}
}

// Records flattens a snapshot into records ordered by ID.
func (s Snapshot) Records() []Record {
	records := make([]Record, 0, len(s.Tasks)+len(s.Epics)+len(s.Subtasks))
	for _, t := range s.Tasks {
		records = append(records, RecordOfTask(t))
	}
	for _, st := range s.Subtasks {
		records = append(records, RecordOfSubtask(st))
	}
	for _, e := range s.Epics {
		records = append(records, RecordOfEpic(e))
	}
	slices.SortFunc(records, func(a, b Record) int {
		return a.ID - b.ID
	})
	return records
}

// Task converts a TASK record back to a task.
func (r Record) Task() Task {
	return Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Duration:    r.Duration,
		StartTime:   r.StartTime,
	}
}

// Subtask converts a SUBTASK record back to a subtask.
func (r Record) Subtask() Subtask {
	return Subtask{Task: r.Task(), EpicID: r.EpicID}
}

// Epic converts an EPIC record back to an epic with no subtasks.
func (r Record) Epic() Epic {
	e := NewEpic(r.Title, r.Description)
	e.ID = r.ID
	return e
}

// Validate checks the fields a record must carry to be replayed.
func (r Record) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("%w: id %d must be positive", ErrMalformedRecord, r.ID)
	}
	switch r.Kind {
	case KindTask, KindEpic, KindSubtask:
	default:
		return fmt.Errorf("%w: id %d: unknown kind %q", ErrMalformedRecord, r.ID, r.Kind)
	}
	if !r.Status.IsValid() {
		return fmt.Errorf("%w: id %d: unknown status %q", ErrMalformedRecord, r.ID, r.Status)
	}
	if r.Duration < 0 {
		return fmt.Errorf("%w: id %d: negative duration", ErrMalformedRecord, r.ID)
	}
	return nil
}
