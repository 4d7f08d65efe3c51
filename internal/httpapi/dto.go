package httpapi

import (
	"fmt"
	"time"

	"github.com/runoshun/tasktracker/internal/domain"
)

// itemJSON is the response body for a task, subtask or epic.
// Durations are whole minutes; times use domain.TimeLayout.
// Fields are ordered to minimize memory padding.
type itemJSON struct {
	Type        domain.Kind   `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      domain.Status `json:"status"`
	StartTime   string        `json:"startTime,omitempty"`
	EndTime     string        `json:"endTime,omitempty"`
	Subtasks    []int         `json:"subtasks,omitempty"`
	ID          int           `json:"id"`
	EpicID      int           `json:"epicId,omitempty"`
	Duration    int64         `json:"duration"`
}

// taskRequest is the request body for POST /tasks and POST /subtasks.
// An ID of zero creates, anything else updates.
// Fields are ordered to minimize memory padding.
type taskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	StartTime   string `json:"startTime"`
	ID          int    `json:"id" binding:"min=0"`
	EpicID      int    `json:"epicId" binding:"min=0"`
	Duration    int64  `json:"duration" binding:"min=0"`
}

// epicRequest is the request body for POST /epics.
type epicRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ID          int    `json:"id" binding:"min=0"`
}

func (r taskRequest) task() (domain.Task, error) {
	status, err := domain.ParseStatus(r.Status)
	if err != nil {
		return domain.Task{}, err
	}
	start, err := domain.ParseStartTime(r.StartTime)
	if err != nil {
		return domain.Task{}, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	t := domain.NewTask(r.Title, r.Description)
	t.ID = r.ID
	t.Status = status
	t.StartTime = start
	t.Duration = time.Duration(r.Duration) * time.Minute
	return t, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.TimeLayout)
}

func taskJSON(t domain.Task) itemJSON {
	return itemJSON{
		ID:          t.ID,
		Type:        domain.KindTask,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Duration:    int64(t.Duration / time.Minute),
		StartTime:   formatTime(t.StartTime),
		EndTime:     formatTime(t.EndTime()),
	}
}

func subtaskJSON(s domain.Subtask) itemJSON {
	j := taskJSON(s.Task)
	j.Type = domain.KindSubtask
	j.EpicID = s.EpicID
	return j
}

func epicJSON(e domain.Epic) itemJSON {
	return itemJSON{
		ID:          e.ID,
		Type:        domain.KindEpic,
		Title:       e.Title,
		Description: e.Description,
		Status:      e.Status(),
		Duration:    int64(e.Duration() / time.Minute),
		StartTime:   formatTime(e.StartTime()),
		EndTime:     formatTime(e.EndTime()),
		Subtasks:    e.SubtaskIDs(),
	}
}

func toJSON(item domain.Item) itemJSON {
	switch v := item.(type) {
	case domain.Subtask:
		return subtaskJSON(v)
	case domain.Epic:
		return epicJSON(v)
	case domain.Task:
		return taskJSON(v)
	default:
		return itemJSON{ID: item.ItemID(), Type: item.Kind(), Title: item.Heading()}
	}
}

func listJSON[T any](items []T, conv func(T) itemJSON) []itemJSON {
	out := make([]itemJSON, 0, len(items))
	for _, it := range items {
		out = append(out, conv(it))
	}
	return out
}
