package usecase

import (
	"context"
	"time"

	"github.com/runoshun/tasktracker/internal/domain"
)

// ShowPrioritizedInput contains the parameters for listing scheduled work.
type ShowPrioritizedInput struct {
	From time.Time // Skip items ending at or before this time (zero = no filter)
}

// ShowPrioritizedOutput contains scheduled tasks and subtasks by start time.
type ShowPrioritizedOutput struct {
	Items []domain.Item
}

// ShowPrioritized is the use case for listing scheduled items in start order.
type ShowPrioritized struct {
	items domain.TaskManager
}

// NewShowPrioritized creates a new ShowPrioritized use case.
func NewShowPrioritized(items domain.TaskManager) *ShowPrioritized {
	return &ShowPrioritized{items: items}
}

// Execute returns the prioritized items.
func (uc *ShowPrioritized) Execute(_ context.Context, in ShowPrioritizedInput) (*ShowPrioritizedOutput, error) {
	items := uc.items.Prioritized()
	if in.From.IsZero() {
		return &ShowPrioritizedOutput{Items: items}, nil
	}

	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if end, ok := endTime(it); ok && !end.After(in.From) {
			continue
		}
		out = append(out, it)
	}
	return &ShowPrioritizedOutput{Items: out}, nil
}

func endTime(item domain.Item) (time.Time, bool) {
	switch v := item.(type) {
	case domain.Task:
		return v.EndTime(), v.IsScheduled()
	case domain.Subtask:
		return v.EndTime(), v.IsScheduled()
	default:
		return time.Time{}, false
	}
}
