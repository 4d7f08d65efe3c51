package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasktracker/internal/domain"
)

// ListItemsInput contains the parameters for listing items.
type ListItemsInput struct {
	Kind   domain.Kind   // Only list this kind (optional)
	Status domain.Status // Only list items in this status (optional)
}

// ListItemsOutput contains the listed items, each ordered by ID.
type ListItemsOutput struct {
	Tasks    []domain.Task
	Epics    []domain.Epic
	Subtasks []domain.Subtask
}

// Total returns the number of listed items.
func (o *ListItemsOutput) Total() int {
	return len(o.Tasks) + len(o.Epics) + len(o.Subtasks)
}

// ListItems is the use case for listing items. Listing does not touch the
// view history.
type ListItems struct {
	items domain.TaskManager
}

// NewListItems creates a new ListItems use case.
func NewListItems(items domain.TaskManager) *ListItems {
	return &ListItems{items: items}
}

// Execute lists the items matching the input filters.
func (uc *ListItems) Execute(_ context.Context, in ListItemsInput) (*ListItemsOutput, error) {
	switch in.Kind {
	case "", domain.KindTask, domain.KindEpic, domain.KindSubtask:
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidKind, in.Kind)
	}
	if in.Status != "" && !in.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, in.Status)
	}

	out := &ListItemsOutput{}
	if in.Kind == "" || in.Kind == domain.KindTask {
		out.Tasks = filterStatus(uc.items.Tasks(), in.Status, func(t domain.Task) domain.Status { return t.Status })
	}
	if in.Kind == "" || in.Kind == domain.KindEpic {
		out.Epics = filterStatus(uc.items.Epics(), in.Status, func(e domain.Epic) domain.Status { return e.Status() })
	}
	if in.Kind == "" || in.Kind == domain.KindSubtask {
		out.Subtasks = filterStatus(uc.items.Subtasks(), in.Status, func(s domain.Subtask) domain.Status { return s.Status })
	}
	return out, nil
}

func filterStatus[T any](items []T, status domain.Status, statusOf func(T) domain.Status) []T {
	if status == "" {
		return items
	}
	out := items[:0]
	for _, it := range items {
		if statusOf(it) == status {
			out = append(out, it)
		}
	}
	return out
}
