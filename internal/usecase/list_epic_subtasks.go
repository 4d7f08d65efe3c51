package usecase

import (
	"context"

	"github.com/runoshun/tasktracker/internal/domain"
)

// ListEpicSubtasksInput contains the parameters for listing an epic's subtasks.
type ListEpicSubtasksInput struct {
	EpicID int
}

// ListEpicSubtasksOutput contains the subtasks in the epic's order.
type ListEpicSubtasksOutput struct {
	Subtasks []domain.Subtask
}

// ListEpicSubtasks is the use case for listing the subtasks of one epic.
type ListEpicSubtasks struct {
	items domain.TaskManager
}

// NewListEpicSubtasks creates a new ListEpicSubtasks use case.
func NewListEpicSubtasks(items domain.TaskManager) *ListEpicSubtasks {
	return &ListEpicSubtasks{items: items}
}

// Execute lists the subtasks. A missing epic fails with domain.ErrNotFound.
func (uc *ListEpicSubtasks) Execute(_ context.Context, in ListEpicSubtasksInput) (*ListEpicSubtasksOutput, error) {
	subtasks, err := uc.items.EpicSubtasks(in.EpicID)
	if err != nil {
		return nil, err
	}
	return &ListEpicSubtasksOutput{Subtasks: subtasks}, nil
}
