package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runoshun/tasktracker/internal/domain"
)

// EditItemInput contains the parameters for editing an item.
// Nil fields are left unchanged.
// Fields are ordered to minimize memory padding.
type EditItemInput struct {
	Title       *string        // New title
	Description *string        // New description
	Status      *domain.Status // New status (tasks and subtasks)
	StartTime   *time.Time     // New start; zero time unschedules (tasks and subtasks)
	Duration    *time.Duration // New duration (tasks and subtasks)
	EpicID      *int           // Move to another epic (subtasks)
	ID          int            // Item ID
}

func (in EditItemInput) hasScheduleFields() bool {
	return in.Status != nil || in.StartTime != nil || in.Duration != nil
}

func (in EditItemInput) empty() bool {
	return in.Title == nil && in.Description == nil && !in.hasScheduleFields() && in.EpicID == nil
}

// EditItemOutput contains the edited item.
type EditItemOutput struct {
	Item domain.Item
}

// EditItem is the use case for partially updating an item.
type EditItem struct {
	items  domain.TaskManager
	logger domain.Logger
}

// NewEditItem creates a new EditItem use case.
func NewEditItem(items domain.TaskManager, logger domain.Logger) *EditItem {
	return &EditItem{
		items:  items,
		logger: logger,
	}
}

// Execute applies the given fields to the stored item.
func (uc *EditItem) Execute(_ context.Context, in EditItemInput) (*EditItemOutput, error) {
	if in.empty() {
		return nil, domain.ErrNoFieldsToUpdate
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, domain.ErrEmptyTitle
	}

	var updated domain.Item
	err := domain.Atomically(uc.items, func(m domain.TaskManager) error {
		current, err := locateItem(m, "", in.ID)
		if err != nil {
			return err
		}
		updated, err = apply(m, current, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info(in.ID, "item", fmt.Sprintf("updated %s", domain.ItemRef(updated)))
	return &EditItemOutput{Item: updated}, nil
}

// apply writes the input fields over current through m.
func apply(m domain.TaskManager, current domain.Item, in EditItemInput) (domain.Item, error) {
	var (
		updated domain.Item
		err     error
	)
	switch v := current.(type) {
	case domain.Task:
		if in.EpicID != nil {
			return nil, fmt.Errorf("%w: task #%d cannot be moved to an epic", domain.ErrInvalidKind, v.ID)
		}
		applyTaskFields(&v, in)
		updated, err = m.UpdateTask(v)
	case domain.Subtask:
		applyTaskFields(&v.Task, in)
		if in.EpicID != nil {
			if _, lookupErr := m.EpicSubtasks(*in.EpicID); lookupErr != nil {
				return nil, fmt.Errorf("get epic: %w", lookupErr)
			}
			v.EpicID = *in.EpicID
		}
		updated, err = m.UpdateSubtask(v)
	case domain.Epic:
		if in.hasScheduleFields() || in.EpicID != nil {
			return nil, domain.ErrDerivedField
		}
		if in.Title != nil {
			v.Title = *in.Title
		}
		if in.Description != nil {
			v.Description = *in.Description
		}
		updated, err = m.UpdateEpic(v)
	}
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", domain.ItemRef(current), err)
	}
	return updated, nil
}

func applyTaskFields(t *domain.Task, in EditItemInput) {
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.StartTime != nil {
		t.StartTime = *in.StartTime
	}
	if in.Duration != nil {
		t.Duration = *in.Duration
	}
}
