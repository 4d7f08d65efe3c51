// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runoshun/tasktracker/internal/domain"
)

// CreateItemInput contains the parameters for creating a task, epic or subtask.
// Fields are ordered to minimize memory padding.
type CreateItemInput struct {
	StartTime   time.Time     // Planned start (zero = not scheduled; ignored for epics)
	Kind        domain.Kind   // Item kind (required)
	Title       string        // Title (required)
	Description string        // Description (optional)
	Status      domain.Status // Status (empty = NEW; ignored for epics)
	Duration    time.Duration // Planned duration (ignored for epics)
	EpicID      int           // Owning epic (required for subtasks)
}

// CreateItemOutput contains the result of creating an item.
type CreateItemOutput struct {
	Item domain.Item // The stored item with its assigned ID
}

// CreateItem is the use case for creating an item.
type CreateItem struct {
	items  domain.TaskManager
	logger domain.Logger
}

// NewCreateItem creates a new CreateItem use case.
func NewCreateItem(items domain.TaskManager, logger domain.Logger) *CreateItem {
	return &CreateItem{
		items:  items,
		logger: logger,
	}
}

// Execute creates a new item with the given input.
func (uc *CreateItem) Execute(_ context.Context, in CreateItemInput) (*CreateItemOutput, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.ErrEmptyTitle
	}

	var (
		item domain.Item
		err  error
	)
	switch in.Kind {
	case domain.KindTask:
		item, err = uc.items.CreateTask(uc.task(in))
	case domain.KindEpic:
		item, err = uc.items.CreateEpic(domain.NewEpic(in.Title, in.Description))
	case domain.KindSubtask:
		if in.EpicID == 0 {
			return nil, domain.ErrEpicRequired
		}
		subtask := domain.Subtask{Task: uc.task(in), EpicID: in.EpicID}
		err = domain.Atomically(uc.items, func(m domain.TaskManager) error {
			if _, lookupErr := m.EpicSubtasks(in.EpicID); lookupErr != nil {
				return fmt.Errorf("get epic: %w", lookupErr)
			}
			created, createErr := m.CreateSubtask(subtask)
			item = created
			return createErr
		})
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidKind, in.Kind)
	}
	if err != nil {
		// A failed save still stored the item in memory.
		if item != nil && item.ItemID() != 0 {
			uc.logger.Error(item.ItemID(), "item", fmt.Sprintf("created but not saved: %v", err))
		}
		return nil, fmt.Errorf("create %s: %w", kindLabel(in.Kind), err)
	}

	uc.logger.Info(item.ItemID(), "item", fmt.Sprintf("created %s: %q", domain.ItemRef(item), in.Title))
	return &CreateItemOutput{Item: item}, nil
}

func (uc *CreateItem) task(in CreateItemInput) domain.Task {
	t := domain.NewTask(in.Title, in.Description)
	if in.Status != "" {
		t.Status = in.Status
	}
	t.StartTime = in.StartTime
	t.Duration = in.Duration
	return t
}
