package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasktracker/internal/domain"
)

// DeleteItemInput contains the parameters for deleting items.
type DeleteItemInput struct {
	Kind domain.Kind // Kind to clear when All is set; optional filter otherwise
	ID   int         // Item ID (ignored when All is set)
	All  bool        // Delete every item of Kind
}

// DeleteItemOutput describes what was removed.
type DeleteItemOutput struct {
	Item    domain.Item // The deleted item (nil when All is set)
	Removed int         // Number of items removed, including cascaded subtasks
}

// DeleteItem is the use case for deleting an item or all items of a kind.
type DeleteItem struct {
	items  domain.TaskManager
	logger domain.Logger
}

// NewDeleteItem creates a new DeleteItem use case.
func NewDeleteItem(items domain.TaskManager, logger domain.Logger) *DeleteItem {
	return &DeleteItem{
		items:  items,
		logger: logger,
	}
}

// Execute deletes the requested items.
func (uc *DeleteItem) Execute(_ context.Context, in DeleteItemInput) (*DeleteItemOutput, error) {
	if in.All {
		return uc.deleteAll(in.Kind)
	}

	item, err := locateItem(uc.items, in.Kind, in.ID)
	if err != nil {
		return nil, err
	}

	removed := 1
	switch item.Kind() {
	case domain.KindTask:
		err = uc.items.DeleteTask(in.ID)
	case domain.KindSubtask:
		err = uc.items.DeleteSubtask(in.ID)
	case domain.KindEpic:
		removed += len(item.(domain.Epic).SubtaskIDs())
		err = uc.items.DeleteEpic(in.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", domain.ItemRef(item), err)
	}

	uc.logger.Info(in.ID, "item", fmt.Sprintf("deleted %s (%d removed)", domain.ItemRef(item), removed))
	return &DeleteItemOutput{Item: item, Removed: removed}, nil
}

func (uc *DeleteItem) deleteAll(kind domain.Kind) (*DeleteItemOutput, error) {
	var (
		removed int
		err     error
	)
	switch kind {
	case domain.KindTask:
		removed = len(uc.items.Tasks())
		err = uc.items.DeleteAllTasks()
	case domain.KindSubtask:
		removed = len(uc.items.Subtasks())
		err = uc.items.DeleteAllSubtasks()
	case domain.KindEpic:
		removed = len(uc.items.Epics()) + len(uc.items.Subtasks())
		// Subtasks without an epic survive.
		for _, s := range uc.items.Subtasks() {
			if !s.HasEpic() {
				removed--
			}
		}
		err = uc.items.DeleteAllEpics()
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("delete all %ss: %w", kindLabel(kind), err)
	}

	uc.logger.Info(0, "item", fmt.Sprintf("deleted all %ss (%d removed)", kindLabel(kind), removed))
	return &DeleteItemOutput{Removed: removed}, nil
}
