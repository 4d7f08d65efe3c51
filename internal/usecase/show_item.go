package usecase

import (
	"context"

	"github.com/runoshun/tasktracker/internal/domain"
)

// ShowItemInput contains the parameters for showing an item.
type ShowItemInput struct {
	Kind domain.Kind // Restrict the lookup to one kind (optional)
	ID   int         // Item ID
}

// ShowItemOutput contains the shown item.
type ShowItemOutput struct {
	Item     domain.Item      // The item
	Subtasks []domain.Subtask // Subtasks when the item is an epic
}

// ShowItem is the use case for viewing a single item. Viewing records the
// item in the view history.
type ShowItem struct {
	items domain.TaskManager
}

// NewShowItem creates a new ShowItem use case.
func NewShowItem(items domain.TaskManager) *ShowItem {
	return &ShowItem{items: items}
}

// Execute looks up the item by ID.
func (uc *ShowItem) Execute(_ context.Context, in ShowItemInput) (*ShowItemOutput, error) {
	item, err := viewItem(uc.items, in.Kind, in.ID)
	if err != nil {
		return nil, err
	}

	out := &ShowItemOutput{Item: item}
	if item.Kind() == domain.KindEpic {
		subtasks, err := uc.items.EpicSubtasks(item.ItemID())
		if err != nil {
			return nil, err
		}
		out.Subtasks = subtasks
	}
	return out, nil
}
