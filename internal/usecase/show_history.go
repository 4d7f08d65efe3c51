package usecase

import (
	"context"

	"github.com/runoshun/tasktracker/internal/domain"
)

// ShowHistoryInput contains the parameters for showing the view history.
type ShowHistoryInput struct {
	Limit int // Only return the most recent entries (0 = all)
}

// ShowHistoryOutput contains viewed items from least to most recent.
type ShowHistoryOutput struct {
	Items []domain.Item
}

// ShowHistory is the use case for reading the view history.
type ShowHistory struct {
	items domain.TaskManager
}

// NewShowHistory creates a new ShowHistory use case.
func NewShowHistory(items domain.TaskManager) *ShowHistory {
	return &ShowHistory{items: items}
}

// Execute returns the view history.
func (uc *ShowHistory) Execute(_ context.Context, in ShowHistoryInput) (*ShowHistoryOutput, error) {
	items := uc.items.History()
	if in.Limit > 0 && len(items) > in.Limit {
		items = items[len(items)-in.Limit:]
	}
	return &ShowHistoryOutput{Items: items}, nil
}
