package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/tasktracker/internal/domain"
	"github.com/runoshun/tasktracker/internal/tracker"
)

// ImportPlanInput contains the parameters for importing a YAML plan.
type ImportPlanInput struct {
	Content []byte // YAML plan content
	DryRun  bool   // If true, validate against the current items without storing anything
}

// ImportPlanOutput contains the items created from the plan, in plan order.
// In dry-run mode the IDs are provisional.
type ImportPlanOutput struct {
	Items []domain.Item
}

// ImportPlan is the use case for creating a batch of items from a plan.
//
// The whole plan is first applied to a scratch copy of the current items, so
// an overlapping interval anywhere in the plan rejects it before anything is
// stored.
type ImportPlan struct {
	items  domain.TaskManager
	logger domain.Logger
}

// NewImportPlan creates a new ImportPlan use case.
func NewImportPlan(items domain.TaskManager, logger domain.Logger) *ImportPlan {
	return &ImportPlan{
		items:  items,
		logger: logger,
	}
}

// Execute imports the plan.
func (uc *ImportPlan) Execute(_ context.Context, in ImportPlanInput) (*ImportPlanOutput, error) {
	plan, err := domain.ParsePlan(in.Content)
	if err != nil {
		return nil, err
	}

	scratch, err := tracker.Restore(domain.SnapshotOf(uc.items).Records())
	if err != nil {
		return nil, fmt.Errorf("copy current items: %w", err)
	}
	preview, err := applyPlan(scratch, plan)
	if err != nil {
		return nil, err
	}
	if in.DryRun {
		return &ImportPlanOutput{Items: preview}, nil
	}

	created, err := applyPlan(uc.items, plan)
	if err != nil {
		return nil, err
	}
	for _, item := range created {
		uc.logger.Info(item.ItemID(), "import", fmt.Sprintf("created %s: %q", domain.ItemRef(item), item.Heading()))
	}
	uc.logger.Info(0, "import", fmt.Sprintf("imported %d items", len(created)))
	return &ImportPlanOutput{Items: created}, nil
}

func applyPlan(m domain.TaskManager, plan *domain.Plan) ([]domain.Item, error) {
	var created []domain.Item
	for i, p := range plan.Tasks {
		task, err := p.Task()
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		stored, err := m.CreateTask(task)
		if err != nil {
			return nil, fmt.Errorf("task %d %q: %w", i+1, p.Title, err)
		}
		created = append(created, stored)
	}
	for i, pe := range plan.Epics {
		epic, err := m.CreateEpic(domain.NewEpic(pe.Title, pe.Description))
		if err != nil {
			return nil, fmt.Errorf("epic %d %q: %w", i+1, pe.Title, err)
		}
		created = append(created, epic)
		for j, p := range pe.Subtasks {
			task, err := p.Task()
			if err != nil {
				return nil, fmt.Errorf("epic %d subtask %d: %w", i+1, j+1, err)
			}
			sub, err := m.CreateSubtask(domain.Subtask{Task: task, EpicID: epic.ID})
			if err != nil {
				return nil, fmt.Errorf("epic %d subtask %d %q: %w", i+1, j+1, p.Title, err)
			}
			created = append(created, sub)
		}
	}
	return created, nil
}
