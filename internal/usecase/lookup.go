package usecase

import (
	"errors"
	"fmt"

	"github.com/runoshun/tasktracker/internal/domain"
)

// viewItem fetches an item through the Get* calls so the view is recorded
// in the history. kind may be empty to search all kinds.
func viewItem(m domain.TaskManager, kind domain.Kind, id int) (domain.Item, error) {
	lookups := []struct {
		get  func(int) (domain.Item, error)
		kind domain.Kind
	}{
		{kind: domain.KindTask, get: func(id int) (domain.Item, error) { return m.GetTask(id) }},
		{kind: domain.KindEpic, get: func(id int) (domain.Item, error) { return m.GetEpic(id) }},
		{kind: domain.KindSubtask, get: func(id int) (domain.Item, error) { return m.GetSubtask(id) }},
	}
	for _, l := range lookups {
		if kind != "" && kind != l.kind {
			continue
		}
		item, err := l.get(id)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	return nil, notFound(kind, id)
}

// locateItem finds an item without touching the view history.
func locateItem(m domain.TaskManager, kind domain.Kind, id int) (domain.Item, error) {
	if kind == "" || kind == domain.KindTask {
		for _, t := range m.Tasks() {
			if t.ID == id {
				return t, nil
			}
		}
	}
	if kind == "" || kind == domain.KindEpic {
		for _, e := range m.Epics() {
			if e.ID == id {
				return e, nil
			}
		}
	}
	if kind == "" || kind == domain.KindSubtask {
		for _, s := range m.Subtasks() {
			if s.ID == id {
				return s, nil
			}
		}
	}
	return nil, notFound(kind, id)
}

func notFound(kind domain.Kind, id int) error {
	label := "item"
	if kind != "" {
		label = kindLabel(kind)
	}
	return fmt.Errorf("%s #%d: %w", label, id, domain.ErrNotFound)
}

func kindLabel(kind domain.Kind) string {
	switch kind {
	case domain.KindEpic:
		return "epic"
	case domain.KindSubtask:
		return "subtask"
	default:
		return "task"
	}
}
