package tracker

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/runoshun/tasktracker/internal/domain"
)

// Restore builds a Store from persisted records.
//
// Epics are replayed first so subtasks can attach to them, then tasks and
// subtasks in ID order. Records carry no position, so an epic's subtasks
// come back in ID order even if a move had reordered them.
//
// Records go through the same checks as newly created items: a duplicate ID,
// an invalid record or an overlapping interval fails the whole load. Restored items keep their IDs and the next allocated ID is
// one past the highest restored ID.
func Restore(records []domain.Record) (*Store, error) {
	ordered := slices.Clone(records)
	slices.SortStableFunc(ordered, func(a, b domain.Record) int {
		if c := cmp.Compare(replayRank(a.Kind), replayRank(b.Kind)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	s := New()
	for _, r := range ordered {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if err := s.replay(r); err != nil {
			return nil, fmt.Errorf("restore %s #%d: %w", kindLabel(r.Kind), r.ID, err)
		}
	}
	return s, nil
}

func (s *Store) replay(r domain.Record) error {
	var err error
	switch r.Kind {
	case domain.KindEpic:
		_, err = s.addEpic(r.Epic(), r.ID)
	case domain.KindTask:
		_, err = s.addTask(r.Task(), r.ID)
	case domain.KindSubtask:
		_, err = s.addSubtask(r.Subtask(), r.ID)
	default:
		err = fmt.Errorf("%w: %q", domain.ErrInvalidKind, r.Kind)
	}
	return err
}

func replayRank(k domain.Kind) int {
	if k == domain.KindEpic {
		return 0
	}
	return 1
}
