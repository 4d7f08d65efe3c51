package tracker

import (
	"fmt"

	"github.com/runoshun/tasktracker/internal/domain"
)

// idAllocator hands out item IDs for a single Store.
// IDs start at 1 and only increase.
type idAllocator struct {
	live map[int]struct{}
	next int
}

func newIDAllocator() *idAllocator {
	return &idAllocator{next: 1, live: make(map[int]struct{})}
}

// Next returns a fresh ID and marks it live.
func (a *idAllocator) Next() int {
	for {
		id := a.next
		a.next++
		if _, taken := a.live[id]; !taken {
			a.live[id] = struct{}{}
			return id
		}
	}
}

// Check reports whether id could be reserved.
func (a *idAllocator) Check(id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: id %d must be positive", domain.ErrMalformedRecord, id)
	}
	if _, taken := a.live[id]; taken {
		return fmt.Errorf("%w: %d", domain.ErrDuplicateID, id)
	}
	return nil
}

// Reserve marks a specific ID live, for replaying persisted items.
// Later calls to Next never return it.
func (a *idAllocator) Reserve(id int) error {
	if err := a.Check(id); err != nil {
		return err
	}
	a.live[id] = struct{}{}
	if id >= a.next {
		a.next = id + 1
	}
	return nil
}

// Release marks id as no longer live. Released IDs are not handed out again
// by Next because the counter never moves backward.
func (a *idAllocator) Release(id int) {
	delete(a.live, id)
}
