// Package schedule keeps scheduled tasks and subtasks ordered by start time
// and answers time-conflict queries.
package schedule

import (
	"math"
	"strings"
	"time"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/runoshun/tasktracker/internal/domain"
)

// Slot is an indexed time interval owned by a task or subtask.
// Fields are ordered to minimize memory padding.
type Slot struct {
	Interval domain.Interval
	Kind     domain.Kind
	ID       int
}

// SlotOf returns the slot of a task or subtask.
func SlotOf(item domain.Item) (Slot, bool) {
	var iv domain.Interval
	switch v := item.(type) {
	case domain.Task:
		iv = v.Interval()
	case domain.Subtask:
		iv = v.Interval()
	default:
		return Slot{}, false
	}
	return Slot{ID: item.ItemID(), Kind: item.Kind(), Interval: iv}, true
}

type ref struct {
	kind domain.Kind
	id   int
}

type slotKey struct {
	start time.Time
	kind  domain.Kind
	id    int
}

func compareKeys(a, b interface{}) int {
	ka, kb := a.(slotKey), b.(slotKey)
	if c := ka.start.Compare(kb.start); c != 0 {
		return c
	}
	if ka.id != kb.id {
		if ka.id < kb.id {
			return -1
		}
		return 1
	}
	return strings.Compare(string(ka.kind), string(kb.kind))
}

// Index holds scheduled slots ordered by (start, id).
// Unscheduled slots are never stored.
//
// Index is not safe for concurrent use.
type Index struct {
	tree *redblacktree.Tree
	keys map[ref]slotKey
}

// New creates an empty Index.
func New() *Index {
	return &Index{
		tree: redblacktree.NewWith(compareKeys),
		keys: make(map[ref]slotKey),
	}
}

// Insert adds the slot, replacing any slot with the same kind and id.
// Unscheduled slots only remove the previous entry.
func (x *Index) Insert(s Slot) {
	x.Remove(s.Kind, s.ID)
	if !s.Interval.IsScheduled() {
		return
	}
	key := slotKey{start: s.Interval.Start, kind: s.Kind, id: s.ID}
	x.tree.Put(key, s)
	x.keys[ref{kind: s.Kind, id: s.ID}] = key
}

// Remove deletes the slot with the given kind and id, if present.
func (x *Index) Remove(kind domain.Kind, id int) {
	r := ref{kind: kind, id: id}
	key, ok := x.keys[r]
	if !ok {
		return
	}
	x.tree.Remove(key)
	delete(x.keys, r)
}

// Contains reports whether a slot with the given kind and id is indexed.
func (x *Index) Contains(kind domain.Kind, id int) bool {
	_, ok := x.keys[ref{kind: kind, id: id}]
	return ok
}

// Len returns the number of indexed slots.
func (x *Index) Len() int {
	return x.tree.Size()
}

// HasConflict reports whether any indexed slot other than the candidate's
// own entry intersects the candidate interval.
func (x *Index) HasConflict(candidate Slot) bool {
	_, ok := x.FirstConflict(candidate)
	return ok
}

// FirstConflict returns the earliest indexed slot intersecting the candidate.
//
// Indexed non-empty intervals are pairwise disjoint, so their end times
// increase with their start times. Only the slots starting before the
// candidate ends need to be visited going forward, and going backward the
// scan stops at the first non-empty slot that ends at or before the candidate
// start.
func (x *Index) FirstConflict(candidate Slot) (Slot, bool) {
	iv := candidate.Interval
	if !iv.IsScheduled() || iv.Duration <= 0 || x.tree.Empty() {
		return Slot{}, false
	}
	self := ref{kind: candidate.Kind, id: candidate.ID}
	probe := slotKey{start: iv.Start, id: math.MinInt}

	var found *Slot
	for n, _ := x.tree.Floor(probe); n != nil; n = predecessor(n) {
		s := n.Value.(Slot)
		if (ref{kind: s.Kind, id: s.ID}) == self || s.Interval.Duration <= 0 {
			continue
		}
		if s.Interval.Intersects(iv) {
			found = &s
			continue
		}
		if !s.Interval.End().After(iv.Start) {
			break
		}
	}
	if found != nil {
		return *found, true
	}

	end := iv.End()
	for n, _ := x.tree.Ceiling(probe); n != nil; n = successor(n) {
		s := n.Value.(Slot)
		if !s.Interval.Start.Before(end) {
			break
		}
		if (ref{kind: s.Kind, id: s.ID}) == self {
			continue
		}
		if s.Interval.Intersects(iv) {
			return s, true
		}
	}
	return Slot{}, false
}

// Ordered returns all slots in ascending (start, id) order.
func (x *Index) Ordered() []Slot {
	slots := make([]Slot, 0, x.tree.Size())
	it := x.tree.Iterator()
	for it.Next() {
		slots = append(slots, it.Value().(Slot))
	}
	return slots
}

// Clear removes all slots.
func (x *Index) Clear() {
	x.tree.Clear()
	clear(x.keys)
}

func successor(n *redblacktree.Node) *redblacktree.Node {
	if n.Right != nil {
		n = n.Right
		for n.Left != nil {
			n = n.Left
		}
		return n
	}
	p := n.Parent
	for p != nil && n == p.Right {
		n, p = p, p.Parent
	}
	return p
}

func predecessor(n *redblacktree.Node) *redblacktree.Node {
	if n.Left != nil {
		n = n.Left
		for n.Right != nil {
			n = n.Right
		}
		return n
	}
	p := n.Parent
	for p != nil && n == p.Left {
		n, p = p, p.Parent
	}
	return p
}
