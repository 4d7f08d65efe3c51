package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_RecordKeepsOrder(t *testing.T) {
	h := New[string]()
	h.Record(1, "a")
	h.Record(2, "b")
	h.Record(3, "c")

	assert.Equal(t, []string{"a", "b", "c"}, h.Snapshot())
	assert.Equal(t, 3, h.Len())
}

func TestHistory_RecordMovesToMostRecent(t *testing.T) {
	h := New[string]()
	h.Record(1, "t1")
	h.Record(2, "t2")
	h.Record(1, "t1")

	assert.Equal(t, []string{"t2", "t1"}, h.Snapshot())
	assert.Equal(t, 2, h.Len())
}

func TestHistory_RecordReplacesValue(t *testing.T) {
	h := New[string]()
	h.Record(1, "old")
	h.Record(1, "new")

	assert.Equal(t, []string{"new"}, h.Snapshot())
}

func TestHistory_Remove(t *testing.T) {
	tests := []struct {
		name   string
		remove int
		want   []int
	}{
		{"head", 1, []int{2, 3}},
		{"middle", 2, []int{1, 3}},
		{"tail", 3, []int{1, 2}},
		{"absent", 9, []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New[int]()
			for _, id := range []int{1, 2, 3} {
				h.Record(id, id)
			}

			h.Remove(tt.remove)

			assert.Equal(t, tt.want, h.Snapshot())
			assert.False(t, h.Contains(tt.remove))
		})
	}
}

func TestHistory_RemoveOnlyEntry(t *testing.T) {
	h := New[int]()
	h.Record(7, 7)
	h.Remove(7)

	assert.Empty(t, h.Snapshot())
	assert.Zero(t, h.Len())

	h.Record(8, 8)
	assert.Equal(t, []int{8}, h.Snapshot())
}

func TestHistory_SnapshotIsCopy(t *testing.T) {
	h := New[int]()
	h.Record(1, 1)
	h.Record(2, 2)

	snap := h.Snapshot()
	snap[0] = 100

	assert.Equal(t, []int{1, 2}, h.Snapshot())
}

func TestHistory_NoDuplicatesAfterManyViews(t *testing.T) {
	h := New[int]()
	views := []int{1, 2, 3, 2, 1, 1, 4, 3, 2}
	for _, id := range views {
		h.Record(id, id)
	}

	assert.Equal(t, []int{1, 4, 3, 2}, h.Snapshot())
}

func TestHistory_Clear(t *testing.T) {
	h := New[int]()
	h.Record(1, 1)
	h.Clear()

	assert.Empty(t, h.Snapshot())
	h.Record(2, 2)
	assert.Equal(t, []int{2}, h.Snapshot())
}
