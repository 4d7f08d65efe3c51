package usecase_test

import (
	"time"

	"github.com/runoshun/tasktracker/internal/domain"
	"github.com/runoshun/tasktracker/internal/testutil"
	"github.com/runoshun/tasktracker/internal/tracker"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 2, 28, hour, minute, 0, 0, time.Local)
}

func newFixture() (*tracker.Store, *testutil.MockLogger) {
	return tracker.New(), &testutil.MockLogger{}
}

func ptr[T any](v T) *T {
	return &v
}

func ids(items []domain.Item) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.ItemID())
	}
	return out
}
