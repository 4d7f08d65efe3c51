package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_IsValid(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, Status("todo").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"NEW", StatusNew, false},
		{"new", StatusNew, false},
		{"in_progress", StatusInProgress, false},
		{"in-progress", StatusInProgress, false},
		{" DONE ", StatusDone, false},
		{"", StatusNew, false},
		{"closed", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_Display(t *testing.T) {
	assert.Equal(t, "New", StatusNew.Display())
	assert.Equal(t, "In Progress", StatusInProgress.Display())
	assert.Equal(t, "Done", StatusDone.Display())
	assert.Equal(t, "other", Status("other").Display())
}

func TestAggregateStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"empty", nil, StatusNew},
		{"all new", []Status{StatusNew, StatusNew}, StatusNew},
		{"all done", []Status{StatusDone, StatusDone}, StatusDone},
		{"single in progress", []Status{StatusInProgress}, StatusInProgress},
		{"new and done", []Status{StatusNew, StatusDone}, StatusInProgress},
		{"mixed", []Status{StatusNew, StatusInProgress, StatusDone}, StatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, aggregateStatus(tt.statuses))
		})
	}
}
