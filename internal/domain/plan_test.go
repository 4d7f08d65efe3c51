package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlan(t *testing.T) {
	content := []byte(`
tasks:
  - title: Write report
    start: 2025-02-28T10:00:00
    duration: 90
epics:
  - title: Release
    description: Ship it
    subtasks:
      - title: Tag
        status: done
        duration: 30m
      - title: Announce
`)

	plan, err := ParsePlan(content)
	require.NoError(t, err)
	require.Len(t, plan.Tasks, 1)
	require.Len(t, plan.Epics, 1)
	require.Len(t, plan.Epics[0].Subtasks, 2)

	task, err := plan.Tasks[0].Task()
	require.NoError(t, err)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, 90*time.Minute, task.Duration)
	assert.Equal(t, time.Date(2025, 2, 28, 10, 0, 0, 0, time.Local), task.StartTime)

	tag, err := plan.Epics[0].Subtasks[0].Task()
	require.NoError(t, err)
	assert.Equal(t, StatusDone, tag.Status)
	assert.Equal(t, 30*time.Minute, tag.Duration)
}

func TestParsePlan_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ``},
		{"not yaml", `tasks: [`},
		{"missing title", "tasks:\n  - description: x\n"},
		{"epic missing title", "epics:\n  - subtasks: []\n"},
		{"bad status", "tasks:\n  - title: a\n    status: closed\n"},
		{"bad duration", "tasks:\n  - title: a\n    duration: soon\n"},
		{"bad start", "tasks:\n  - title: a\n    start: tomorrow\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePlan([]byte(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("45")
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, d)

	d, err = ParseDuration("1h30m")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)

	d, err = ParseDuration("")
	require.NoError(t, err)
	assert.Zero(t, d)

	_, err = ParseDuration("-5")
	assert.Error(t, err)

	_, err = ParseDuration("90s")
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = ParseDuration("1m30s")
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestParseStartTime_DropsFractionalSeconds(t *testing.T) {
	got, err := ParseStartTime("2025-03-01T10:00:05.250+02:00")
	require.NoError(t, err)
	assert.Zero(t, got.Nanosecond())
	assert.Equal(t, 5, got.Second())

	_, err = ParseStartTime("tomorrow")
	assert.ErrorIs(t, err, ErrInvalidStartTime)
}
