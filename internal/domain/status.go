package domain

import (
	"fmt"
	"strings"
)

// Status represents the progress state of a work item.
type Status string

const (
	StatusNew        Status = "NEW"         // Created, not started
	StatusInProgress Status = "IN_PROGRESS" // Being worked on
	StatusDone       Status = "DONE"        // Finished
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{
		StatusNew,
		StatusInProgress,
		StatusDone,
	}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// ParseStatus parses a status string case-insensitively.
// An empty string yields StatusNew, matching how persisted rows without a status load.
func ParseStatus(s string) (Status, error) {
	if strings.TrimSpace(s) == "" {
		return StatusNew, nil
	}
	normalized := Status(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	if !normalized.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return normalized, nil
}

// aggregateStatus derives an epic status from its subtask statuses.
// No subtasks or all NEW gives NEW, all DONE gives DONE, anything else is IN_PROGRESS.
func aggregateStatus(statuses []Status) Status {
	if len(statuses) == 0 {
		return StatusNew
	}
	allNew, allDone := true, true
	for _, s := range statuses {
		if s != StatusNew {
			allNew = false
		}
		if s != StatusDone {
			allDone = false
		}
	}
	switch {
	case allNew:
		return StatusNew
	case allDone:
		return StatusDone
	default:
		return StatusInProgress
	}
}
