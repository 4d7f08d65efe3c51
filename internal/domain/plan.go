package domain

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Plan is a batch of items to create, read from a YAML file.
//
// Format:
//
//	tasks:
//	  - title: Write report
//	    start: 2025-02-28T10:00:00
//	    duration: 1h
//	epics:
//	  - title: Release
//	    subtasks:
//	      - title: Tag
//	        status: DONE
type Plan struct {
	Tasks []PlanItem `yaml:"tasks"`
	Epics []PlanEpic `yaml:"epics"`
}

// PlanItem describes a task or subtask in a plan.
// Fields are ordered to minimize memory padding.
type PlanItem struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Status      string `yaml:"status,omitempty"`
	Start       string `yaml:"start,omitempty"`
	Duration    string `yaml:"duration,omitempty"`
}

// PlanEpic describes an epic and its subtasks in a plan.
type PlanEpic struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description,omitempty"`
	Subtasks    []PlanItem `yaml:"subtasks,omitempty"`
}

// ParsePlan decodes and validates a YAML plan.
func ParsePlan(content []byte) (*Plan, error) {
	var plan Plan
	if err := yaml.Unmarshal(content, &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}
	if len(plan.Tasks) == 0 && len(plan.Epics) == 0 {
		return nil, fmt.Errorf("%w: no tasks or epics", ErrInvalidPlan)
	}
	for i, item := range plan.Tasks {
		if _, err := item.Task(); err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
	}
	for i, epic := range plan.Epics {
		if strings.TrimSpace(epic.Title) == "" {
			return nil, fmt.Errorf("epic %d: %w: title is required", i+1, ErrInvalidPlan)
		}
		for j, item := range epic.Subtasks {
			if _, err := item.Task(); err != nil {
				return nil, fmt.Errorf("epic %d subtask %d: %w", i+1, j+1, err)
			}
		}
	}
	return &plan, nil
}

// Task converts the plan item to an unsaved task.
func (p PlanItem) Task() (Task, error) {
	if strings.TrimSpace(p.Title) == "" {
		return Task{}, fmt.Errorf("%w: title is required", ErrInvalidPlan)
	}
	status, err := ParseStatus(p.Status)
	if err != nil {
		return Task{}, err
	}
	t := NewTask(p.Title, p.Description)
	t.Status = status
	if t.StartTime, err = ParseStartTime(p.Start); err != nil {
		return Task{}, err
	}
	if t.Duration, err = ParseDuration(p.Duration); err != nil {
		return Task{}, err
	}
	return t, nil
}

// ParseStartTime parses a start time in TimeLayout or RFC 3339.
// An empty string yields the zero time. Fractional seconds are dropped
// since stored start times have second precision.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(TimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (want %s)", ErrInvalidStartTime, s, TimeLayout)
	}
	return t.Truncate(time.Second), nil
}

// ParseDuration parses a Go duration ("90m", "1h30m") or a bare number of minutes.
// Durations are stored in whole minutes, so "90s" is rejected.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	var minutes int64
	if _, err := fmt.Sscanf(s, "%d", &minutes); err == nil && fmt.Sprint(minutes) == s {
		if minutes < 0 {
			return 0, fmt.Errorf("%w: %q is negative", ErrInvalidDuration, s)
		}
		return time.Duration(minutes) * time.Minute, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidDuration, s)
	}
	if d%time.Minute != 0 {
		return 0, fmt.Errorf("%w: %q is not a whole number of minutes", ErrInvalidDuration, s)
	}
	return d, nil
}
