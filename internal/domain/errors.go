package domain

import "errors"

// Domain errors.
var (
	ErrNotFound          = errors.New("not found")
	ErrTaskIntersection  = errors.New("time interval intersects an existing task")
	ErrDuplicateID       = errors.New("id already in use")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidKind       = errors.New("invalid item kind")
	ErrMalformedRecord   = errors.New("malformed record")
	ErrSave              = errors.New("save failed")
	ErrConfigExists      = errors.New("config file already exists")
	ErrNoFieldsToUpdate  = errors.New("no fields to update")
	ErrInvalidPlan       = errors.New("invalid plan")
	ErrInvalidStoreValue = errors.New("invalid store backend")
	ErrInvalidDuration   = errors.New("invalid duration")
	ErrInvalidStartTime  = errors.New("invalid start time")
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrEpicRequired      = errors.New("subtask requires an epic")
	ErrDerivedField      = errors.New("epic status and timing are derived from its subtasks")
)
