package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTaskNotFound          = errors.New("task not found")
	ErrChecklistItemNotFound = errors.New("checklist item not found")
	ErrInvalidArgument       = errors.New("invalid argument")
)

var (
	ErrInvalidStatus    = fmt.Errorf("%w: unknown task status", ErrInvalidArgument)
	ErrInvalidPriority  = fmt.Errorf("%w: unknown task priority", ErrInvalidArgument)
	ErrInvalidTimeFrame = fmt.Errorf("%w: unknown time frame", ErrInvalidArgument)
	ErrEmptyTitle       = fmt.Errorf("%w: title is required", ErrInvalidArgument)

	ErrDuplicateChecklistItem = fmt.Errorf("%w: checklist item ids must be unique within a task", ErrInvalidArgument)
)
