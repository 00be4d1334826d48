package domain

import "time"

type TaskStatus string

const (
	TaskStatusBacklog  TaskStatus = "Backlog"
	TaskStatusTodo     TaskStatus = "To-Do"
	TaskStatusProgress TaskStatus = "Progress"
	TaskStatusDone     TaskStatus = "Done"
)

// TaskStatuses lists every accepted status in board order.
var TaskStatuses = []TaskStatus{
	TaskStatusBacklog,
	TaskStatusTodo,
	TaskStatusProgress,
	TaskStatusDone,
}

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusBacklog, TaskStatusTodo, TaskStatusProgress, TaskStatusDone:
		return true
	}
	return false
}

// ParseTaskStatus rejects anything outside the four board columns.
func ParseTaskStatus(value string) (TaskStatus, error) {
	status := TaskStatus(value)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "High"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityLow    TaskPriority = "Low"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow:
		return true
	}
	return false
}

func ParseTaskPriority(value string) (TaskPriority, error) {
	priority := TaskPriority(value)
	if !priority.IsValid() {
		return "", ErrInvalidPriority
	}
	return priority, nil
}

type ChecklistItem struct {
	ID          string
	Text        string
	IsCompleted bool
}

type Task struct {
	ID        string
	Title     string
	Priority  TaskPriority
	Checklist []ChecklistItem
	DueDate   *time.Time
	Status    TaskStatus
	CreatedAt time.Time
	OwnerID   string
}

// ChecklistItemByID returns a pointer into the task's checklist so callers can
// flip the completion flag in place.
func (t *Task) ChecklistItemByID(itemID string) (*ChecklistItem, bool) {
	for i := range t.Checklist {
		if t.Checklist[i].ID == itemID {
			return &t.Checklist[i], true
		}
	}
	return nil, false
}

type ChecklistItemInput struct {
	ID          string
	Text        string
	IsCompleted bool
}

type CreateTaskInput struct {
	OwnerID   string
	Title     string
	Priority  TaskPriority
	Checklist []ChecklistItemInput
	DueDate   *time.Time
	Status    TaskStatus
}

// UpdateTaskInput carries a partial update. Nil pointers leave the stored
// value untouched; DueDateSet with a nil DueDate clears the due date.
type UpdateTaskInput struct {
	Title      *string
	Priority   *TaskPriority
	Status     *TaskStatus
	DueDate    *time.Time
	DueDateSet bool
	Checklist  *[]ChecklistItemInput
}

func (in UpdateTaskInput) IsEmpty() bool {
	return in.Title == nil &&
		in.Priority == nil &&
		in.Status == nil &&
		!in.DueDateSet &&
		in.Checklist == nil
}

// TaskFilter narrows an owner's task listing.
type TaskFilter struct {
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	SortBy      TaskSort
}

type TaskSort string

const (
	TaskSortCreatedAt TaskSort = "created_at"
	TaskSortDueDate   TaskSort = "due_date"
)
