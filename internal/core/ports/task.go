package ports

import (
	"context"
	"time"

	"promanager/internal/core/domain"
)

type TaskRepository interface {
	FindByOwner(ctx context.Context, ownerID string, filter domain.TaskFilter) ([]domain.Task, error)
	FindByID(ctx context.Context, taskID string) (domain.Task, error)
	Create(ctx context.Context, task domain.Task) error
	Save(ctx context.Context, task domain.Task) error
	UpdateStatus(ctx context.Context, taskID string, status domain.TaskStatus) (domain.Task, error)
	DeleteByID(ctx context.Context, taskID string) (domain.Task, error)
}

// SummaryCache stores computed summaries per owner. Implementations report a
// miss with found=false and a nil error.
type SummaryCache interface {
	GetSummary(ctx context.Context, ownerID string) (summary domain.StatusPrioritySummary, found bool, err error)
	SetSummary(ctx context.Context, ownerID string, summary domain.StatusPrioritySummary) error
	InvalidateSummary(ctx context.Context, ownerID string) error
}

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

type TaskService interface {
	ListTasks(ctx context.Context, ownerID string) ([]domain.TaskView, error)
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.TaskView, error)
	ToggleChecklistItem(ctx context.Context, taskID, itemID string, isCompleted bool) (domain.TaskView, error)
	UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus) (domain.Task, error)
	UpdateTask(ctx context.Context, taskID string, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
	GetTask(ctx context.Context, taskID string) (domain.Task, error)
	GetStatusPrioritySummary(ctx context.Context, ownerID string) (domain.StatusPrioritySummary, error)
	FilterByTimeFrame(ctx context.Context, ownerID string, frame domain.TimeFrame) ([]domain.Task, error)
}
