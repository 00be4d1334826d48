package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"promanager/internal/core/domain"
	"promanager/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
	summaryCache   ports.SummaryCache
	clock          ports.Clock
	newID          func() string
	summaryGroup   singleflight.Group
}

type Option func(*TaskService)

// WithSummaryCache enables cache-aside reads for the status/priority summary.
func WithSummaryCache(cache ports.SummaryCache) Option {
	return func(s *TaskService) {
		if cache != nil {
			s.summaryCache = cache
		}
	}
}

func WithClock(clock ports.Clock) Option {
	return func(s *TaskService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *TaskService) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func NewTaskService(taskRepository ports.TaskRepository, opts ...Option) *TaskService {
	s := &TaskService{
		taskRepository: taskRepository,
		summaryCache:   noopSummaryCache{},
		clock:          ports.ClockFunc(time.Now),
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.TaskService = (*TaskService)(nil)

func (s *TaskService) ListTasks(ctx context.Context, ownerID string) ([]domain.TaskView, error) {
	tasks, err := s.taskRepository.FindByOwner(ctx, ownerID, domain.TaskFilter{SortBy: domain.TaskSortCreatedAt})
	if err != nil {
		return nil, err
	}
	return domain.NewTaskViews(tasks), nil
}

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.TaskView, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.TaskView{}, domain.ErrEmptyTitle
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TaskPriorityLow
	}
	if !priority.IsValid() {
		return domain.TaskView{}, domain.ErrInvalidPriority
	}

	status := input.Status
	if status == "" {
		status = domain.TaskStatusTodo
	}
	if !status.IsValid() {
		return domain.TaskView{}, domain.ErrInvalidStatus
	}

	checklist, err := s.buildChecklist(input.Checklist)
	if err != nil {
		return domain.TaskView{}, err
	}

	now := s.now()
	dueDate := storedTime(input.DueDate)
	if dueDate == nil {
		dueDate = &now
	}

	task := domain.Task{
		ID:        s.newID(),
		Title:     title,
		Priority:  priority,
		Checklist: checklist,
		DueDate:   dueDate,
		Status:    status,
		CreatedAt: now,
		OwnerID:   input.OwnerID,
	}

	if err := s.taskRepository.Create(ctx, task); err != nil {
		return domain.TaskView{}, err
	}
	s.invalidateSummary(ctx, task.OwnerID)

	return domain.NewTaskView(task), nil
}

func (s *TaskService) ToggleChecklistItem(
	ctx context.Context,
	taskID, itemID string,
	isCompleted bool,
) (domain.TaskView, error) {
	task, err := s.taskRepository.FindByID(ctx, taskID)
	if err != nil {
		return domain.TaskView{}, err
	}

	item, ok := task.ChecklistItemByID(itemID)
	if !ok {
		return domain.TaskView{}, domain.ErrChecklistItemNotFound
	}
	item.IsCompleted = isCompleted

	if err := s.taskRepository.Save(ctx, task); err != nil {
		return domain.TaskView{}, err
	}

	return domain.NewTaskView(task), nil
}

// UpdateTaskStatus moves a task to any column; transitions are not restricted.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus) (domain.Task, error) {
	if !status.IsValid() {
		return domain.Task{}, domain.ErrInvalidStatus
	}

	task, err := s.taskRepository.UpdateStatus(ctx, taskID, status)
	if err != nil {
		return domain.Task{}, err
	}
	s.invalidateSummary(ctx, task.OwnerID)

	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, taskID string, input domain.UpdateTaskInput) (domain.Task, error) {
	task, err := s.taskRepository.FindByID(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return domain.Task{}, domain.ErrEmptyTitle
		}
		task.Title = title
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return domain.Task{}, domain.ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return domain.Task{}, domain.ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.DueDateSet {
		task.DueDate = storedTime(input.DueDate)
	}
	if input.Checklist != nil {
		checklist, err := s.buildChecklist(*input.Checklist)
		if err != nil {
			return domain.Task{}, err
		}
		task.Checklist = checklist
	}

	if err := s.taskRepository.Save(ctx, task); err != nil {
		return domain.Task{}, err
	}
	s.invalidateSummary(ctx, task.OwnerID)

	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	task, err := s.taskRepository.DeleteByID(ctx, taskID)
	if err != nil {
		return err
	}
	s.invalidateSummary(ctx, task.OwnerID)
	return nil
}

func (s *TaskService) GetTask(ctx context.Context, taskID string) (domain.Task, error) {
	return s.taskRepository.FindByID(ctx, taskID)
}

func (s *TaskService) GetStatusPrioritySummary(ctx context.Context, ownerID string) (domain.StatusPrioritySummary, error) {
	cached, found, err := s.summaryCache.GetSummary(ctx, ownerID)
	if err != nil {
		zap.L().Warn("summary cache read failed", zap.String("owner_id", ownerID), zap.Error(err))
	}
	if found {
		return cached, nil
	}

	// Shared by every waiter on the key, so one caller going away must not cancel it.
	loadCtx := context.WithoutCancel(ctx)
	value, err, _ := s.summaryGroup.Do(ownerID, func() (any, error) {
		tasks, err := s.taskRepository.FindByOwner(loadCtx, ownerID, domain.TaskFilter{SortBy: domain.TaskSortDueDate})
		if err != nil {
			return nil, err
		}
		return domain.SummarizeTasks(tasks, s.clock.Now()), nil
	})
	if err != nil {
		return domain.StatusPrioritySummary{}, err
	}

	summary, ok := value.(domain.StatusPrioritySummary)
	if !ok {
		return domain.StatusPrioritySummary{}, fmt.Errorf("unexpected summary type %T", value)
	}

	if err := s.summaryCache.SetSummary(ctx, ownerID, summary); err != nil {
		zap.L().Warn("summary cache write failed", zap.String("owner_id", ownerID), zap.Error(err))
	}

	return summary, nil
}

func (s *TaskService) FilterByTimeFrame(ctx context.Context, ownerID string, frame domain.TimeFrame) ([]domain.Task, error) {
	window, err := domain.ResolveWindow(frame, s.clock.Now())
	if err != nil {
		return nil, err
	}

	return s.taskRepository.FindByOwner(ctx, ownerID, domain.TaskFilter{
		CreatedFrom: &window.Start,
		CreatedTo:   &window.End,
		SortBy:      domain.TaskSortCreatedAt,
	})
}

// buildChecklist assigns ids to new items and rejects ids repeated within the task.
func (s *TaskService) buildChecklist(inputs []domain.ChecklistItemInput) ([]domain.ChecklistItem, error) {
	items := make([]domain.ChecklistItem, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		id := in.ID
		if id == "" {
			id = s.newID()
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateChecklistItem, id)
		}
		seen[id] = struct{}{}
		items = append(items, domain.ChecklistItem{
			ID:          id,
			Text:        in.Text,
			IsCompleted: in.IsCompleted,
		})
	}
	return items, nil
}

// now is truncated to whole seconds, the precision the store keeps.
func (s *TaskService) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Second)
}

func storedTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	value := t.UTC().Truncate(time.Second)
	return &value
}

func (s *TaskService) invalidateSummary(ctx context.Context, ownerID string) {
	if err := s.summaryCache.InvalidateSummary(ctx, ownerID); err != nil {
		zap.L().Warn("summary cache invalidation failed", zap.String("owner_id", ownerID), zap.Error(err))
	}
}

type noopSummaryCache struct{}

func (noopSummaryCache) GetSummary(context.Context, string) (domain.StatusPrioritySummary, bool, error) {
	return domain.StatusPrioritySummary{}, false, nil
}

func (noopSummaryCache) SetSummary(context.Context, string, domain.StatusPrioritySummary) error {
	return nil
}

func (noopSummaryCache) InvalidateSummary(context.Context, string) error {
	return nil
}
