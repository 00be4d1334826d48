package mapper

import (
	"time"

	"promanager/internal/adapter/http/dto"
	"promanager/internal/core/domain"
)

// TimeLayout is used for every timestamp leaving the API.
const TimeLayout = time.RFC3339

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:        task.ID,
		Title:     task.Title,
		Priority:  string(task.Priority),
		Checklist: toChecklistItems(task.Checklist),
		User:      task.OwnerID,
		Status:    string(task.Status),
		CreatedAt: task.CreatedAt.UTC().Format(TimeLayout),
	}

	if task.DueDate != nil {
		value := task.DueDate.UTC().Format(TimeLayout)
		item.DueDate = &value
	}

	return item
}

func ToTaskViewItems(views []domain.TaskView) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(views))
	for _, view := range views {
		items = append(items, ToTaskViewItem(view))
	}
	return items
}

func ToTaskViewItem(view domain.TaskView) dto.TaskItem {
	item := ToTaskItem(view.Task)
	total := view.ChecklistSummary.Total
	completed := view.ChecklistSummary.Completed
	item.TotalChecklistCount = &total
	item.MarkedChecklistCount = &completed
	return item
}

func ToTaskSummary(summary domain.StatusPrioritySummary) dto.TaskSummary {
	return dto.TaskSummary{
		TotalBacklogTasks:        summary.TotalBacklogTasks,
		TotalTodoTasks:           summary.TotalTodoTasks,
		TotalProgressTasks:       summary.TotalProgressTasks,
		TotalDoneTasks:           summary.TotalDoneTasks,
		HighPriorityTasksCount:   summary.HighPriorityTasksCount,
		MediumPriorityTasksCount: summary.MediumPriorityTasksCount,
		LowPriorityTasksCount:    summary.LowPriorityTasksCount,
		DueDatePassedTasksCount:  summary.DueDatePassedTasksCount,
	}
}

func toChecklistItems(items []domain.ChecklistItem) []dto.ChecklistItem {
	out := make([]dto.ChecklistItem, 0, len(items))
	for _, item := range items {
		out = append(out, dto.ChecklistItem{
			ID:          item.ID,
			Text:        item.Text,
			IsCompleted: item.IsCompleted,
		})
	}
	return out
}
