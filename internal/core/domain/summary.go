package domain

import "time"

type StatusPrioritySummary struct {
	TotalBacklogTasks        int
	TotalTodoTasks           int
	TotalProgressTasks       int
	TotalDoneTasks           int
	HighPriorityTasksCount   int
	MediumPriorityTasksCount int
	LowPriorityTasksCount    int
	DueDatePassedTasksCount  int
}

// SummarizeTasks counts tasks per status, per priority and past their due
// date relative to now. A task without a due date is never overdue.
func SummarizeTasks(tasks []Task, now time.Time) StatusPrioritySummary {
	var summary StatusPrioritySummary
	for _, task := range tasks {
		switch task.Status {
		case TaskStatusBacklog:
			summary.TotalBacklogTasks++
		case TaskStatusTodo:
			summary.TotalTodoTasks++
		case TaskStatusProgress:
			summary.TotalProgressTasks++
		case TaskStatusDone:
			summary.TotalDoneTasks++
		}

		switch task.Priority {
		case TaskPriorityHigh:
			summary.HighPriorityTasksCount++
		case TaskPriorityMedium:
			summary.MediumPriorityTasksCount++
		case TaskPriorityLow:
			summary.LowPriorityTasksCount++
		}

		if task.DueDate != nil && task.DueDate.Before(now) {
			summary.DueDatePassedTasksCount++
		}
	}
	return summary
}
