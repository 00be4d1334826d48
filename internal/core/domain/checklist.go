package domain

type ChecklistSummary struct {
	Total     int
	Completed int
}

func SummarizeChecklist(items []ChecklistItem) ChecklistSummary {
	summary := ChecklistSummary{Total: len(items)}
	for _, item := range items {
		if item.IsCompleted {
			summary.Completed++
		}
	}
	return summary
}

// TaskView is a task as returned to clients, with the checklist counts
// computed at read time. The counts are never written back to the store.
type TaskView struct {
	Task
	ChecklistSummary ChecklistSummary
}

func NewTaskView(task Task) TaskView {
	return TaskView{Task: task, ChecklistSummary: SummarizeChecklist(task.Checklist)}
}

func NewTaskViews(tasks []Task) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, NewTaskView(task))
	}
	return views
}
