package dto

type ChecklistItem struct {
	ID          string `json:"_id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
}

// TaskItem is the outward task representation. The checklist counts are only
// present on responses that carry a checklist summary.
type TaskItem struct {
	ID                   string          `json:"_id"`
	Title                string          `json:"title"`
	Priority             string          `json:"priority"`
	Checklist            []ChecklistItem `json:"checklist"`
	DueDate              *string         `json:"dueDate"`
	User                 string          `json:"user"`
	Status               string          `json:"status"`
	CreatedAt            string          `json:"createdAt"`
	TotalChecklistCount  *int            `json:"totalChecklistCount,omitempty"`
	MarkedChecklistCount *int            `json:"markedChecklistCount,omitempty"`
}

type TaskSummary struct {
	TotalBacklogTasks        int `json:"totalBacklogTasks"`
	TotalTodoTasks           int `json:"totalTodoTasks"`
	TotalProgressTasks       int `json:"totalProgressTasks"`
	TotalDoneTasks           int `json:"totalDoneTasks"`
	HighPriorityTasksCount   int `json:"highPriorityTasksCount"`
	MediumPriorityTasksCount int `json:"mediumPriorityTasksCount"`
	LowPriorityTasksCount    int `json:"lowPriorityTasksCount"`
	DueDatePassedTasksCount  int `json:"dueDatePassedTasksCount"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TaskMessageResponse struct {
	Message string   `json:"message"`
	Task    TaskItem `json:"task"`
}

type ShareTaskResponse struct {
	Message       string `json:"message"`
	ShareableLink string `json:"shareableLink"`
}

type ChecklistItemRequest struct {
	ID          *string `json:"_id"`
	Text        string  `json:"text"`
	IsCompleted *bool   `json:"isCompleted"`
}

type CreateTaskRequest struct {
	Title     string                 `json:"title" binding:"required,max=255"`
	Priority  *string                `json:"priority"`
	Checklist []ChecklistItemRequest `json:"checklist"`
	DueDate   *string                `json:"dueDate"`
	Status    *string                `json:"status"`
}

type UpdateTaskRequest struct {
	Title     *string                 `json:"title" binding:"omitempty,max=255"`
	Priority  *string                 `json:"priority"`
	Checklist *[]ChecklistItemRequest `json:"checklist"`
	DueDate   *string                 `json:"dueDate"`
	Status    *string                 `json:"status"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

type ToggleChecklistItemRequest struct {
	IsCompleted *bool `json:"isCompleted" binding:"required"`
}
