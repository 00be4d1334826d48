package apierrors

const (
	MsgFailListTask            = "errorListTask"
	MsgInvalidTaskID           = "invalidTaskID"
	MsgInvalidTaskPayload      = "invalidTaskPayload"
	MsgInvalidStatus           = "invalidStatus"
	MsgInvalidPriority         = "invalidPriority"
	MsgInvalidTimeFrame        = "invalidTimeFrame"
	MsgTaskNotFound            = "taskNotFound"
	MsgChecklistItemNotFound   = "checklistItemNotFound"
	MsgDuplicateChecklistItem  = "duplicateChecklistItem"
	MsgFailCreateTask          = "failCreateTask"
	MsgFailUpdateTask          = "failUpdateTask"
	MsgFailUpdateStatus        = "failUpdateStatus"
	MsgFailUpdateChecklistItem = "failUpdateChecklistItem"
	MsgFailDeleteTask          = "failDeleteTask"
	MsgFailFetchTask           = "failFetchTask"
	MsgFailShareTask           = "failShareTask"
	MsgFailSummary             = "failSummary"
	MsgFailFilterTasks         = "failFilterTasks"
	MsgUnauthorized            = "unauthorized"
	MsgTaskUpdated             = "taskUpdated"
	MsgTaskStatusUpdated       = "taskStatusUpdated"
	MsgChecklistItemUpdated    = "checklistItemUpdated"
	MsgTaskDeleted             = "taskDeleted"
	MsgTaskShared              = "taskShared"
)
