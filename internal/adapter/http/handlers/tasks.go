package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"promanager/internal/adapter/http/dto"
	"promanager/internal/adapter/http/mapper"
	"promanager/internal/adapter/http/middleware"
	"promanager/internal/adapter/http/validation"
	"promanager/internal/core/domain"
	"promanager/internal/core/ports"
	"promanager/pkg/apierrors"
	"promanager/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), ownerID)
	if err != nil {
		zap.L().Error("failed to list tasks", zap.String("owner_id", ownerID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskViewItems(tasks))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	raw, err := bindJSONWithRaw(c, &req)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildCreateTaskInput(ownerID, req, raw)
	if err != nil {
		writeInvalidArgument(c, err, lang)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeInvalidArgument(c, err, lang)
			return
		}

		zap.L().Error("failed to create task", zap.String("owner_id", ownerID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCreateTask, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskViewItem(task))
}

func (h *TaskHandler) GetStatusPrioritySummary(c *gin.Context) {
	lang := middleware.GetLang(c)
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}

	summary, err := h.taskService.GetStatusPrioritySummary(c.Request.Context(), ownerID)
	if err != nil {
		zap.L().Error("failed to summarize tasks", zap.String("owner_id", ownerID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailSummary, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskSummary(summary))
}

func (h *TaskHandler) FilterByTimeFrame(c *gin.Context) {
	lang := middleware.GetLang(c)
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}

	frame := domain.TimeFrame(c.Query("timeFrame"))
	tasks, err := h.taskService.FilterByTimeFrame(c.Request.Context(), ownerID, frame)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTimeFrame) {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTimeFrame, lang),
			)
			return
		}

		zap.L().Error("failed to filter tasks", zap.String("owner_id", ownerID), zap.String("time_frame", string(frame)), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailFilterTasks, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		if writeNotFound(c, err, lang) {
			return
		}

		zap.L().Error("failed to fetch task", zap.String("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailFetchTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	raw, err := bindJSONWithRaw(c, &req)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		writeInvalidArgument(c, err, lang)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, input)
	if err != nil {
		if writeNotFound(c, err, lang) {
			return
		}
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeInvalidArgument(c, err, lang)
			return
		}

		zap.L().Error("failed to update task", zap.String("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailUpdateTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, dto.TaskMessageResponse{
		Message: translator.Translate(apierrors.MsgTaskUpdated, lang),
		Task:    mapper.ToTaskItem(task),
	})
}

func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	lang := middleware.GetLang(c)
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidStatus, lang),
		)
		return
	}

	task, err := h.taskService.UpdateTaskStatus(c.Request.Context(), taskID, domain.TaskStatus(req.Status))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidStatus, lang),
			)
			return
		}
		if writeNotFound(c, err, lang) {
			return
		}

		zap.L().Error("failed to update task status", zap.String("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailUpdateStatus, lang),
		)
		return
	}

	c.JSON(http.StatusOK, dto.TaskMessageResponse{
		Message: translator.Translate(apierrors.MsgTaskStatusUpdated, lang),
		Task:    mapper.ToTaskItem(task),
	})
}

func (h *TaskHandler) ToggleChecklistItem(c *gin.Context) {
	lang := middleware.GetLang(c)
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}
	itemID := strings.TrimSpace(c.Param("itemId"))

	var req dto.ToggleChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.ToggleChecklistItem(c.Request.Context(), taskID, itemID, *req.IsCompleted)
	if err != nil {
		if writeNotFound(c, err, lang) {
			return
		}

		zap.L().Error(
			"failed to update checklist item",
			zap.String("task_id", taskID),
			zap.String("item_id", itemID),
			zap.Error(err),
		)
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailUpdateChecklistItem, lang),
		)
		return
	}

	c.JSON(http.StatusOK, dto.TaskMessageResponse{
		Message: translator.Translate(apierrors.MsgChecklistItemUpdated, lang),
		Task:    mapper.ToTaskViewItem(task),
	})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		if writeNotFound(c, err, lang) {
			return
		}

		zap.L().Error("failed to delete task", zap.String("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailDeleteTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: translator.Translate(apierrors.MsgTaskDeleted, lang),
	})
}

// ShareTask returns a public link to the read-only task page.
func (h *TaskHandler) ShareTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		if writeNotFound(c, err, lang) {
			return
		}

		zap.L().Error("failed to share task", zap.String("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailShareTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, dto.ShareTaskResponse{
		Message:       translator.Translate(apierrors.MsgTaskShared, lang),
		ShareableLink: fmt.Sprintf("%s://%s/tasks/%s", requestScheme(c), c.Request.Host, task.ID),
	})
}

func writeNotFound(c *gin.Context, err error, lang string) bool {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
		)
		return true
	case errors.Is(err, domain.ErrChecklistItemNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgChecklistItemNotFound, lang),
		)
		return true
	}
	return false
}

func writeInvalidArgument(c *gin.Context, err error, lang string) {
	msgKey := apierrors.MsgInvalidTaskPayload
	switch {
	case errors.Is(err, domain.ErrInvalidStatus):
		msgKey = apierrors.MsgInvalidStatus
	case errors.Is(err, domain.ErrInvalidPriority):
		msgKey = apierrors.MsgInvalidPriority
	case errors.Is(err, domain.ErrDuplicateChecklistItem):
		msgKey = apierrors.MsgDuplicateChecklistItem
	}

	c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, msgKey, lang))
}

func requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, middleware.GetLang(c)),
		)
		return "", false
	}
	return userID, true
}

func taskIDParam(c *gin.Context) (string, bool) {
	taskID := strings.TrimSpace(c.Param("id"))
	if taskID == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, middleware.GetLang(c)),
		)
		return "", false
	}
	return taskID, true
}

// bindJSONWithRaw binds the body into req and also returns its top-level keys
// so callers can tell an absent field from an explicit null.
func bindJSONWithRaw(c *gin.Context, req any) (map[string]json.RawMessage, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, err
	}

	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	if err := binding.JSON.BindBody(body, req); err != nil {
		return nil, err
	}

	return raw, nil
}

func requestScheme(c *gin.Context) string {
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		return strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}
