package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"promanager/internal/adapter/http/dto"
	"promanager/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// dueDateLayouts are tried in order; clients send either a full timestamp or a calendar day.
var dueDateLayouts = []string{time.RFC3339Nano, "2006-01-02"}

func BuildCreateTaskInput(ownerID string, req dto.CreateTaskRequest, raw map[string]json.RawMessage) (domain.CreateTaskInput, error) {
	if hasJSONField(raw, "status") && req.Status == nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}
	if hasJSONField(raw, "priority") && req.Priority == nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	var status domain.TaskStatus
	if req.Status != nil {
		parsed, err := domain.ParseTaskStatus(*req.Status)
		if err != nil {
			return domain.CreateTaskInput{}, err
		}
		status = parsed
	}

	var priority domain.TaskPriority
	if req.Priority != nil {
		parsed, err := domain.ParseTaskPriority(*req.Priority)
		if err != nil {
			return domain.CreateTaskInput{}, err
		}
		priority = parsed
	}

	var dueDate *time.Time
	if hasJSONField(raw, "dueDate") && !isJSONNull(raw["dueDate"]) {
		if req.DueDate == nil {
			return domain.CreateTaskInput{}, ErrInvalidTaskPayload
		}
		parsed, err := parseDueDate(*req.DueDate)
		if err != nil {
			return domain.CreateTaskInput{}, ErrInvalidTaskPayload
		}
		dueDate = &parsed
	}

	return domain.CreateTaskInput{
		OwnerID:   ownerID,
		Title:     title,
		Priority:  priority,
		Checklist: buildChecklist(req.Checklist),
		DueDate:   dueDate,
		Status:    status,
	}, nil
}

func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasTaskUpdateFields(raw) {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	var title *string
	if hasJSONField(raw, "title") && req.Title == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	if req.Title != nil {
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		title = &value
	}

	var status *domain.TaskStatus
	if hasJSONField(raw, "status") && req.Status == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	if req.Status != nil {
		value, err := domain.ParseTaskStatus(*req.Status)
		if err != nil {
			return domain.UpdateTaskInput{}, err
		}
		status = &value
	}

	var priority *domain.TaskPriority
	if hasJSONField(raw, "priority") && req.Priority == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	if req.Priority != nil {
		value, err := domain.ParseTaskPriority(*req.Priority)
		if err != nil {
			return domain.UpdateTaskInput{}, err
		}
		priority = &value
	}

	var dueDate *time.Time
	dueDateSet := hasJSONField(raw, "dueDate")
	if dueDateSet && !isJSONNull(raw["dueDate"]) {
		if req.DueDate == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		parsed, err := parseDueDate(*req.DueDate)
		if err != nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		dueDate = &parsed
	}

	var checklist *[]domain.ChecklistItemInput
	if hasJSONField(raw, "checklist") {
		if isJSONNull(raw["checklist"]) {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		var items []dto.ChecklistItemRequest
		if req.Checklist != nil {
			items = *req.Checklist
		}
		built := buildChecklist(items)
		checklist = &built
	}

	return domain.UpdateTaskInput{
		Title:      title,
		Priority:   priority,
		Status:     status,
		DueDate:    dueDate,
		DueDateSet: dueDateSet,
		Checklist:  checklist,
	}, nil
}

func buildChecklist(items []dto.ChecklistItemRequest) []domain.ChecklistItemInput {
	inputs := make([]domain.ChecklistItemInput, 0, len(items))
	for _, item := range items {
		input := domain.ChecklistItemInput{Text: item.Text}
		if item.ID != nil {
			input.ID = strings.TrimSpace(*item.ID)
		}
		if item.IsCompleted != nil {
			input.IsCompleted = *item.IsCompleted
		}
		inputs = append(inputs, input)
	}
	return inputs
}

func parseDueDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range dueDateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	return hasJSONField(raw, "title") ||
		hasJSONField(raw, "priority") ||
		hasJSONField(raw, "status") ||
		hasJSONField(raw, "dueDate") ||
		hasJSONField(raw, "checklist")
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
