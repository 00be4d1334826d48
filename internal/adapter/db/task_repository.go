package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"promanager/internal/core/domain"
	"promanager/internal/core/ports"
)

const taskColumns = "id, owner_id, title, priority, status, due_date, created_at"

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID        string       `db:"id"`
	OwnerID   string       `db:"owner_id"`
	Title     string       `db:"title"`
	Priority  string       `db:"priority"`
	Status    string       `db:"status"`
	DueDate   sql.NullTime `db:"due_date"`
	CreatedAt time.Time    `db:"created_at"`
}

type checklistItemRow struct {
	TaskID      string `db:"task_id"`
	ID          string `db:"id"`
	SortOrder   int    `db:"sort_order"`
	Text        string `db:"text"`
	IsCompleted bool   `db:"is_completed"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) FindByOwner(ctx context.Context, ownerID string, filter domain.TaskFilter) ([]domain.Task, error) {
	conditions := []string{"owner_id = ?"}
	args := []any{ownerID}

	if filter.CreatedFrom != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, filter.CreatedFrom.UTC())
	}
	if filter.CreatedTo != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, filter.CreatedTo.UTC())
	}

	orderBy := "created_at ASC, id ASC"
	if filter.SortBy == domain.TaskSortDueDate {
		orderBy = "due_date ASC, created_at ASC, id ASC"
	}

	query := fmt.Sprintf(
		"SELECT %s FROM tasks WHERE %s ORDER BY %s",
		taskColumns,
		strings.Join(conditions, " AND "),
		orderBy,
	)

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("querying tasks for owner %s: %w", ownerID, err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	if len(rows) == 0 {
		return tasks, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	checklists, err := r.loadChecklists(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row, checklists[row.ID]))
	}

	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, taskID string) (domain.Task, error) {
	var row taskRow
	err := r.db.GetContext(ctx, &row, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("getting task %s: %w", taskID, err)
	}

	checklists, err := r.loadChecklists(ctx, []string{taskID})
	if err != nil {
		return domain.Task{}, err
	}

	return mapTaskRowToDomainTask(row, checklists[taskID]), nil
}

func (r *TaskRepository) Create(ctx context.Context, task domain.Task) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tasks (id, owner_id, title, priority, status, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.OwnerID, task.Title, string(task.Priority), string(task.Status),
		nullTime(task.DueDate), task.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}

	if err := insertChecklist(ctx, tx, task.ID, task.Checklist); err != nil {
		return err
	}

	return tx.Commit()
}

// Save replaces the stored task, checklist included. Owner and creation time
// are never rewritten.
func (r *TaskRepository) Save(ctx context.Context, task domain.Task) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.GetContext(ctx, &exists, "SELECT COUNT(*) FROM tasks WHERE id = ?", task.ID); err != nil {
		return fmt.Errorf("checking task %s: %w", task.ID, err)
	}
	if exists == 0 {
		return domain.ErrTaskNotFound
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE tasks SET title = ?, priority = ?, status = ?, due_date = ?
		WHERE id = ?`,
		task.Title, string(task.Priority), string(task.Status), nullTime(task.DueDate), task.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task %s: %w", task.ID, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM checklist_items WHERE task_id = ?", task.ID); err != nil {
		return fmt.Errorf("clearing checklist of task %s: %w", task.ID, err)
	}
	if err := insertChecklist(ctx, tx, task.ID, task.Checklist); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, taskID string, status domain.TaskStatus) (domain.Task, error) {
	if _, err := r.db.ExecContext(ctx, "UPDATE tasks SET status = ? WHERE id = ?", string(status), taskID); err != nil {
		return domain.Task{}, fmt.Errorf("updating status of task %s: %w", taskID, err)
	}

	// MySQL reports zero affected rows for an unchanged value, so existence
	// is decided by reading the row back.
	return r.FindByID(ctx, taskID)
}

func (r *TaskRepository) DeleteByID(ctx context.Context, taskID string) (domain.Task, error) {
	task, err := r.FindByID(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Task{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM checklist_items WHERE task_id = ?", taskID); err != nil {
		return domain.Task{}, fmt.Errorf("deleting checklist of task %s: %w", taskID, err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", taskID)
	if err != nil {
		return domain.Task{}, fmt.Errorf("deleting task %s: %w", taskID, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	if err := tx.Commit(); err != nil {
		return domain.Task{}, fmt.Errorf("committing delete of task %s: %w", taskID, err)
	}

	return task, nil
}

func (r *TaskRepository) loadChecklists(ctx context.Context, taskIDs []string) (map[string][]domain.ChecklistItem, error) {
	query, args, err := sqlx.In(
		"SELECT task_id, id, sort_order, text, is_completed FROM checklist_items WHERE task_id IN (?) ORDER BY task_id, sort_order",
		taskIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("building checklist query: %w", err)
	}

	var rows []checklistItemRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("querying checklist items: %w", err)
	}

	checklists := make(map[string][]domain.ChecklistItem, len(taskIDs))
	for _, row := range rows {
		checklists[row.TaskID] = append(checklists[row.TaskID], domain.ChecklistItem{
			ID:          row.ID,
			Text:        row.Text,
			IsCompleted: row.IsCompleted,
		})
	}

	return checklists, nil
}

func insertChecklist(ctx context.Context, tx *sqlx.Tx, taskID string, items []domain.ChecklistItem) error {
	for i, item := range items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO checklist_items (task_id, id, sort_order, text, is_completed)
			VALUES (?, ?, ?, ?, ?)`,
			taskID, item.ID, i, item.Text, item.IsCompleted,
		)
		if err != nil {
			return fmt.Errorf("inserting checklist item %s of task %s: %w", item.ID, taskID, err)
		}
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func mapTaskRowToDomainTask(row taskRow, checklist []domain.ChecklistItem) domain.Task {
	if checklist == nil {
		checklist = []domain.ChecklistItem{}
	}

	task := domain.Task{
		ID:        row.ID,
		Title:     row.Title,
		Priority:  domain.TaskPriority(row.Priority),
		Checklist: checklist,
		Status:    domain.TaskStatus(row.Status),
		CreatedAt: row.CreatedAt.UTC(),
		OwnerID:   row.OwnerID,
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time.UTC()
		task.DueDate = &value
	}

	return task
}
