package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	dbadapter "promanager/internal/adapter/db"
	"promanager/internal/core/domain"
)

type TaskRepositorySuite struct {
	suite.Suite

	db   *sqlx.DB
	repo *dbadapter.TaskRepository
	ctx  context.Context
}

func TestTaskRepositorySuite(t *testing.T) {
	suite.Run(t, new(TaskRepositorySuite))
}

func (s *TaskRepositorySuite) SetupTest() {
	db, err := dbadapter.OpenSQLite(":memory:")
	s.Require().NoError(err)
	s.Require().NoError(dbadapter.Migrate(db))

	s.db = db
	s.repo = dbadapter.NewTaskRepository(db)
	s.ctx = context.Background()
}

func (s *TaskRepositorySuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

func utc(year int, month time.Month, day, hour, minute, second int) time.Time {
	return time.Date(year, month, day, hour, minute, second, 0, time.UTC)
}

func (s *TaskRepositorySuite) newTask(id, owner string, createdAt time.Time, due *time.Time) domain.Task {
	task := domain.Task{
		ID:        id,
		Title:     "Task " + id,
		Priority:  domain.TaskPriorityLow,
		Checklist: []domain.ChecklistItem{},
		DueDate:   due,
		Status:    domain.TaskStatusTodo,
		CreatedAt: createdAt,
		OwnerID:   owner,
	}
	s.Require().NoError(s.repo.Create(s.ctx, task))
	return task
}

func (s *TaskRepositorySuite) TestCreateAndFindByID() {
	due := utc(2024, 3, 20, 12, 0, 0)
	task := domain.Task{
		ID:       "t1",
		Title:    "Write release notes",
		Priority: domain.TaskPriorityHigh,
		Checklist: []domain.ChecklistItem{
			{ID: "c1", Text: "draft", IsCompleted: true},
			{ID: "c2", Text: "review"},
			{ID: "c3", Text: "publish"},
		},
		DueDate:   &due,
		Status:    domain.TaskStatusProgress,
		CreatedAt: utc(2024, 3, 15, 10, 0, 0),
		OwnerID:   "owner-1",
	}
	s.Require().NoError(s.repo.Create(s.ctx, task))

	got, err := s.repo.FindByID(s.ctx, "t1")
	s.Require().NoError(err)
	s.Require().Equal(task.Title, got.Title)
	s.Require().Equal(task.Priority, got.Priority)
	s.Require().Equal(task.Status, got.Status)
	s.Require().Equal(task.OwnerID, got.OwnerID)
	s.Require().True(task.CreatedAt.Equal(got.CreatedAt))
	s.Require().NotNil(got.DueDate)
	s.Require().True(due.Equal(*got.DueDate))
	s.Require().Equal(task.Checklist, got.Checklist)
}

func (s *TaskRepositorySuite) TestFindByID_NotFound() {
	_, err := s.repo.FindByID(s.ctx, "missing")
	s.Require().ErrorIs(err, domain.ErrTaskNotFound)
}

func (s *TaskRepositorySuite) TestFindByOwner_ScopesToOwnerAndSortsByDueDate() {
	late := utc(2024, 4, 1, 0, 0, 0)
	early := utc(2024, 3, 1, 0, 0, 0)
	s.newTask("a", "owner-1", utc(2024, 3, 10, 0, 0, 0), &late)
	s.newTask("b", "owner-1", utc(2024, 3, 11, 0, 0, 0), &early)
	s.newTask("c", "owner-1", utc(2024, 3, 12, 0, 0, 0), nil)
	s.newTask("x", "owner-2", utc(2024, 3, 12, 0, 0, 0), &early)

	byDue, err := s.repo.FindByOwner(s.ctx, "owner-1", domain.TaskFilter{SortBy: domain.TaskSortDueDate})
	s.Require().NoError(err)
	s.Require().Equal([]string{"c", "b", "a"}, taskIDs(byDue))

	byCreated, err := s.repo.FindByOwner(s.ctx, "owner-1", domain.TaskFilter{})
	s.Require().NoError(err)
	s.Require().Equal([]string{"a", "b", "c"}, taskIDs(byCreated))
	s.Require().Nil(byCreated[2].DueDate)
}

func (s *TaskRepositorySuite) TestFindByOwner_CreatedWindowIsInclusive() {
	window, err := domain.ResolveWindow(domain.TimeFrameToday, utc(2024, 3, 15, 10, 0, 0))
	s.Require().NoError(err)

	s.newTask("before", "owner-1", utc(2024, 3, 14, 23, 59, 59), nil)
	s.newTask("start", "owner-1", utc(2024, 3, 15, 0, 0, 0), nil)
	s.newTask("middle", "owner-1", utc(2024, 3, 15, 12, 0, 0), nil)
	s.newTask("end", "owner-1", utc(2024, 3, 15, 23, 59, 59), nil)
	s.newTask("after", "owner-1", utc(2024, 3, 16, 0, 0, 0), nil)
	s.newTask("other-owner", "owner-2", utc(2024, 3, 15, 12, 0, 0), nil)

	got, err := s.repo.FindByOwner(s.ctx, "owner-1", domain.TaskFilter{
		CreatedFrom: &window.Start,
		CreatedTo:   &window.End,
	})
	s.Require().NoError(err)
	s.Require().Equal([]string{"start", "middle", "end"}, taskIDs(got))
}

func (s *TaskRepositorySuite) TestFindByOwner_Empty() {
	got, err := s.repo.FindByOwner(s.ctx, "nobody", domain.TaskFilter{})
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Require().Len(got, 0)
}

func (s *TaskRepositorySuite) TestSave_ReplacesFieldsAndChecklist() {
	task := s.newTask("t1", "owner-1", utc(2024, 3, 15, 10, 0, 0), nil)
	task.Checklist = []domain.ChecklistItem{{ID: "c1", Text: "one"}, {ID: "c2", Text: "two"}}
	s.Require().NoError(s.repo.Save(s.ctx, task))

	task.Title = "Renamed"
	task.Status = domain.TaskStatusDone
	task.Checklist = []domain.ChecklistItem{{ID: "c2", Text: "two", IsCompleted: true}}
	task.OwnerID = "someone-else"
	s.Require().NoError(s.repo.Save(s.ctx, task))

	got, err := s.repo.FindByID(s.ctx, "t1")
	s.Require().NoError(err)
	s.Require().Equal("Renamed", got.Title)
	s.Require().Equal(domain.TaskStatusDone, got.Status)
	s.Require().Equal("owner-1", got.OwnerID)
	s.Require().Equal([]domain.ChecklistItem{{ID: "c2", Text: "two", IsCompleted: true}}, got.Checklist)
}

func (s *TaskRepositorySuite) TestSave_UnchangedTaskStillSucceeds() {
	task := s.newTask("t1", "owner-1", utc(2024, 3, 15, 10, 0, 0), nil)
	s.Require().NoError(s.repo.Save(s.ctx, task))
}

func (s *TaskRepositorySuite) TestSave_NotFound() {
	err := s.repo.Save(s.ctx, domain.Task{ID: "missing", Title: "x", Priority: domain.TaskPriorityLow, Status: domain.TaskStatusTodo})
	s.Require().ErrorIs(err, domain.ErrTaskNotFound)
}

func (s *TaskRepositorySuite) TestUpdateStatus() {
	s.newTask("t1", "owner-1", utc(2024, 3, 15, 10, 0, 0), nil)

	got, err := s.repo.UpdateStatus(s.ctx, "t1", domain.TaskStatusBacklog)
	s.Require().NoError(err)
	s.Require().Equal(domain.TaskStatusBacklog, got.Status)

	got, err = s.repo.UpdateStatus(s.ctx, "t1", domain.TaskStatusBacklog)
	s.Require().NoError(err)
	s.Require().Equal(domain.TaskStatusBacklog, got.Status)

	_, err = s.repo.UpdateStatus(s.ctx, "missing", domain.TaskStatusDone)
	s.Require().ErrorIs(err, domain.ErrTaskNotFound)
}

func (s *TaskRepositorySuite) TestUpdateStatus_RejectedByConstraint() {
	s.newTask("t1", "owner-1", utc(2024, 3, 15, 10, 0, 0), nil)

	_, err := s.repo.UpdateStatus(s.ctx, "t1", domain.TaskStatus("Archived"))
	s.Require().Error(err)
}

func (s *TaskRepositorySuite) TestDeleteByID() {
	task := s.newTask("t1", "owner-1", utc(2024, 3, 15, 10, 0, 0), nil)
	task.Checklist = []domain.ChecklistItem{{ID: "c1", Text: "one"}}
	s.Require().NoError(s.repo.Save(s.ctx, task))

	deleted, err := s.repo.DeleteByID(s.ctx, "t1")
	s.Require().NoError(err)
	s.Require().Equal("owner-1", deleted.OwnerID)

	_, err = s.repo.FindByID(s.ctx, "t1")
	s.Require().ErrorIs(err, domain.ErrTaskNotFound)

	var remaining int
	s.Require().NoError(s.db.Get(&remaining, "SELECT COUNT(*) FROM checklist_items WHERE task_id = ?", "t1"))
	s.Require().Zero(remaining)

	_, err = s.repo.DeleteByID(s.ctx, "t1")
	s.Require().ErrorIs(err, domain.ErrTaskNotFound)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db, err := dbadapter.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, dbadapter.Migrate(db))
	require.NoError(t, dbadapter.Migrate(db))

	var version int
	require.NoError(t, db.Get(&version, "SELECT MAX(version) FROM schema_version"))
	require.Equal(t, 1, version)
}

func taskIDs(tasks []domain.Task) []string {
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}
