package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"mtodo/internal/application/dto"
	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/valueobject"
	"mtodo/internal/testutil"
)

func fixedClock(day string) Clock {
	d := valueobject.MustParseDate(day)
	return func() time.Time {
		return time.Date(d.Year(), d.Month(), d.Day(), 9, 30, 0, 0, time.Local)
	}
}

func datePtr(s string) *valueobject.Date {
	d := valueobject.MustParseDate(s)
	return &d
}

func TestCreateTask_BuyMilkIsOverdue(t *testing.T) {
	repo := testutil.NewFakeTaskRepository()
	uc := NewCreateTaskUseCase(repo, fixedClock("2025-07-02"))

	created, err := uc.Execute(context.Background(), dto.CreateTaskRequest{
		Title:   "Buy milk",
		DueDate: datePtr("2025-07-01"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created.IsOverdue {
		t.Error("expected task to be overdue")
	}
	if created.Completed {
		t.Error("expected task to be incomplete")
	}

	list := NewListTasksUseCase(repo, fixedClock("2025-07-02"))
	page, err := list.Execute(context.Background(), dto.ListTasksRequest{Filter: valueobject.FilterAll, Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Tasks) != 1 || !page.Tasks[0].IsOverdue {
		t.Errorf("expected one overdue task, got %+v", page.Tasks)
	}
}

func TestCreateTask_DueTodayIsNotOverdue(t *testing.T) {
	repo := testutil.NewFakeTaskRepository()
	uc := NewCreateTaskUseCase(repo, fixedClock("2025-07-13"))

	created, err := uc.Execute(context.Background(), dto.CreateTaskRequest{
		Title:   "Pay rent",
		DueDate: datePtr("2025-07-13"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.IsOverdue {
		t.Error("a task due today is not overdue")
	}
	if got := created.DueDate.Format("02/01/2006"); got != "13/07/2025" {
		t.Errorf("expected 13/07/2025, got %s", got)
	}
}

func TestCreateTask_RejectsBlankTitle(t *testing.T) {
	repo := testutil.NewFakeTaskRepository()
	uc := NewCreateTaskUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), dto.CreateTaskRequest{Title: "   "})
	if !errors.Is(err, entity.ErrEmptyTaskName) {
		t.Errorf("expected ErrEmptyTaskName, got %v", err)
	}
	if repo.Calls("Create") != 0 {
		t.Error("repository must not be called for an invalid title")
	}
}

func TestCreateTask_TrimsTitle(t *testing.T) {
	repo := testutil.NewFakeTaskRepository()
	uc := NewCreateTaskUseCase(repo, nil)

	created, err := uc.Execute(context.Background(), dto.CreateTaskRequest{Title: "  Walk dog "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Title != "Walk dog" {
		t.Errorf("expected trimmed title, got %q", created.Title)
	}
}

func TestUpdateTask(t *testing.T) {
	repo := testutil.NewFakeTaskRepository()
	id := repo.Add("Draft", "", datePtr("2025-07-01"), false)
	uc := NewUpdateTaskUseCase(repo, fixedClock("2025-07-10"))

	updated, err := uc.Execute(context.Background(), id, dto.UpdateTaskRequest{
		Title:     dto.StringPtr("Final"),
		Completed: dto.BoolPtr(true),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Final" || !updated.Completed {
		t.Errorf("unexpected task %+v", updated)
	}
	if updated.IsOverdue {
		t.Error("completed tasks are never overdue")
	}

	cleared, err := uc.Execute(context.Background(), id, dto.UpdateTaskRequest{ClearDueDate: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cleared.DueDate != nil {
		t.Errorf("expected due date cleared, got %v", cleared.DueDate)
	}
}

func TestUpdateTask_Errors(t *testing.T) {
	repo := testutil.NewFakeTaskRepository()
	id := repo.Add("Draft", "", nil, false)
	uc := NewUpdateTaskUseCase(repo, nil)
	ctx := context.Background()

	if _, err := uc.Execute(ctx, id, dto.UpdateTaskRequest{}); !errors.Is(err, entity.ErrNoChanges) {
		t.Errorf("expected ErrNoChanges, got %v", err)
	}
	if _, err := uc.Execute(ctx, id, dto.UpdateTaskRequest{Title: dto.StringPtr(" ")}); !errors.Is(err, entity.ErrEmptyTaskName) {
		t.Errorf("expected ErrEmptyTaskName, got %v", err)
	}
	if _, err := uc.Execute(ctx, "", dto.UpdateTaskRequest{Completed: dto.BoolPtr(true)}); !errors.Is(err, entity.ErrInvalidTaskID) {
		t.Errorf("expected ErrInvalidTaskID, got %v", err)
	}
	if _, err := uc.Execute(ctx, "missing", dto.UpdateTaskRequest{Completed: dto.BoolPtr(true)}); !errors.Is(err, entity.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestDeleteTask(t *testing.T) {
	repo := testutil.NewFakeTaskRepository()
	id := repo.Add("Throw away", "", nil, false)
	repo.Add("Keep", "", nil, false)
	uc := NewDeleteTaskUseCase(repo)

	if err := uc.Execute(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.Len() != 1 {
		t.Errorf("expected 1 task left, got %d", repo.Len())
	}
	if err := uc.Execute(context.Background(), id); !errors.Is(err, entity.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestCountTasks(t *testing.T) {
	repo := testutil.NewFakeTaskRepository()
	repo.Add("a", "", nil, false)
	repo.Add("b", "", nil, true)
	repo.Add("c", "", nil, false)

	counts, err := NewCountTasksUseCase(repo).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts.All != 3 || counts.Pending != 2 || counts.Completed != 1 {
		t.Errorf("unexpected counts %+v", counts)
	}
	if counts.Pending+counts.Completed != counts.All {
		t.Error("pending + completed must equal all")
	}
	if repo.Calls("List") != 3 {
		t.Errorf("expected 3 count queries, got %d", repo.Calls("List"))
	}
}

func TestCountTasks_Error(t *testing.T) {
	repo := testutil.NewFakeTaskRepository()
	repo.ListErr = entity.ErrAPIUnavailable

	_, err := NewCountTasksUseCase(repo).Execute(context.Background())
	if !errors.Is(err, entity.ErrAPIUnavailable) {
		t.Errorf("expected ErrAPIUnavailable, got %v", err)
	}
}

func TestListTasks_FilterAndSearch(t *testing.T) {
	repo := testutil.NewFakeTaskRepository()
	repo.Add("Buy milk", "", nil, false)
	repo.Add("Buy bread", "", nil, true)
	repo.Add("Call mum", "about milk", nil, false)
	uc := NewListTasksUseCase(repo, nil)

	page, err := uc.Execute(context.Background(), dto.ListTasksRequest{
		Filter: valueobject.FilterPending,
		Search: "MILK",
		Page:   1,
		Limit:  10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Pagination.TotalItems != 2 || len(page.Tasks) != 2 {
		t.Errorf("expected 2 matches, got %+v", page.Pagination)
	}
}

func TestListTasks_InvalidRequest(t *testing.T) {
	uc := NewListTasksUseCase(testutil.NewFakeTaskRepository(), nil)

	if _, err := uc.Execute(context.Background(), dto.ListTasksRequest{Page: 0, Limit: 10}); !errors.Is(err, entity.ErrInvalidPage) {
		t.Errorf("expected ErrInvalidPage, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), dto.ListTasksRequest{Page: 1, Limit: 0}); !errors.Is(err, entity.ErrInvalidPageSize) {
		t.Errorf("expected ErrInvalidPageSize, got %v", err)
	}
}

func TestListTasks_ExecuteAllWalksPages(t *testing.T) {
	repo := testutil.NewFakeTaskRepository()
	for i := 0; i < 12; i++ {
		repo.Add("task", "", nil, i%2 == 0)
	}
	uc := NewListTasksUseCase(repo, nil)

	all, err := uc.ExecuteAll(context.Background(), dto.ListTasksRequest{Filter: valueobject.FilterAll, Page: 3, Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 12 {
		t.Errorf("expected 12 tasks, got %d", len(all))
	}
	if repo.Calls("List") != 3 {
		t.Errorf("expected 3 page requests, got %d", repo.Calls("List"))
	}
}

type recordingExporter struct {
	tasks  []dto.TaskDTO
	format string
}

func (r *recordingExporter) Export(tasks []dto.TaskDTO, format string) ([]byte, error) {
	r.tasks = tasks
	r.format = format
	return []byte("doc"), nil
}

func TestExportTasks(t *testing.T) {
	repo := testutil.NewFakeTaskRepository()
	repo.Add("a", "", nil, false)
	repo.Add("b", "", nil, true)
	repo.Add("c", "", nil, false)

	exp := &recordingExporter{}
	uc := NewExportTasksUseCase(NewListTasksUseCase(repo, nil), exp)

	data, n, err := uc.Execute(context.Background(), dto.ListTasksRequest{Filter: valueobject.FilterPending, Limit: 1}, "csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "doc" || n != 2 || exp.format != "csv" {
		t.Errorf("unexpected export: %q, %d tasks, format %s", data, n, exp.format)
	}
	if len(exp.tasks) != 2 {
		t.Errorf("expected 2 pending tasks exported, got %d", len(exp.tasks))
	}
}
