// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"mtodo/internal/application/query"
	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/repository"
	"mtodo/internal/domain/valueobject"
)

type fakeTask struct {
	id          string
	title       string
	description string
	dueDate     *valueobject.Date
	completed   bool
}

// FakeTaskRepository is an in-memory implementation of repository.TaskRepository
// that paginates, filters and searches the way the Task API does.
type FakeTaskRepository struct {
	mu    sync.RWMutex
	tasks []*fakeTask
	calls map[string]int

	// Error injection for testing
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
}

// NewFakeTaskRepository creates an empty FakeTaskRepository
func NewFakeTaskRepository() *FakeTaskRepository {
	return &FakeTaskRepository{
		calls: make(map[string]int),
	}
}

// Add stores a task directly, bypassing error injection, and returns its ID
func (f *FakeTaskRepository) Add(title, description string, due *valueobject.Date, completed bool) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := uuid.NewString()
	f.tasks = append(f.tasks, &fakeTask{
		id:          id,
		title:       title,
		description: description,
		dueDate:     copyDate(due),
		completed:   completed,
	})
	return id
}

// Len returns the number of stored tasks
func (f *FakeTaskRepository) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.tasks)
}

// Calls returns how many times the named method was called
func (f *FakeTaskRepository) Calls(method string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls[method]
}

// List implements repository.TaskRepository.
func (f *FakeTaskRepository) List(ctx context.Context, criteria repository.ListCriteria) (*repository.TaskPage, error) {
	f.mu.Lock()
	f.calls["List"]++
	err := f.ListErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(criteria.Search))
	var matched []*fakeTask
	for _, t := range f.tasks {
		if criteria.Completed != nil && t.completed != *criteria.Completed {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.title), search) &&
			!strings.Contains(strings.ToLower(t.description), search) {
			continue
		}
		if criteria.DueFrom != nil && (t.dueDate == nil || t.dueDate.Before(*criteria.DueFrom)) {
			continue
		}
		if criteria.DueTo != nil && (t.dueDate == nil || t.dueDate.After(*criteria.DueTo)) {
			continue
		}
		matched = append(matched, t)
	}

	page, limit := criteria.Page, criteria.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = query.DefaultPageSize
	}

	result := &repository.TaskPage{
		Tasks:       []*entity.Task{},
		CurrentPage: page,
		TotalPages:  query.TotalPages(len(matched), limit),
		TotalTasks:  len(matched),
	}

	start := (page - 1) * limit
	if start >= len(matched) {
		return result, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	for _, t := range matched[start:end] {
		task, err := t.toEntity()
		if err != nil {
			return nil, err
		}
		result.Tasks = append(result.Tasks, task)
	}
	return result, nil
}

// Create implements repository.TaskRepository.
func (f *FakeTaskRepository) Create(ctx context.Context, draft repository.TaskDraft) (*entity.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Create"]++
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}

	t := &fakeTask{
		id:          uuid.NewString(),
		title:       draft.Title,
		description: draft.Description,
		dueDate:     copyDate(draft.DueDate),
	}
	f.tasks = append(f.tasks, t)
	return t.toEntity()
}

// Update implements repository.TaskRepository.
func (f *FakeTaskRepository) Update(ctx context.Context, id string, patch repository.TaskPatch) (*entity.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Update"]++
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}

	for _, t := range f.tasks {
		if t.id != id {
			continue
		}
		if patch.Title != nil {
			t.title = *patch.Title
		}
		if patch.Description != nil {
			t.description = *patch.Description
		}
		if patch.ClearDueDate {
			t.dueDate = nil
		} else if patch.DueDate != nil {
			t.dueDate = copyDate(patch.DueDate)
		}
		if patch.Completed != nil {
			t.completed = *patch.Completed
		}
		return t.toEntity()
	}
	return nil, entity.ErrTaskNotFound
}

// Delete implements repository.TaskRepository.
func (f *FakeTaskRepository) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Delete"]++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}

	for i, t := range f.tasks {
		if t.id == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return entity.ErrTaskNotFound
}

func (t *fakeTask) toEntity() (*entity.Task, error) {
	return entity.NewTask(t.id, t.title, t.description, t.dueDate, t.completed)
}

func copyDate(d *valueobject.Date) *valueobject.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// Compile-time check
var _ repository.TaskRepository = (*FakeTaskRepository)(nil)
