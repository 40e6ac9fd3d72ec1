package api

import (
	"fmt"

	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/repository"
	"mtodo/internal/domain/valueobject"
)

// toEntity converts a wire task into a domain task
func (t taskJSON) toEntity() (*entity.Task, error) {
	id := string(t.ID)
	if id == "" {
		id = string(t.MongoID)
	}

	var due *valueobject.Date
	if t.DueDate != nil && *t.DueDate != "" {
		d, err := valueobject.ParseDate(*t.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: task %s: %v", entity.ErrInvalidDate, id, err)
		}
		due = &d
	}

	description := ""
	if t.Description != nil {
		description = *t.Description
	}

	return entity.NewTask(id, t.Title, description, due, t.Completed)
}

// toPage converts a list response. Missing pagination fields are derived
// from the request so the page is always self-consistent.
func (r listResponse) toPage(criteria repository.ListCriteria) (*repository.TaskPage, error) {
	tasks := make([]*entity.Task, 0, len(r.Tasks))
	for _, t := range r.Tasks {
		task, err := t.toEntity()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	page := &repository.TaskPage{
		Tasks:       tasks,
		CurrentPage: int(r.Pagination.CurrentPage),
		TotalPages:  int(r.Pagination.TotalPages),
		TotalTasks:  int(r.Pagination.TotalTasks),
	}
	if page.CurrentPage < 1 {
		page.CurrentPage = max(criteria.Page, 1)
	}
	if page.TotalTasks < len(tasks) {
		page.TotalTasks = len(tasks)
	}
	if page.TotalPages < 1 {
		page.TotalPages = 1
		if criteria.Limit > 0 && page.TotalTasks > 0 {
			page.TotalPages = (page.TotalTasks + criteria.Limit - 1) / criteria.Limit
		}
	}
	return page, nil
}

// draftBody is the POST /tasks payload
func draftBody(draft repository.TaskDraft) map[string]any {
	body := map[string]any{"title": draft.Title}
	if draft.Description != "" {
		body["description"] = draft.Description
	}
	if draft.DueDate != nil {
		body["dueDate"] = draft.DueDate.String()
	}
	return body
}

// patchBody is the PATCH /tasks/{id} payload; a cleared due date is sent as null
func patchBody(patch repository.TaskPatch) map[string]any {
	body := make(map[string]any)
	if patch.Title != nil {
		body["title"] = *patch.Title
	}
	if patch.Description != nil {
		body["description"] = *patch.Description
	}
	switch {
	case patch.ClearDueDate:
		body["dueDate"] = nil
	case patch.DueDate != nil:
		body["dueDate"] = patch.DueDate.String()
	}
	if patch.Completed != nil {
		body["completed"] = *patch.Completed
	}
	return body
}
