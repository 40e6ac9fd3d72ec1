// Package controller holds the task list state behind the presentation layer:
// the current query, the page of tasks it resolved to, the filter counts and
// the error state. It never performs I/O from a state transition; transitions
// return the Fetch to run and the caller runs it, wherever it likes, with Run.
package controller

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"mtodo/internal/application/dto"
	"mtodo/internal/application/query"
	"mtodo/internal/application/usecase/task"
	"mtodo/internal/domain/valueobject"
	"mtodo/pkg/debounce"
)

// DefaultSearchDelay is the search debounce used when none is configured
const DefaultSearchDelay = 500 * time.Millisecond

// Options configures a Controller
type Options struct {
	PageSize    int
	SearchDelay time.Duration
}

// Fetch is a request for the list page and counts of one query.
// Seq orders fetches; only the latest one issued may be applied.
type Fetch struct {
	Seq   uint64
	Query query.State
}

// Result is the outcome of running a Fetch
type Result struct {
	Fetch  Fetch
	Page   *dto.TaskPageDTO
	Counts dto.CountsDTO
	Err    error
}

// Snapshot is a read-only copy of the controller state for rendering
type Snapshot struct {
	Query       query.State
	SearchText  string
	Tasks       []dto.TaskDTO
	Pagination  dto.PaginationDTO
	Counts      dto.CountsDTO
	Loading     bool
	Loaded      bool
	FetchErr    error
	MutationErr error
}

// Controller is the task list controller. Its methods are meant to be called
// from a single goroutine (the UI loop); Run and Execute only read immutable
// dependencies and may run anywhere.
type Controller struct {
	listTasks  *task.ListTasksUseCase
	countTasks *task.CountTasksUseCase
	createTask *task.CreateTaskUseCase
	updateTask *task.UpdateTaskUseCase
	deleteTask *task.DeleteTaskUseCase

	search *debounce.Debouncer
	notify func()

	state      query.State
	searchText string
	seq        uint64

	tasks       []dto.TaskDTO
	pagination  dto.PaginationDTO
	counts      dto.CountsDTO
	loading     bool
	loaded      bool
	fetchErr    error
	mutationErr error
}

// New creates a Controller for the first page of all tasks
func New(
	listTasks *task.ListTasksUseCase,
	countTasks *task.CountTasksUseCase,
	createTask *task.CreateTaskUseCase,
	updateTask *task.UpdateTaskUseCase,
	deleteTask *task.DeleteTaskUseCase,
	opts Options,
) *Controller {
	delay := opts.SearchDelay
	if delay <= 0 {
		delay = DefaultSearchDelay
	}
	state := query.NewState(opts.PageSize)

	return &Controller{
		listTasks:  listTasks,
		countTasks: countTasks,
		createTask: createTask,
		updateTask: updateTask,
		deleteTask: deleteTask,
		search:     debounce.New(delay),
		state:      state,
		pagination: dto.PaginationDTO{CurrentPage: state.Page, TotalPages: 1},
	}
}

// SetNotifier sets the function called, on the timer's goroutine, when a
// debounced search is due. The presentation layer answers it by calling
// CommitSearch from its own loop.
func (c *Controller) SetNotifier(fn func()) {
	c.notify = fn
}

// Snapshot returns the state to render
func (c *Controller) Snapshot() Snapshot {
	tasks := make([]dto.TaskDTO, len(c.tasks))
	copy(tasks, c.tasks)

	return Snapshot{
		Query:       c.state,
		SearchText:  c.searchText,
		Tasks:       tasks,
		Pagination:  c.pagination,
		Counts:      c.counts,
		Loading:     c.loading,
		Loaded:      c.loaded,
		FetchErr:    c.fetchErr,
		MutationErr: c.mutationErr,
	}
}

// Query returns the current query state
func (c *Controller) Query() query.State {
	return c.state
}

// Start issues the first fetch
func (c *Controller) Start() Fetch {
	return c.issue()
}

// Dispatch reduces an action into the query state and returns the fetch
// it requires, if any
func (c *Controller) Dispatch(a query.Action) (Fetch, bool) {
	next, changed := query.Reduce(c.state, a)
	if !changed {
		return Fetch{}, false
	}
	c.state = next
	return c.issue(), true
}

// Reload re-issues the fetch for the current query (the retry action)
func (c *Controller) Reload() (Fetch, bool) {
	return c.Dispatch(query.Reload{})
}

// Run performs the list request and the three count requests concurrently
func (c *Controller) Run(ctx context.Context, f Fetch) Result {
	page, counts, err := c.Load(ctx, f.Query.Request())
	if err != nil {
		return Result{Fetch: f, Err: err}
	}
	return Result{Fetch: f, Page: page, Counts: counts}
}

// Load fetches one page for req and the filter counts concurrently. It does
// not touch controller state; callers needing criteria the query state does
// not carry, such as a due date range, call it directly.
func (c *Controller) Load(ctx context.Context, req dto.ListTasksRequest) (*dto.TaskPageDTO, dto.CountsDTO, error) {
	var (
		page   *dto.TaskPageDTO
		counts dto.CountsDTO
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		page, err = c.listTasks.Execute(gctx, req)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = c.countTasks.Execute(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, dto.CountsDTO{}, err
	}
	return page, counts, nil
}

// Stale reports whether a newer fetch was issued after r's
func (c *Controller) Stale(r Result) bool {
	return r.Fetch.Seq != c.seq
}

// Apply installs a fetch result unless it is stale. When the result shows the
// current page is past the last page, the page is clamped and the follow-up
// fetch is returned.
func (c *Controller) Apply(r Result) (Fetch, bool) {
	if c.Stale(r) {
		return Fetch{}, false
	}
	c.loading = false

	if r.Err != nil {
		c.fetchErr = r.Err
		return Fetch{}, false
	}

	c.fetchErr = nil
	c.loaded = true
	c.tasks = r.Page.Tasks
	c.counts = r.Counts
	c.pagination = r.Page.Pagination

	last := max(c.pagination.TotalPages, 1)
	if c.state.Page > last {
		c.state.Page = last
		return c.issue(), true
	}
	return Fetch{}, false
}

// SetFilter switches the filter tab, dropping any typed search
func (c *Controller) SetFilter(f valueobject.Filter) (Fetch, bool) {
	c.search.Cancel()
	c.searchText = ""
	return c.Dispatch(query.SetFilter{Filter: f})
}

// SetSearchText records typed search text and restarts the debounce timer
func (c *Controller) SetSearchText(s string) {
	c.searchText = s
	c.search.Schedule(func() {
		if c.notify != nil {
			c.notify()
		}
	})
}

// SearchPending reports whether typed text is waiting for the debounce timer
func (c *Controller) SearchPending() bool {
	return c.search.Pending()
}

// CommitSearch applies the typed search text
func (c *Controller) CommitSearch() (Fetch, bool) {
	c.search.Cancel()
	return c.Dispatch(query.SetSearch{Text: c.searchText})
}

// SetPage moves to page p
func (c *Controller) SetPage(p int) (Fetch, bool) {
	return c.Dispatch(query.SetPage{Page: p})
}

// SetPageSize changes the page size and goes back to page 1
func (c *Controller) SetPageSize(n int) (Fetch, bool) {
	return c.Dispatch(query.SetPageSize{Size: n})
}

// Close stops the debounce timer
func (c *Controller) Close() {
	c.search.Cancel()
}

func (c *Controller) issue() Fetch {
	c.seq++
	c.loading = true
	return Fetch{Seq: c.seq, Query: c.state}
}
