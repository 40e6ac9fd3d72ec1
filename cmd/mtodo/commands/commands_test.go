package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"mtodo/internal/application/dto"
	"mtodo/internal/domain/valueobject"
)

type apiTask struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	DueDate     *string `json:"dueDate"`
	Completed   bool    `json:"completed"`
}

// fakeAPI is a minimal Task API: list with completed filter and paging,
// create, patch and delete
type fakeAPI struct {
	mu      sync.Mutex
	tasks   []apiTask
	nextID  int
	queries []url.Values
}

// pageQuery returns the recorded list query that carried a search term
func (a *fakeAPI) pageQuery(search string) url.Values {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, q := range a.queries {
		if q.Get("search") == search {
			return q
		}
	}
	return nil
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{nextID: 1}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks", api.list)
	mux.HandleFunc("POST /tasks", api.create)
	mux.HandleFunc("PATCH /tasks/{id}", api.patch)
	mux.HandleFunc("DELETE /tasks/{id}", api.delete)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return api, srv
}

func (a *fakeAPI) add(title string, completed bool) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := strconv.Itoa(a.nextID)
	a.nextID++
	a.tasks = append(a.tasks, apiTask{ID: id, Title: title, Completed: completed})
	return id
}

func (a *fakeAPI) list(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	q := r.URL.Query()
	a.queries = append(a.queries, q)
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	matched := make([]apiTask, 0)
	for _, task := range a.tasks {
		if c := q.Get("completed"); c != "" && strconv.FormatBool(task.Completed) != c {
			continue
		}
		if s := q.Get("search"); s != "" && !strings.Contains(strings.ToLower(task.Title), strings.ToLower(s)) {
			continue
		}
		matched = append(matched, task)
	}

	totalPages := (len(matched) + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}
	start := min((page-1)*limit, len(matched))
	end := min(start+limit, len(matched))

	_ = json.NewEncoder(w).Encode(map[string]any{
		"tasks": matched[start:end],
		"pagination": map[string]any{
			"currentPage": page,
			"totalPages":  totalPages,
			"totalTasks":  len(matched),
		},
	})
}

func (a *fakeAPI) create(w http.ResponseWriter, r *http.Request) {
	var body apiTask
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"message":"bad body"}`, http.StatusBadRequest)
		return
	}

	a.mu.Lock()
	body.ID = strconv.Itoa(a.nextID)
	a.nextID++
	a.tasks = append(a.tasks, body)
	a.mu.Unlock()

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(body)
}

func (a *fakeAPI) patch(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"message":"bad body"}`, http.StatusBadRequest)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.tasks {
		if a.tasks[i].ID != r.PathValue("id") {
			continue
		}
		if c, ok := body["completed"].(bool); ok {
			a.tasks[i].Completed = c
		}
		if title, ok := body["title"].(string); ok {
			a.tasks[i].Title = title
		}
		_ = json.NewEncoder(w).Encode(a.tasks[i])
		return
	}
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"message":"Task not found"}`))
}

func (a *fakeAPI) delete(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.tasks {
		if a.tasks[i].ID == r.PathValue("id") {
			a.tasks = append(a.tasks[:i], a.tasks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"message":"Task not found"}`))
}

func (a *fakeAPI) len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.tasks)
}

// runCLI runs the root command against a config file pointing at baseURL.
// Flags keep their values between runs, so every call passes --output.
func runCLI(t *testing.T, baseURL string, stdin string, args ...string) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("api:\n  base_url: "+baseURL+"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--config", path))
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	runCleanup()
	return out.String(), err
}

func TestTaskList_JSON(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.add("Buy milk", false)
	api.add("Walk dog", true)

	out, err := runCLI(t, srv.URL, "", "task", "list", "--output", "json", "--filter", "pending")
	if err != nil {
		t.Fatalf("task list: %v\n%s", err, out)
	}

	var got taskListOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not json: %v\n%s", err, out)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].Title != "Buy milk" {
		t.Errorf("tasks = %+v", got.Tasks)
	}
	if got.Counts.All != 2 || got.Counts.Pending != 1 || got.Counts.Completed != 1 {
		t.Errorf("counts = %+v", got.Counts)
	}
	if got.Pagination.TotalItems != 1 {
		t.Errorf("pagination = %+v", got.Pagination)
	}
}

func TestTaskList_IDs(t *testing.T) {
	api, srv := newFakeAPI(t)
	first := api.add("a", false)
	second := api.add("b", false)

	out, err := runCLI(t, srv.URL, "", "task", "list", "--output", "id", "--filter", "all")
	if err != nil {
		t.Fatalf("task list: %v", err)
	}
	if out != first+"\n"+second+"\n" {
		t.Errorf("output = %q", out)
	}
}

// resetListFlags restores task list flags after a test, cobra keeps them
// between executions
func resetListFlags(t *testing.T) {
	t.Cleanup(func() {
		for name, value := range map[string]string{
			"search": "", "limit": "0", "page": "1", "due-from": "", "due-to": "",
		} {
			_ = taskListCmd.Flags().Set(name, value)
		}
	})
}

func TestTaskList_SearchAndPage(t *testing.T) {
	resetListFlags(t)
	api, srv := newFakeAPI(t)
	api.add("Buy milk", false)
	api.add("Walk dog", false)
	api.add("Oat milk", true)

	out, err := runCLI(t, srv.URL, "", "task", "list", "--output", "json", "--filter", "all",
		"--search", " milk ", "--limit", "1", "--page", "2")
	if err != nil {
		t.Fatalf("task list: %v\n%s", err, out)
	}

	q := api.pageQuery("milk")
	if q == nil {
		t.Fatal("no list request carried the trimmed search text")
	}
	if q.Get("page") != "2" || q.Get("limit") != "1" {
		t.Errorf("page query = %v, want page=2 limit=1", q)
	}

	var got taskListOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not json: %v\n%s", err, out)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].Title != "Oat milk" {
		t.Errorf("tasks = %+v", got.Tasks)
	}
	if got.Pagination.TotalItems != 2 || got.Pagination.TotalPages != 2 {
		t.Errorf("pagination = %+v", got.Pagination)
	}
	if got.Counts.All != 3 {
		t.Errorf("counts must ignore search, got %+v", got.Counts)
	}
}

func TestTaskList_DueRangeReversed(t *testing.T) {
	resetListFlags(t)
	_, srv := newFakeAPI(t)

	_, err := runCLI(t, srv.URL, "", "task", "list", "--output", "text", "--filter", "all",
		"--due-from", "2025-07-31", "--due-to", "2025-07-01")
	if err == nil || !strings.Contains(err.Error(), "--due-from 2025-07-31 is after --due-to 2025-07-01") {
		t.Errorf("err = %v", err)
	}
}

func TestTaskCreate(t *testing.T) {
	api, srv := newFakeAPI(t)

	out, err := runCLI(t, srv.URL, "", "task", "create", "--output", "json", "--title", "Buy milk", "--due", "2025-07-13")
	if err != nil {
		t.Fatalf("task create: %v\n%s", err, out)
	}
	if api.len() != 1 {
		t.Fatalf("api has %d tasks, want 1", api.len())
	}
	if !strings.Contains(out, `"due_date": "2025-07-13"`) {
		t.Errorf("created task missing due date:\n%s", out)
	}

	if _, err := runCLI(t, srv.URL, "", "task", "create", "--output", "json", "--title", "x", "--due", "13/07/2025"); err == nil {
		t.Error("invalid --due should fail")
	}
}

func TestTaskCompleteFromPipe(t *testing.T) {
	api, srv := newFakeAPI(t)
	id := api.add("Buy milk", false)

	out, err := runCLI(t, srv.URL, id+"\n", "task", "complete", "--output", "json")
	if err != nil {
		t.Fatalf("task complete: %v\n%s", err, out)
	}
	if !strings.Contains(out, `"completed": true`) {
		t.Errorf("output = %s", out)
	}
}

func TestTaskDelete(t *testing.T) {
	api, srv := newFakeAPI(t)
	id := api.add("Buy milk", false)

	// Declining keeps the task
	out, err := runCLI(t, srv.URL, "n\n", "task", "delete", id, "--output", "text")
	if err != nil {
		t.Fatalf("task delete: %v", err)
	}
	if api.len() != 1 {
		t.Fatal("declined delete removed the task")
	}
	if !strings.Contains(out, "This cannot be undone.") {
		t.Errorf("prompt missing: %q", out)
	}

	if _, err := runCLI(t, srv.URL, "y\n", "task", "delete", id, "--output", "text"); err != nil {
		t.Fatalf("task delete: %v", err)
	}
	if api.len() != 0 {
		t.Error("confirmed delete kept the task")
	}

	if _, err := runCLI(t, srv.URL, "y\n", "task", "delete", "missing", "--output", "text"); err == nil {
		t.Error("deleting an unknown task should fail")
	}
}

func TestTaskExport_CSV(t *testing.T) {
	api, srv := newFakeAPI(t)
	for i := 0; i < 12; i++ {
		api.add("task "+strconv.Itoa(i), false)
	}

	dest := filepath.Join(t.TempDir(), "tasks.csv")
	if _, err := runCLI(t, srv.URL, "", "task", "export", "--output", "text", "--format", "csv", "--limit", "5", "--out", dest); err != nil {
		t.Fatalf("task export: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 13 {
		t.Errorf("csv has %d lines, want header + 12", len(lines))
	}
}

func TestUpdateRequestFromFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cmd *cobra.Command)
	}{
		{
			name: "only changed flags",
			args: []string{"--title", "New"},
			check: func(t *testing.T, cmd *cobra.Command) {
				req, err := updateRequestFromFlags(cmd)
				if err != nil {
					t.Fatal(err)
				}
				if req.Title == nil || *req.Title != "New" {
					t.Errorf("title = %v", req.Title)
				}
				if req.Description != nil || req.Completed != nil || req.DueDate != nil || req.ClearDueDate {
					t.Errorf("unexpected fields in %+v", req)
				}
			},
		},
		{
			name: "completed false is sent",
			args: []string{"--completed=false"},
			check: func(t *testing.T, cmd *cobra.Command) {
				req, _ := updateRequestFromFlags(cmd)
				if req.Completed == nil || *req.Completed {
					t.Errorf("completed = %v, want false", req.Completed)
				}
			},
		},
		{
			name: "clear due",
			args: []string{"--clear-due"},
			check: func(t *testing.T, cmd *cobra.Command) {
				req, _ := updateRequestFromFlags(cmd)
				if !req.ClearDueDate || req.DueDate != nil {
					t.Errorf("req = %+v", req)
				}
			},
		},
		{
			name: "bad due",
			args: []string{"--due", "tomorrow"},
			check: func(t *testing.T, cmd *cobra.Command) {
				if _, err := updateRequestFromFlags(cmd); err == nil {
					t.Error("expected an error")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "update"}
			addUpdateFlags(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}
			tt.check(t, cmd)
		})
	}
}

func TestExtractArgsFromInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		want     []string
	}{
		{"single id", "42\n", 1, []string{"42"}},
		{"skips blank lines", "\n\n  7  \n", 1, []string{"7"}},
		{"tab separated", "42\tBuy milk\n", 1, []string{"42"}},
		{"two args", "a b\n", 2, []string{"a", "b"}},
		{"not enough", "a\n", 2, nil},
		{"empty", "", 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractArgsFromInput([]byte(tt.input), tt.expected)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") || len(got) != len(tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDateFlag(t *testing.T) {
	if d, err := parseDateFlag("due", ""); err != nil || d != nil {
		t.Errorf("empty = %v, %v", d, err)
	}
	d, err := parseDateFlag("due", "2025-07-13")
	if err != nil || d.String() != "2025-07-13" {
		t.Errorf("valid = %v, %v", d, err)
	}
	if _, err := parseDateFlag("due", "13/07/2025"); err == nil || !strings.Contains(err.Error(), "--due") {
		t.Errorf("invalid date error = %v", err)
	}
}

func TestDefaultExportName(t *testing.T) {
	tests := []struct {
		req  dto.ListTasksRequest
		want string
	}{
		{dto.ListTasksRequest{Filter: valueobject.FilterAll}, "tasks.pdf"},
		{dto.ListTasksRequest{Filter: valueobject.FilterPending}, "tasks-pending.pdf"},
		{dto.ListTasksRequest{Filter: valueobject.FilterCompleted, Search: "Buy Milk!"}, "tasks-completed-buy-milk.pdf"},
	}

	for _, tt := range tests {
		if got := defaultExportName(tt.req, "pdf"); got != tt.want {
			t.Errorf("defaultExportName(%+v) = %q, want %q", tt.req, got, tt.want)
		}
	}
}
