package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"mtodo/cmd/mtodo/output"
	"mtodo/internal/application/dto"
	"mtodo/internal/application/query"
	"mtodo/internal/domain/valueobject"
	"mtodo/internal/infrastructure/export"
	"mtodo/pkg/filesystem"
	"mtodo/pkg/slug"
)

// taskCmd represents the task command
var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long: `Manage tasks on the Task API - list, create, update, complete and delete.

Each task has an ID assigned by the API, a title, an optional description,
an optional due date and a completed flag.

Examples:
  # List all tasks
  mtodo task list

  # Create a new task
  mtodo task create --title "Buy milk" --due 2025-07-13

  # Complete a task
  mtodo task complete 42

  # Delete a task without asking
  mtodo task delete 42 --yes`,
}

// taskListOutput is what task list prints in json and yaml
type taskListOutput struct {
	Tasks      []dto.TaskDTO     `json:"tasks" yaml:"tasks"`
	Pagination dto.PaginationDTO `json:"pagination" yaml:"pagination"`
	Counts     dto.CountsDTO     `json:"counts" yaml:"counts"`
}

// taskListCmd lists tasks
var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List one page of tasks with optional filtering.

Output formats:
  text - Human-readable table (default)
  json - Page, pagination and counts as JSON
  yaml - Page, pagination and counts as YAML
  id   - Task IDs, one per line

Examples:
  # List the first page
  mtodo task list

  # List pending tasks matching "milk"
  mtodo task list --filter pending --search milk

  # Second page, 20 per page
  mtodo task list --page 2 --limit 20

  # Tasks due in July
  mtodo task list --due-from 2025-07-01 --due-to 2025-07-31`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		req, err := listRequestFromFlags(cmd)
		if err != nil {
			return err
		}

		ctrl := container.Controller
		for _, a := range []query.Action{
			query.SetFilter{Filter: req.Filter},
			query.SetSearch{Text: req.Search},
			query.SetPageSize{Size: req.Limit},
			query.SetPage{Page: req.Page},
		} {
			ctrl.Dispatch(a)
		}

		q := ctrl.Query().Request()
		q.DueFrom, q.DueTo = req.DueFrom, req.DueTo
		page, counts, err := ctrl.Load(ctx, q)
		if err != nil {
			return err
		}

		switch {
		case formatter.Structured():
			return formatter.Print(taskListOutput{Tasks: page.Tasks, Pagination: page.Pagination, Counts: counts})
		case formatter.Format() == output.FormatID:
			ids := make([]string, 0, len(page.Tasks))
			for _, t := range page.Tasks {
				ids = append(ids, t.ID)
			}
			return formatter.PrintIDs(ids)
		}

		if len(page.Tasks) == 0 {
			printer.Info("No tasks found")
		} else {
			printTaskTable(page.Tasks)
		}

		printer.Subtle("Page %d of %d (%d tasks)", page.Pagination.CurrentPage, page.Pagination.TotalPages, page.Pagination.TotalItems)
		printer.Subtle("All %d · Pending %d · Completed %d", counts.All, counts.Pending, counts.Completed)
		return nil
	},
}

// taskCreateCmd creates a task
var taskCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new task",
	Long: `Create a new task.

Examples:
  # Title only
  mtodo task create --title "Buy milk"

  # With description and due date
  mtodo task create --title "File taxes" --description "Before the deadline" --due 2025-07-31`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		dueStr, _ := cmd.Flags().GetString("due")

		due, err := parseDateFlag("due", dueStr)
		if err != nil {
			return err
		}

		created, err := container.CreateTaskUseCase.Execute(ctx, dto.CreateTaskRequest{
			Title:       title,
			Description: description,
			DueDate:     due,
		})
		if err != nil {
			return err
		}

		return printTaskResult(created, "Created task %s", created.ID)
	},
}

// taskUpdateCmd updates a task
var taskUpdateCmd = &cobra.Command{
	Use:   "update [task-id]",
	Short: "Update a task",
	Long: `Update the fields of a task. Only the flags you pass are changed.

Examples:
  # Rename a task
  mtodo task update 42 --title "Buy oat milk"

  # Move the due date
  mtodo task update 42 --due 2025-08-01

  # Remove the due date
  mtodo task update 42 --clear-due

  # Reopen a task
  mtodo task update 42 --completed=false`,
	Args: cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		resolvedArgs, err := resolveArgs(cmd, args, 1)
		if err != nil {
			return err
		}
		taskID := resolvedArgs[0]

		req, err := updateRequestFromFlags(cmd)
		if err != nil {
			return err
		}

		updated, err := container.UpdateTaskUseCase.Execute(ctx, taskID, req)
		if err != nil {
			return err
		}

		return printTaskResult(updated, "Updated task %s", updated.ID)
	},
}

// taskCompleteCmd marks a task completed
var taskCompleteCmd = &cobra.Command{
	Use:   "complete [task-id]",
	Short: "Mark a task as completed",
	Long: `Mark a task as completed.

This is the CLI equivalent of the TUI space key on a pending task.

Examples:
  mtodo task complete 42`,
	Args: cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCompleted(cmd, args, true)
	},
}

// taskReopenCmd marks a task pending again
var taskReopenCmd = &cobra.Command{
	Use:   "reopen [task-id]",
	Short: "Mark a task as pending",
	Long: `Mark a completed task as pending again.

Examples:
  mtodo task reopen 42`,
	Args: cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCompleted(cmd, args, false)
	},
}

// taskDeleteCmd deletes a task
var taskDeleteCmd = &cobra.Command{
	Use:   "delete [task-id]",
	Short: "Delete a task",
	Long: `Delete a task.

This is the CLI equivalent of the TUI 'd' key action.

WARNING: This action cannot be undone.

Examples:
  # Delete a task (with confirmation)
  mtodo task delete 42

  # Delete without confirmation
  mtodo task delete 42 --yes`,
	Args: cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		resolvedArgs, err := resolveArgs(cmd, args, 1)
		if err != nil {
			return err
		}
		taskID := resolvedArgs[0]

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			// stdin may already be consumed by a piped ID, so ask on the terminal
			in, closeIn, err := confirmInput(cmd, len(args) == 0)
			if err != nil {
				return err
			}
			defer closeIn()

			if !printer.Confirm(in, "Delete task %s? This cannot be undone.", taskID) {
				printer.Info("Deletion cancelled")
				return nil
			}
		}

		if err := container.DeleteTaskUseCase.Execute(ctx, taskID); err != nil {
			return err
		}

		printer.Success("Deleted task %s", taskID)
		return nil
	},
}

// taskExportCmd exports tasks to a file
var taskExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks to json, yaml, csv, markdown or pdf",
	Long: `Export every task matching the filters, walking all pages.

Documents go to stdout unless --out is given. PDF output is binary and
is written to a file named after the filters when --out is missing,
e.g. tasks-pending-groceries.pdf.

Examples:
  # All tasks as CSV on stdout
  mtodo task export --format csv

  # Pending tasks as a PDF report
  mtodo task export --format pdf --filter pending --out tasks.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")

		req, err := listRequestFromFlags(cmd)
		if err != nil {
			return err
		}

		if out == "" && strings.EqualFold(format, "pdf") {
			out = defaultExportName(req, "pdf")
		}

		data, count, err := container.ExportTasksUseCase.Execute(ctx, req, format)
		if err != nil {
			return err
		}

		if out == "" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}

		if err := filesystem.SafeWrite(out, data, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		printer.Success("Exported %d task(s) to %s", count, out)
		return nil
	},
}

func setCompleted(cmd *cobra.Command, args []string, completed bool) error {
	ctx := getContext()
	resolvedArgs, err := resolveArgs(cmd, args, 1)
	if err != nil {
		return err
	}
	taskID := resolvedArgs[0]

	updated, err := container.UpdateTaskUseCase.Execute(ctx, taskID, dto.UpdateTaskRequest{
		Completed: dto.BoolPtr(completed),
	})
	if err != nil {
		return err
	}

	if completed {
		return printTaskResult(updated, "Completed task %s", updated.Title)
	}
	return printTaskResult(updated, "Reopened task %s", updated.Title)
}

// defaultExportName builds a file name from the listing filters
func defaultExportName(req dto.ListTasksRequest, ext string) string {
	parts := []string{"tasks"}
	if req.Filter != valueobject.FilterAll {
		parts = append(parts, req.Filter.String())
	}
	if req.Search != "" {
		parts = append(parts, slug.Generate(req.Search))
	}
	return strings.Join(parts, "-") + "." + ext
}

// listRequestFromFlags reads the filter flags shared by list and export
func listRequestFromFlags(cmd *cobra.Command) (dto.ListTasksRequest, error) {
	filterStr, _ := cmd.Flags().GetString("filter")
	search, _ := cmd.Flags().GetString("search")
	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")
	dueFromStr, _ := cmd.Flags().GetString("due-from")
	dueToStr, _ := cmd.Flags().GetString("due-to")

	filter, err := valueobject.ParseFilter(filterStr)
	if err != nil {
		return dto.ListTasksRequest{}, fmt.Errorf("invalid --filter %q: must be all, pending or completed", filterStr)
	}

	dueFrom, err := parseDateFlag("due-from", dueFromStr)
	if err != nil {
		return dto.ListTasksRequest{}, err
	}
	dueTo, err := parseDateFlag("due-to", dueToStr)
	if err != nil {
		return dto.ListTasksRequest{}, err
	}
	if dueFrom != nil && dueTo != nil && dueFrom.After(*dueTo) {
		return dto.ListTasksRequest{}, fmt.Errorf("--due-from %s is after --due-to %s", dueFrom, dueTo)
	}

	if limit == 0 {
		limit = cfg.List.PageSize
	}

	return dto.ListTasksRequest{
		Filter:  filter,
		Search:  strings.TrimSpace(search),
		Page:    page,
		Limit:   limit,
		DueFrom: dueFrom,
		DueTo:   dueTo,
	}, nil
}

// updateRequestFromFlags builds a partial update from the flags that were set
func updateRequestFromFlags(cmd *cobra.Command) (dto.UpdateTaskRequest, error) {
	var req dto.UpdateTaskRequest
	flags := cmd.Flags()

	if flags.Changed("title") {
		title, _ := flags.GetString("title")
		req.Title = &title
	}
	if flags.Changed("description") {
		description, _ := flags.GetString("description")
		req.Description = &description
	}
	if flags.Changed("due") {
		dueStr, _ := flags.GetString("due")
		due, err := parseDateFlag("due", dueStr)
		if err != nil {
			return req, err
		}
		req.DueDate = due
		req.ClearDueDate = due == nil
	}
	if clearDue, _ := flags.GetBool("clear-due"); clearDue {
		req.DueDate = nil
		req.ClearDueDate = true
	}
	if flags.Changed("completed") {
		completed, _ := flags.GetBool("completed")
		req.Completed = &completed
	}
	return req, nil
}

// parseDateFlag parses a YYYY-MM-DD flag value; empty means unset
func parseDateFlag(name, value string) (*valueobject.Date, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	d, err := valueobject.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: use YYYY-MM-DD: %w", name, err)
	}
	return &d, nil
}

// confirmInput returns where to read a confirmation from. When the task ID
// came through stdin the terminal is opened instead.
func confirmInput(cmd *cobra.Command, stdinUsed bool) (io.Reader, func(), error) {
	if !stdinUsed {
		return cmd.InOrStdin(), func() {}, nil
	}
	tty, err := os.Open("/dev/tty")
	if err != nil {
		return nil, nil, errors.New("cannot ask for confirmation without a terminal, pass --yes")
	}
	return tty, func() { tty.Close() }, nil
}

// printTaskResult prints a changed task: the task itself in structured
// formats, a success line and the details otherwise
func printTaskResult(task *dto.TaskDTO, format string, args ...any) error {
	switch {
	case formatter.Structured():
		return formatter.Print(task)
	case formatter.Format() == output.FormatID:
		return formatter.PrintIDs([]string{task.ID})
	}

	printer.Success(format, args...)
	printTask(*task)
	return nil
}

// printTask prints the details of one task
func printTask(task dto.TaskDTO) {
	printer.Header("%s", task.Title)
	printer.Println("ID:          %s", task.ID)
	if task.Completed {
		printer.Println("Status:      completed")
	} else {
		printer.Println("Status:      pending")
	}
	if task.DueDate != nil {
		printer.Println("Due:         %s", formatDue(task))
	}
	if task.Description != "" {
		printer.Println("Description: %s", task.Description)
	}
}

// printTaskTable prints tasks as a table
func printTaskTable(tasks []dto.TaskDTO) {
	headers := []string{"ID", "DONE", "TITLE", "DUE"}
	rows := make([][]string, 0, len(tasks))

	for _, task := range tasks {
		done := "[ ]"
		title := task.Title
		if task.Completed {
			done = "[x]"
			title = printer.Done(title)
		}

		due := "-"
		if task.DueDate != nil {
			due = formatDue(task)
		}

		rows = append(rows, []string{task.ID, done, title, due})
	}

	printer.Table(headers, rows)
}

// formatDue renders a due date in the configured format, flagging overdue tasks
func formatDue(task dto.TaskDTO) string {
	due := task.DueDate.Format(cfg.Display.DateFormat)
	if task.IsOverdue {
		return printer.Overdue(due + " (overdue)")
	}
	return due
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().String("filter", "all", "Filter: all, pending, completed")
	cmd.Flags().String("search", "", "Match title or description")
	cmd.Flags().String("due-from", "", "Only tasks due on or after date (YYYY-MM-DD)")
	cmd.Flags().String("due-to", "", "Only tasks due on or before date (YYYY-MM-DD)")
	cmd.Flags().Int("limit", 0, "Tasks per page (default: list.page_size)")
}

func addUpdateFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("due", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().Bool("clear-due", false, "Remove the due date")
	cmd.Flags().Bool("completed", false, "Set the completed flag")
	cmd.MarkFlagsMutuallyExclusive("due", "clear-due")
}

func init() {
	rootCmd.AddCommand(taskCmd)

	// Add subcommands
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskCompleteCmd)
	taskCmd.AddCommand(taskReopenCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	taskCmd.AddCommand(taskExportCmd)

	// taskListCmd flags
	addListFlags(taskListCmd)
	taskListCmd.Flags().Int("page", 1, "Page number")

	// taskExportCmd flags
	addListFlags(taskExportCmd)
	taskExportCmd.Flags().String("format", "json", "Export format: "+strings.Join(export.Formats, ", "))
	taskExportCmd.Flags().String("out", "", "Output file (default: stdout)")

	// taskCreateCmd flags
	taskCreateCmd.Flags().String("title", "", "Task title")
	taskCreateCmd.Flags().String("description", "", "Task description")
	taskCreateCmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	_ = taskCreateCmd.MarkFlagRequired("title")

	// taskUpdateCmd flags
	addUpdateFlags(taskUpdateCmd)

	// taskDeleteCmd flags
	taskDeleteCmd.Flags().BoolP("yes", "y", false, "Delete without confirmation")
}
