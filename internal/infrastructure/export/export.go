// Package export renders task listings as json, yaml, csv, markdown or pdf documents.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"mtodo/internal/application/dto"
	"mtodo/internal/infrastructure/serialization"
)

// ErrUnknownFormat is returned for a format Export does not support
var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists the supported export formats
var Formats = []string{"json", "yaml", "csv", "md", "pdf"}

// Exporter renders tasks in a document format
type Exporter struct {
	dateFormat string
	now        func() time.Time
}

// NewExporter creates an exporter that renders due dates with dateFormat
func NewExporter(dateFormat string) *Exporter {
	if dateFormat == "" {
		dateFormat = "2006-01-02"
	}
	return &Exporter{dateFormat: dateFormat, now: time.Now}
}

// Export renders tasks in the given format
func (e *Exporter) Export(tasks []dto.TaskDTO, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(tasks, "", "  ")
	case "yaml", "yml":
		return yaml.Marshal(tasks)
	case "csv":
		return e.csv(tasks)
	case "md", "markdown":
		return e.markdown(tasks)
	case "pdf":
		return e.pdf(tasks)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func (e *Exporter) csv(tasks []dto.TaskDTO) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"id", "title", "description", "due_date", "completed", "overdue"})
	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.String()
		}
		_ = w.Write([]string{
			t.ID,
			t.Title,
			t.Description,
			due,
			fmt.Sprint(t.Completed),
			fmt.Sprint(t.IsOverdue),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return b.Bytes(), nil
}

// markdownMeta is the frontmatter of a markdown export
type markdownMeta struct {
	Title     string `yaml:"title"`
	Exported  string `yaml:"exported"`
	Total     int    `yaml:"total"`
	Pending   int    `yaml:"pending"`
	Completed int    `yaml:"completed"`
	Overdue   int    `yaml:"overdue"`
}

func (e *Exporter) markdown(tasks []dto.TaskDTO) ([]byte, error) {
	meta := markdownMeta{
		Title:    "Tasks",
		Exported: e.now().Format(time.RFC3339),
		Total:    len(tasks),
	}

	var body strings.Builder
	for _, t := range tasks {
		if t.Completed {
			meta.Completed++
		} else {
			meta.Pending++
		}
		if t.IsOverdue {
			meta.Overdue++
		}

		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		fmt.Fprintf(&body, "- %s %s", box, t.Title)
		if t.DueDate != nil {
			fmt.Fprintf(&body, " (due %s", t.DueDate.Format(e.dateFormat))
			if t.IsOverdue {
				body.WriteString(", overdue")
			}
			body.WriteString(")")
		}
		body.WriteString("\n")
		if t.Description != "" {
			for _, line := range strings.Split(t.Description, "\n") {
				fmt.Fprintf(&body, "  > %s\n", line)
			}
		}
	}

	return serialization.MarshalFrontmatter(meta, body.String())
}

func (e *Exporter) pdf(tasks []dto.TaskDTO) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Tasks")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.Cell(40, 6, fmt.Sprintf("%d tasks, exported %s", len(tasks), e.now().Format("2006-01-02 15:04")))
	pdf.Ln(10)

	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, t.Title)
		if t.DueDate != nil {
			line += "  (due " + t.DueDate.Format(e.dateFormat) + ")"
		}

		pdf.SetFont("Arial", "B", 11)
		switch {
		case t.IsOverdue:
			pdf.SetTextColor(200, 40, 40)
		case t.Completed:
			pdf.SetTextColor(130, 130, 130)
		default:
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)

		if t.Description != "" {
			pdf.SetFont("Arial", "I", 9)
			pdf.SetTextColor(100, 100, 100)
			pdf.MultiCell(0, 5, tr(t.Description), "0", "L", false)
		}
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
