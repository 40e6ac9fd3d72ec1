package tui

import (
	"github.com/charmbracelet/lipgloss"
	"mtodo/internal/application/dto"
	"mtodo/tui/style"
)

// renderTaskCard renders one task as a bordered card
func renderTaskCard(task dto.TaskDTO, width int, selected bool, dateFormat string) string {
	inner := max(width-4, 10)

	checkbox := "[ ]"
	titleStyle := style.TaskTitleStyle
	if task.Completed {
		checkbox = "[x]"
		titleStyle = style.CompletedTaskStyle
	}
	title := checkbox + " " + titleStyle.Render(truncate(task.Title, inner-4))

	description := style.DescriptionStyle.Render(truncate(task.Description, inner))

	due := ""
	if task.DueDate != nil {
		text := "Due: " + task.DueDate.Format(dateFormat)
		if task.IsOverdue {
			due = style.OverdueStyle.Render(text + " (overdue)")
		} else {
			due = style.DueDateStyle.Render(text)
		}
	}

	card := style.TaskCardStyle
	if selected {
		card = style.SelectedCardStyle
	}
	return card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, title, description, due))
}

// truncate shortens s to n cells, marking the cut with an ellipsis
func truncate(s string, n int) string {
	if n <= 0 || lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
