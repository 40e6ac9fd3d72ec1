package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"mtodo/internal/application/dto"
	"mtodo/internal/domain/valueobject"
	"mtodo/tui/style"
)

// renderTabs renders the filter tabs with their task counts
func renderTabs(active valueobject.Filter, counts dto.CountsDTO) string {
	tabs := make([]string, 0, len(valueobject.Filters))
	for _, f := range valueobject.Filters {
		label := fmt.Sprintf("%s (%d)", f.Label(), counts.For(f))
		if f == active {
			tabs = append(tabs, style.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, style.TabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
