package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"mtodo/internal/application/controller"
	"mtodo/tui/style"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	snap := m.ctrl.Snapshot()

	switch {
	case snap.FetchErr != nil:
		return m.place(m.renderError(snap.FetchErr))
	case !snap.Loaded:
		return m.place(m.spinner.View() + " Loading tasks...")
	case m.mode == modeEditor && m.editor != nil:
		return m.place(m.editor.view())
	case m.mode == modeConfirm && m.confirm != nil:
		return m.place(m.renderConfirm())
	}

	header := style.HeaderStyle.Render("mtodo")
	if snap.Loading {
		header += " " + m.spinner.View()
	}

	sections := []string{
		header,
		renderTabs(snap.Query.Filter, snap.Counts),
		m.renderSearch(snap),
		m.renderTasks(snap),
		renderPagination(snap),
	}
	if snap.MutationErr != nil {
		sections = append(sections, style.ErrorTextStyle.Render("Error: "+snap.MutationErr.Error()+" (esc to dismiss)"))
	}
	if m.status != "" {
		sections = append(sections, style.StatusStyle.Render(m.status))
	}
	sections = append(sections, style.HelpStyle.Render(m.help.View(keys)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// place centers a block on screen
func (m Model) place(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderSearch(snap controller.Snapshot) string {
	width := max(m.width-4, 20)

	var line string
	switch {
	case m.mode == modeSearch:
		line = m.search.View()
	case snap.SearchText == "":
		line = style.DescriptionStyle.Render("Search tasks... (/)")
	default:
		line = "/ " + snap.SearchText
	}
	if m.ctrl.SearchPending() {
		line += style.DescriptionStyle.Render("  searching…")
	}
	return style.SearchBoxStyle.Width(width).Render(line)
}

// renderTasks renders the visible window of task cards
func (m Model) renderTasks(snap controller.Snapshot) string {
	width := max(m.width-4, 20)

	if len(snap.Tasks) == 0 {
		msg := "No tasks"
		if snap.Query.Search != "" {
			msg = fmt.Sprintf("No tasks matching %q", snap.Query.Search)
		}
		return style.DescriptionStyle.Padding(1, 2).Render(msg)
	}

	visible := m.visibleCards()
	end := min(m.offset+visible, len(snap.Tasks))

	var cards []string
	if m.offset > 0 {
		cards = append(cards, style.DescriptionStyle.Render("▲ more above"))
	}
	for i := m.offset; i < end; i++ {
		cards = append(cards, renderTaskCard(snap.Tasks[i], width, i == m.cursor, m.dateFormat))
	}
	if end < len(snap.Tasks) {
		cards = append(cards, style.DescriptionStyle.Render("▼ more below"))
	}
	return strings.Join(cards, "\n")
}

func (m Model) renderError(err error) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		style.ErrorTextStyle.Render("Could not load tasks"),
		"",
		err.Error(),
		"",
		style.HelpStyle.Render(fmt.Sprintf("%s retry • %s quit", keys.Reload.Help().Key, keys.Quit.Help().Key)),
	)
	return style.ErrorBoxStyle.Render(body)
}

func (m Model) renderConfirm() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		style.HeaderStyle.Render("Delete task"),
		"",
		fmt.Sprintf("Delete task %q? This cannot be undone.", m.confirm.title),
		"",
		style.HelpStyle.Render("y confirm • n cancel"),
	)
	return style.ModalStyle.Render(body)
}
