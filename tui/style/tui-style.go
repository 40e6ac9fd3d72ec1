package style

import (
	"github.com/charmbracelet/lipgloss"
	"mtodo/internal/infrastructure/config"
)

var (
	HeaderStyle        lipgloss.Style
	TabStyle           lipgloss.Style
	ActiveTabStyle     lipgloss.Style
	SearchBoxStyle     lipgloss.Style
	TaskCardStyle      lipgloss.Style
	SelectedCardStyle  lipgloss.Style
	TaskTitleStyle     lipgloss.Style
	CompletedTaskStyle lipgloss.Style
	DescriptionStyle   lipgloss.Style
	DueDateStyle       lipgloss.Style
	OverdueStyle       lipgloss.Style
	PaginationStyle    lipgloss.Style
	CurrentPageStyle   lipgloss.Style
	DisabledPageStyle  lipgloss.Style
	ModalStyle         lipgloss.Style
	ErrorBoxStyle      lipgloss.Style
	ErrorTextStyle     lipgloss.Style
	StatusStyle        lipgloss.Style
	HelpStyle          lipgloss.Style
)

// InitStyles initializes the styles from config
func InitStyles(cfg *config.Config) {
	styles := cfg.TUI.Styles

	HeaderStyle = textStyle(styles.Header)
	TabStyle = textStyle(styles.Tab)
	ActiveTabStyle = textStyle(styles.ActiveTab)
	SearchBoxStyle = boxStyle(styles.SearchBox)

	// Task cards only differ in border color
	TaskCardStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(styles.TaskCard.BorderColor))
	SelectedCardStyle = TaskCardStyle.
		BorderForeground(lipgloss.Color(styles.SelectedTaskCard.BorderColor))

	TaskTitleStyle = textStyle(styles.TaskTitle)
	CompletedTaskStyle = textStyle(styles.CompletedTask)
	DescriptionStyle = textStyle(styles.Description)
	DueDateStyle = textStyle(styles.DueDate)
	OverdueStyle = textStyle(styles.Overdue)

	PaginationStyle = textStyle(styles.Pagination)
	CurrentPageStyle = textStyle(styles.CurrentPage)
	DisabledPageStyle = textStyle(styles.DisabledPage)

	ModalStyle = boxStyle(styles.Modal)
	ErrorBoxStyle = boxStyle(styles.ErrorBox)
	ErrorTextStyle = textStyle(styles.ErrorText)
	StatusStyle = textStyle(styles.Status)

	// Help style
	HelpStyle = lipgloss.NewStyle().
		Padding(styles.Help.PaddingVertical, 0, 0, styles.Help.PaddingHorizontal)
	if styles.Help.Foreground != "" {
		HelpStyle = HelpStyle.Foreground(lipgloss.Color(styles.Help.Foreground))
	}
}

// textStyle builds a style from a configured text style
func textStyle(ts config.TextStyle) lipgloss.Style {
	s := lipgloss.NewStyle().
		Padding(ts.PaddingVertical, ts.PaddingHorizontal)
	if ts.Foreground != "" {
		s = s.Foreground(lipgloss.Color(ts.Foreground))
	}
	if ts.Background != "" {
		s = s.Background(lipgloss.Color(ts.Background))
	}
	if ts.Bold {
		s = s.Bold(true)
	}
	if ts.Italic {
		s = s.Italic(true)
	}
	if ts.Strikethrough {
		s = s.Strikethrough(true)
	}
	if ts.Align != "" {
		s = s.Align(getAlign(ts.Align))
	}
	return s
}

// boxStyle builds a bordered style from a configured box style
func boxStyle(bs config.BoxStyle) lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(bs.PaddingVertical, bs.PaddingHorizontal).
		Border(getBorder(bs.BorderStyle)).
		BorderForeground(lipgloss.Color(bs.BorderColor))
}

// getBorder returns the border style based on the name
func getBorder(name string) lipgloss.Border {
	switch name {
	case "rounded":
		return lipgloss.RoundedBorder()
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// getAlign returns the alignment based on the name
func getAlign(name string) lipgloss.Position {
	switch name {
	case "left":
		return lipgloss.Left
	case "center":
		return lipgloss.Center
	case "right":
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}
