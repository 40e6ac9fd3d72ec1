package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"mtodo/internal/infrastructure/config"
	"mtodo/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal user interface",
	Long: `Launch the interactive TUI (Terminal User Interface) for your task list.

Keyboard shortcuts:
  ↑/k ↓/j      - Move selection
  ←/h →/l      - Previous / next page
  g G          - First / last page
  s            - Cycle page size
  1 2 3 / tab  - All / Pending / Completed
  /            - Search (enter applies now, esc leaves the box)
  a            - Add task
  e/Enter      - Edit task
  space/x      - Toggle completed
  d            - Delete task (asks first)
  r            - Reload
  ?            - Full help
  q/Ctrl+C     - Quit

Keybindings and styles are read from the config file and reload
while the TUI is running when the file changes.

Examples:
  # Launch TUI
  mtodo tui

  # Launch TUI (shorthand - default command)
  mtodo`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(getContext())
		defer cancel()
		defer container.Controller.Close()

		m := tui.NewModel(ctx, container)
		p := tea.NewProgram(m, tea.WithAltScreen())

		watcher, err := config.NewWatcher(loader)
		if err != nil {
			container.Logger.Warn("live config reload disabled", "error", err)
		} else {
			defer watcher.Close()
			go watcher.Run(ctx, func(reloaded *config.Config, err error) {
				p.Send(tui.ConfigReloadedMsg{Config: reloaded, Err: err})
			})
		}

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
