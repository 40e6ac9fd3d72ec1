package commands

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"mtodo/cmd/mtodo/output"
	"mtodo/pkg/filesystem"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage mtodo configuration settings.

Configuration is stored in YAML format at:
  ~/.config/mtodo/config.yml

Any value tagged with an environment key can be overridden with an
MTODO_ variable, e.g. MTODO_API_BASE_URL or MTODO_PAGE_SIZE. Variables
may also come from a .env file in the working directory.

Examples:
  # Show current configuration
  mtodo config show

  # Edit config in editor
  mtodo config edit

  # Show config file location
  mtodo config path

  # Reset config to defaults
  mtodo config reset`,
	// Config commands must work even when the config points at an unreachable API
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupOutput(cmd); err != nil {
			return err
		}
		var err error
		loader, err = newLoader()
		if err != nil {
			return fmt.Errorf("failed to create config loader: %w", err)
		}
		return nil
	},
}

// configShowCmd shows the current configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the effective configuration, environment overrides included.

Examples:
  # Show in YAML format (default)
  mtodo config show

  # Show in JSON format
  mtodo config show --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig()
		if err != nil {
			return err
		}

		if formatter.Format() == output.FormatJSON {
			return formatter.Print(loaded)
		}

		data, err := yaml.Marshal(loaded)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// configEditCmd opens the config file in an editor
var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit config in editor",
	Long: `Open the configuration file in your default editor.

The editor is determined by the EDITOR environment variable (default: vi).
A running TUI picks up the saved changes.

Examples:
  # Edit config with default editor
  mtodo config edit

  # Edit with specific editor
  EDITOR=nano mtodo config edit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Make sure there is a file to edit
		if _, err := loader.Load(); err != nil {
			printer.Warning("Current config does not load: %v", err)
		}
		path := loader.GetConfigPath()

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		printer.Info("Opening config file: %s", path)
		printer.Subtle("Editor: %s", editor)

		editorCmd := exec.Command(editor, path)
		editorCmd.Stdin = os.Stdin
		editorCmd.Stdout = os.Stdout
		editorCmd.Stderr = os.Stderr

		if err := editorCmd.Run(); err != nil {
			return fmt.Errorf("failed to run editor: %w", err)
		}

		if _, err := loader.Load(); err != nil {
			return fmt.Errorf("config saved but invalid: %w", err)
		}
		printer.Success("Config file edited")
		return nil
	},
}

// configPathCmd shows the config file path
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), loader.GetConfigPath())
		return nil
	},
}

// configInitCmd writes the default config file if there is none
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file with defaults",
	Long: `Create the configuration file with default values.

An existing file is left untouched; use 'mtodo config reset' to overwrite it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := loader.GetConfigPath()
		exists, err := filesystem.Exists(path)
		if err != nil {
			return fmt.Errorf("failed to check config: %w", err)
		}
		if exists {
			printer.Info("Config already exists: %s", path)
			return nil
		}

		if _, err := loader.Load(); err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}
		printer.Success("Created config: %s", path)
		return nil
	},
}

// configResetCmd resets the config to defaults
var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset config to defaults",
	Long: `Reset the configuration to default values.

WARNING: This will overwrite your current configuration.

Examples:
  # Reset config (with confirmation)
  mtodo config reset

  # Reset without confirmation
  mtodo config reset --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := loader.GetConfigPath()

		if !force && !printer.Confirm(cmd.InOrStdin(), "Reset %s to defaults? This cannot be undone.", path) {
			printer.Info("Reset cancelled")
			return nil
		}

		if _, err := loader.Reset(); err != nil {
			return fmt.Errorf("failed to reset config: %w", err)
		}
		printer.Success("Config reset: %s", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	// Add subcommands
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configResetCmd)

	// configResetCmd flags
	configResetCmd.Flags().Bool("force", false, "Reset without confirmation")
}
