package commands

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"mtodo/cmd/mtodo/output"
	"mtodo/internal/di"
	"mtodo/internal/infrastructure/config"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	// Global flags
	outputFormat string
	configPath   string
	quiet        bool

	// Shared instances
	loader    *config.Loader
	cfg       *config.Config
	container *di.Container
	cleanup   func()
	printer   *output.Printer
	formatter *output.Formatter
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mtodo",
	Short: "Terminal client for the Task API",
	Long: `mtodo is a terminal to-do list backed by a remote Task API.

Features:
  - Pending / completed filter tabs with live counts
  - Debounced search and server-side pagination
  - Due dates with overdue highlighting
  - Interactive TUI and a scriptable CLI
  - Export to json, yaml, csv and pdf

The API location comes from api.base_url in the config file
(default http://localhost:3001) or the MTODO_API_BASE_URL variable.

Examples:
  # Launch interactive TUI
  mtodo
  mtodo tui

  # List pending tasks
  mtodo task list --filter pending

  # Create a task due on a date
  mtodo task create --title "Buy milk" --due 2025-07-13

  # Mark a task done
  mtodo task complete 42`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupOutput(cmd); err != nil {
			return err
		}

		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		// The TUI owns the terminal, keep log lines out of it
		if isInteractive(cmd) && cfg.Logging.Output != "file" {
			cfg.Logging.Output = "file"
		}

		container, cleanup, err = di.InitializeContainer(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		runCleanup()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		runCleanup()
		output.ErrorPrinter().Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml, id")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default ~/.config/mtodo/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			printVersion()
			return nil
		}

		if len(args) > 0 {
			return cmd.Help()
		}
		return tuiCmd.RunE(cmd, args)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("mtodo version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Built:      %s\n", BuildDate)
}

// setupOutput builds the printer and formatter from the global flags
func setupOutput(cmd *cobra.Command) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	formatter = output.NewFormatter(format, cmd.OutOrStdout())
	printer = output.NewPrinter(cmd.OutOrStdout())
	printer.SetQuiet(quiet)
	return nil
}

// newLoader returns the loader for --config, or for the default location
func newLoader() (*config.Loader, error) {
	if configPath != "" {
		return config.NewLoaderWithPath(configPath)
	}
	return config.NewLoader()
}

// loadConfig reads .env, then the config file with environment overrides
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var err error
	loader, err = newLoader()
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}

	loaded, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return loaded, nil
}

// runCleanup releases the container once
func runCleanup() {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
}

// isInteractive reports whether cmd starts the TUI
func isInteractive(cmd *cobra.Command) bool {
	if cmd.Name() == "tui" {
		return true
	}
	if cmd.HasParent() {
		return false
	}
	showVersion, _ := cmd.Flags().GetBool("version")
	return !showVersion
}

// getContext returns a context for command execution
func getContext() context.Context {
	return context.Background()
}

// resolveArgs fills missing positional arguments from piped stdin, so
// "mtodo task list -o id | head -1 | mtodo task complete" works
func resolveArgs(cmd *cobra.Command, args []string, expected int) ([]string, error) {
	if len(args) >= expected {
		return args, nil
	}

	pipedArgs, err := readPipedArgs(cmd.InOrStdin(), expected)
	if err != nil {
		return nil, err
	}

	needed := expected - len(args)
	available := len(args) + len(pipedArgs)
	if len(pipedArgs) < needed {
		return nil, fmt.Errorf("accepts %d arg(s), received %d", expected, available)
	}

	resolved := append([]string{}, pipedArgs[:needed]...)
	resolved = append(resolved, args...)
	return resolved, nil
}

func readPipedArgs(in io.Reader, expected int) ([]string, error) {
	if f, ok := in.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return nil, err
		}
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			return nil, nil
		}
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}

	return extractArgsFromInput(data, expected), nil
}

// extractArgsFromInput takes the first line with enough fields. Lines may be
// tab separated (text tables piped through cut) or whitespace separated.
func extractArgsFromInput(data []byte, expected int) []string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var fields []string
		if strings.Contains(line, "\t") {
			fields = strings.Split(line, "\t")
		} else {
			fields = strings.Fields(line)
		}
		if len(fields) >= expected {
			return fields[:expected]
		}
	}
	return nil
}
