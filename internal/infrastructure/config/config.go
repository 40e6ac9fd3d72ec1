package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"mtodo/pkg/filesystem"
)

const (
	defaultConfigFileName = "config.yml"
	defaultConfigDirName  = ".config/mtodo"
	defaultDataDirName    = ".local/share/mtodo"
	defaultLogFileName    = "mtodo.log"

	DefaultBaseURL    = "http://localhost:3001"
	DefaultDateFormat = "02/01/2006"
)

// ErrInvalidConfig is returned when a loaded configuration cannot be used
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration
type Config struct {
	API         APIConfig         `yaml:"api"`
	List        ListConfig        `yaml:"list"`
	Display     DisplayConfig     `yaml:"display"`
	Logging     LoggingConfig     `yaml:"logging"`
	TUI         TUIConfig         `yaml:"tui"`
	Keybindings KeybindingsConfig `yaml:"keybindings"`
}

// APIConfig holds Task API connection settings
type APIConfig struct {
	BaseURL        string `yaml:"base_url" env:"API_BASE_URL"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"API_TIMEOUT_SECONDS"`
	Token          string `yaml:"token,omitempty" env:"API_TOKEN"`
}

// Timeout returns the per-request timeout
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ListConfig holds task list settings
type ListConfig struct {
	PageSize         int   `yaml:"page_size" env:"PAGE_SIZE"`
	PageSizes        []int `yaml:"page_sizes" env:"PAGE_SIZES"`
	SearchDebounceMS int   `yaml:"search_debounce_ms" env:"SEARCH_DEBOUNCE_MS"`
}

// SearchDebounce returns the search debounce delay
func (c ListConfig) SearchDebounce() time.Duration {
	return time.Duration(c.SearchDebounceMS) * time.Millisecond
}

// DisplayConfig holds presentation settings shared by the TUI and CLI
type DisplayConfig struct {
	// DateFormat is a Go time layout used to render due dates
	DateFormat string `yaml:"date_format" env:"DATE_FORMAT"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
	Output string `yaml:"output" env:"LOG_OUTPUT"` // stderr, stdout or file
	File   string `yaml:"file" env:"LOG_FILE"`
}

// TUIConfig holds TUI styling configuration
type TUIConfig struct {
	Styles StylesConfig `yaml:"styles"`
}

// StylesConfig holds color and styling configuration
type StylesConfig struct {
	Header           TextStyle     `yaml:"header"`
	Tab              TextStyle     `yaml:"tab"`
	ActiveTab        TextStyle     `yaml:"active_tab"`
	SearchBox        BoxStyle      `yaml:"search_box"`
	TaskCard         TaskCardStyle `yaml:"task_card"`
	SelectedTaskCard TaskCardStyle `yaml:"selected_task_card"`
	TaskTitle        TextStyle     `yaml:"task_title"`
	CompletedTask    TextStyle     `yaml:"completed_task"`
	Description      TextStyle     `yaml:"description"`
	DueDate          TextStyle     `yaml:"due_date"`
	Overdue          TextStyle     `yaml:"overdue"`
	Pagination       TextStyle     `yaml:"pagination"`
	CurrentPage      TextStyle     `yaml:"current_page"`
	DisabledPage     TextStyle     `yaml:"disabled_page"`
	Modal            BoxStyle      `yaml:"modal"`
	ErrorBox         BoxStyle      `yaml:"error_box"`
	ErrorText        TextStyle     `yaml:"error_text"`
	Status           TextStyle     `yaml:"status"`
	Help             TextStyle     `yaml:"help"`
}

// BoxStyle represents a bordered box
type BoxStyle struct {
	PaddingVertical   int    `yaml:"padding_vertical"`
	PaddingHorizontal int    `yaml:"padding_horizontal"`
	BorderStyle       string `yaml:"border_style"`
	BorderColor       string `yaml:"border_color"`
}

// TextStyle represents text styling
type TextStyle struct {
	Foreground        string `yaml:"foreground,omitempty"`
	Background        string `yaml:"background,omitempty"`
	Bold              bool   `yaml:"bold,omitempty"`
	Italic            bool   `yaml:"italic,omitempty"`
	Strikethrough     bool   `yaml:"strikethrough,omitempty"`
	PaddingVertical   int    `yaml:"padding_vertical,omitempty"`
	PaddingHorizontal int    `yaml:"padding_horizontal,omitempty"`
	Align             string `yaml:"align,omitempty"`
}

// TaskCardStyle represents task card border styling
type TaskCardStyle struct {
	BorderColor string `yaml:"border_color"`
}

// KeybindingsConfig holds keybinding configuration
type KeybindingsConfig struct {
	Up              []string `yaml:"up"`
	Down            []string `yaml:"down"`
	PrevPage        []string `yaml:"prev_page"`
	NextPage        []string `yaml:"next_page"`
	FirstPage       []string `yaml:"first_page"`
	LastPage        []string `yaml:"last_page"`
	PageSize        []string `yaml:"page_size"`
	NextFilter      []string `yaml:"next_filter"`
	FilterAll       []string `yaml:"filter_all"`
	FilterPending   []string `yaml:"filter_pending"`
	FilterCompleted []string `yaml:"filter_completed"`
	Search          []string `yaml:"search"`
	Add             []string `yaml:"add"`
	Edit            []string `yaml:"edit"`
	Toggle          []string `yaml:"toggle"`
	Delete          []string `yaml:"delete"`
	Reload          []string `yaml:"reload"`
	Help            []string `yaml:"help"`
	Quit            []string `yaml:"quit"`
}

// Loader handles loading and saving configuration
type Loader struct {
	configPath string
	envPrefix  string
}

// NewLoader creates a new config loader for the default config location
func NewLoader() (*Loader, error) {
	return NewLoaderWithPath("")
}

// NewLoaderWithPath creates a config loader for path, or for the default
// location when path is empty
func NewLoaderWithPath(path string) (*Loader, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, defaultConfigDirName, defaultConfigFileName)
	}

	return &Loader{
		configPath: path,
		envPrefix:  EnvPrefix,
	}, nil
}

// Load loads the configuration, creating defaults if it doesn't exist.
// Environment overrides are applied on top and never written back.
func (l *Loader) Load() (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(l.configPath); os.IsNotExist(err) {
		config, err := l.createDefaultConfig()
		if err != nil {
			return nil, err
		}
		return l.finish(config)
	}

	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return l.finish(config)
}

// Parse decodes YAML on top of the defaults, so missing keys keep their default
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

func (l *Loader) finish(config *Config) (*Config, error) {
	if err := ApplyEnv(l.envPrefix, config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	if err := config.Normalize(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save persists the configuration to disk
func (l *Loader) Save(config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := filesystem.SafeWrite(l.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset overwrites the config file with the defaults
func (l *Loader) Reset() (*Config, error) {
	config, err := l.createDefaultConfig()
	if err != nil {
		return nil, err
	}
	return l.finish(config)
}

// createDefaultConfig creates and saves a default configuration
func (l *Loader) createDefaultConfig() (*Config, error) {
	config := Default()

	if err := l.Save(config); err != nil {
		return nil, err
	}

	return config, nil
}

// GetConfigPath returns the path to the config file
func (l *Loader) GetConfigPath() string {
	return l.configPath
}

// Normalize fills unset values with defaults and rejects values that cannot work
func (c *Config) Normalize() error {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q must be an http(s) URL", ErrInvalidConfig, c.API.BaseURL)
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = 10
	}

	sizes := make([]int, 0, len(c.List.PageSizes)+1)
	seen := make(map[int]bool)
	for _, n := range c.List.PageSizes {
		if n > 0 && !seen[n] {
			seen[n] = true
			sizes = append(sizes, n)
		}
	}
	if len(sizes) == 0 {
		sizes = append(sizes, defaultPageSizes()...)
		for _, n := range sizes {
			seen[n] = true
		}
	}
	if c.List.PageSize <= 0 {
		c.List.PageSize = 10
	}
	if !seen[c.List.PageSize] {
		sizes = append(sizes, c.List.PageSize)
	}
	sort.Ints(sizes)
	c.List.PageSizes = sizes

	if c.List.SearchDebounceMS <= 0 {
		c.List.SearchDebounceMS = 500
	}
	if c.Display.DateFormat == "" {
		c.Display.DateFormat = DefaultDateFormat
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
	if c.Logging.File == "" {
		c.Logging.File = DefaultLogFile()
	}
	return nil
}

// DefaultLogFile returns the log file used when logging.output is file
func DefaultLogFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), defaultLogFileName)
	}
	return filepath.Join(homeDir, defaultDataDirName, defaultLogFileName)
}

func defaultPageSizes() []int {
	return []int{5, 10, 20, 50}
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: 10,
		},
		List: ListConfig{
			PageSize:         10,
			PageSizes:        defaultPageSizes(),
			SearchDebounceMS: 500,
		},
		Display: DisplayConfig{
			DateFormat: DefaultDateFormat,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
			File:   DefaultLogFile(),
		},
		TUI: TUIConfig{
			Styles: StylesConfig{
				Header: TextStyle{
					Foreground:        "99",
					Bold:              true,
					PaddingHorizontal: 1,
				},
				Tab: TextStyle{
					Foreground:        "245",
					PaddingHorizontal: 2,
				},
				ActiveTab: TextStyle{
					Foreground:        "230",
					Background:        "62",
					Bold:              true,
					PaddingHorizontal: 2,
				},
				SearchBox: BoxStyle{
					PaddingHorizontal: 1,
					BorderStyle:       "rounded",
					BorderColor:       "240",
				},
				TaskCard: TaskCardStyle{
					BorderColor: "#444444",
				},
				SelectedTaskCard: TaskCardStyle{
					BorderColor: "#A8DADC",
				},
				TaskTitle: TextStyle{
					Foreground: "252",
					Bold:       true,
				},
				CompletedTask: TextStyle{
					Foreground:    "#777777",
					Strikethrough: true,
				},
				Description: TextStyle{
					Foreground: "#888888",
					Italic:     true,
				},
				DueDate: TextStyle{
					Foreground: "#999999",
				},
				Overdue: TextStyle{
					Foreground: "#FF6B6B",
					Bold:       true,
				},
				Pagination: TextStyle{
					Foreground:        "245",
					PaddingHorizontal: 1,
				},
				CurrentPage: TextStyle{
					Foreground:        "230",
					Background:        "62",
					Bold:              true,
					PaddingHorizontal: 1,
				},
				DisabledPage: TextStyle{
					Foreground:        "238",
					PaddingHorizontal: 1,
				},
				Modal: BoxStyle{
					PaddingVertical:   1,
					PaddingHorizontal: 2,
					BorderStyle:       "rounded",
					BorderColor:       "62",
				},
				ErrorBox: BoxStyle{
					PaddingVertical:   1,
					PaddingHorizontal: 2,
					BorderStyle:       "double",
					BorderColor:       "#FF6B6B",
				},
				ErrorText: TextStyle{
					Foreground: "#FF6B6B",
					Bold:       true,
				},
				Status: TextStyle{
					Foreground:        "#95E1D3",
					PaddingHorizontal: 1,
				},
				Help: TextStyle{
					Foreground:        "241",
					PaddingVertical:   1,
					PaddingHorizontal: 1,
				},
			},
		},
		Keybindings: KeybindingsConfig{
			Up:              []string{"up", "k"},
			Down:            []string{"down", "j"},
			PrevPage:        []string{"left", "h"},
			NextPage:        []string{"right", "l"},
			FirstPage:       []string{"home", "g"},
			LastPage:        []string{"end", "G"},
			PageSize:        []string{"s"},
			NextFilter:      []string{"tab"},
			FilterAll:       []string{"1"},
			FilterPending:   []string{"2"},
			FilterCompleted: []string{"3"},
			Search:          []string{"/"},
			Add:             []string{"a", "n"},
			Edit:            []string{"e", "enter"},
			Toggle:          []string{" ", "x"},
			Delete:          []string{"d"},
			Reload:          []string{"r"},
			Help:            []string{"?"},
			Quit:            []string{"q", "ctrl+c"},
		},
	}
}
