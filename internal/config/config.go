package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ConfigFileName = "config.yaml"
	LogFileName    = "report-tui.log"
	appDirName     = "report-tui"
)

// Color modes for rendered output
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the viewer configuration
type Config struct {
	// Width wraps rendered output at this many columns; 0 uses the terminal width
	Width int `yaml:"width"`
	// Color is one of auto, always or never
	Color string `yaml:"color"`
	// LogLevel is a zerolog level name
	LogLevel string `yaml:"log_level"`
	// LogFile overrides the log location inside the config directory
	LogFile string `yaml:"log_file,omitempty"`
	// SearchMinScore drops fuzzy matches scoring below it; 0 keeps every match
	SearchMinScore int `yaml:"search_min_score"`
	// BrowserCommand opens a link; the URL is appended as the last argument
	BrowserCommand []string `yaml:"browser_command"`
	// ConfirmOpen asks before handing a link to the browser
	ConfirmOpen bool `yaml:"confirm_open"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Width:          0,
		Color:          ColorAuto,
		LogLevel:       "info",
		SearchMinScore: 50,
		BrowserCommand: defaultBrowserCommand(runtime.GOOS),
		ConfirmOpen:    true,
	}
}

func defaultBrowserCommand(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	default:
		return []string{"xdg-open"}
	}
}

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, appDirName), nil
}

// Validate checks the values that the rest of the program switches on
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color must be auto, always or never, got %q", ErrInvalidConfig, c.Color)
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.Width < 0 {
		return fmt.Errorf("%w: width must not be negative", ErrInvalidConfig)
	}
	if len(c.BrowserCommand) == 0 {
		return fmt.Errorf("%w: browser_command is empty", ErrInvalidConfig)
	}
	return nil
}

// ConfigManager handles loading and saving the configuration file
type ConfigManager struct {
	configDir  string
	configPath string
	config     *Config
}

// NewConfigManager creates a new configuration manager
func NewConfigManager(configDir string) *ConfigManager {
	return &ConfigManager{
		configDir:  configDir,
		configPath: filepath.Join(configDir, ConfigFileName),
		config:     DefaultConfig(),
	}
}

// Load loads the configuration from disk, writing the defaults on first run
func (cm *ConfigManager) Load() error {
	if _, err := os.Stat(cm.configPath); os.IsNotExist(err) {
		return cm.Save()
	}

	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cm.config = cfg
	return nil
}

// Save saves the configuration to disk
func (cm *ConfigManager) Save() error {
	if err := os.MkdirAll(cm.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cm.config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	return cm.config
}

// SetConfig updates the configuration
func (cm *ConfigManager) SetConfig(config *Config) {
	cm.config = config
}

// GetLogPath returns where the log file lives
func (cm *ConfigManager) GetLogPath() string {
	if cm.config.LogFile != "" {
		if filepath.IsAbs(cm.config.LogFile) {
			return cm.config.LogFile
		}
		return filepath.Join(cm.configDir, cm.config.LogFile)
	}
	return filepath.Join(cm.configDir, LogFileName)
}
