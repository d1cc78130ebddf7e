package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewConfigManager(t *testing.T) {
	tempDir := t.TempDir()
	cm := NewConfigManager(tempDir)

	expectedPath := filepath.Join(tempDir, "config.yaml")
	if cm.configPath != expectedPath {
		t.Errorf("Expected config path '%s', got '%s'", expectedPath, cm.configPath)
	}

	if cm.config == nil {
		t.Fatal("Expected config to be initialized")
	}

	if cm.config.Color != ColorAuto {
		t.Errorf("Expected default color 'auto', got '%s'", cm.config.Color)
	}

	if cm.config.SearchMinScore != 50 {
		t.Errorf("Expected default SearchMinScore 50, got %d", cm.config.SearchMinScore)
	}
}

func TestConfigManager_SaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	cm := NewConfigManager(tempDir)

	cm.config.Width = 100
	cm.config.Color = ColorNever
	cm.config.LogLevel = "debug"
	cm.config.SearchMinScore = 0
	cm.config.BrowserCommand = []string{"firefox", "--new-tab"}
	cm.config.ConfirmOpen = false

	if err := cm.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	cm2 := NewConfigManager(tempDir)
	if err := cm2.Load(); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cm2.config.Width != 100 {
		t.Errorf("Expected Width 100, got %d", cm2.config.Width)
	}
	if cm2.config.Color != ColorNever {
		t.Errorf("Expected Color 'never', got '%s'", cm2.config.Color)
	}
	if cm2.config.LogLevel != "debug" {
		t.Errorf("Expected LogLevel 'debug', got '%s'", cm2.config.LogLevel)
	}
	if cm2.config.SearchMinScore != 0 {
		t.Errorf("Expected SearchMinScore 0, got %d", cm2.config.SearchMinScore)
	}
	if strings.Join(cm2.config.BrowserCommand, " ") != "firefox --new-tab" {
		t.Errorf("Expected BrowserCommand 'firefox --new-tab', got %v", cm2.config.BrowserCommand)
	}
	if cm2.config.ConfirmOpen {
		t.Error("Expected ConfirmOpen to be false")
	}
}

func TestConfigManager_LoadNonExistentFile(t *testing.T) {
	tempDir := t.TempDir()
	cm := NewConfigManager(tempDir)

	// Load should create default config when file doesn't exist
	if err := cm.Load(); err != nil {
		t.Fatalf("Failed to load non-existent config: %v", err)
	}

	if cm.config.LogLevel != "info" {
		t.Errorf("Expected default LogLevel 'info', got '%s'", cm.config.LogLevel)
	}

	configPath := filepath.Join(tempDir, "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file should have been created")
	}
}

func TestConfigManager_LoadPartialFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("width: 72\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cm := NewConfigManager(tempDir)
	if err := cm.Load(); err != nil {
		t.Fatalf("Failed to load partial config: %v", err)
	}

	if cm.config.Width != 72 {
		t.Errorf("Expected Width 72, got %d", cm.config.Width)
	}
	// Missing keys keep their defaults
	if cm.config.Color != ColorAuto {
		t.Errorf("Expected default color, got '%s'", cm.config.Color)
	}
	if len(cm.config.BrowserCommand) == 0 {
		t.Error("Expected default browser command")
	}
}

func TestConfigManager_LoadCorruptedFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("width: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to create corrupted file: %v", err)
	}

	cm := NewConfigManager(tempDir)
	if err := cm.Load(); err == nil {
		t.Error("Expected error when loading corrupted config file")
	}
}

func TestConfigManager_LoadInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Unknown color", "color: sometimes\n"},
		{"Unknown log level", "log_level: loud\n"},
		{"Negative width", "width: -1\n"},
		{"Empty browser command", "browser_command: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			if err := os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}

			cm := NewConfigManager(tempDir)
			err := cm.Load()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
			// A rejected file leaves the defaults in place
			if cm.config.Color != ColorAuto {
				t.Errorf("Expected defaults to survive, got color '%s'", cm.config.Color)
			}
		})
	}
}

func TestConfigManager_GetConfig(t *testing.T) {
	cm := NewConfigManager(t.TempDir())

	config := cm.GetConfig()
	if config != cm.config {
		t.Error("Expected returned config to be the same instance")
	}

	newConfig := DefaultConfig()
	newConfig.Width = 40
	cm.SetConfig(newConfig)
	if cm.GetConfig().Width != 40 {
		t.Errorf("Expected Width 40, got %d", cm.GetConfig().Width)
	}
}

func TestConfigManager_GetLogPath(t *testing.T) {
	tempDir := t.TempDir()
	cm := NewConfigManager(tempDir)

	if got := cm.GetLogPath(); got != filepath.Join(tempDir, "report-tui.log") {
		t.Errorf("Unexpected default log path '%s'", got)
	}

	cm.config.LogFile = "custom.log"
	if got := cm.GetLogPath(); got != filepath.Join(tempDir, "custom.log") {
		t.Errorf("Unexpected relative log path '%s'", got)
	}

	abs := filepath.Join(tempDir, "elsewhere", "x.log")
	cm.config.LogFile = abs
	if got := cm.GetLogPath(); got != abs {
		t.Errorf("Unexpected absolute log path '%s'", got)
	}
}

func TestConfigManager_YAMLFormat(t *testing.T) {
	tempDir := t.TempDir()
	cm := NewConfigManager(tempDir)
	cm.config.Width = 88

	if err := cm.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tempDir, "config.yaml"))
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	yamlStr := string(data)
	if !strings.Contains(yamlStr, "width: 88") {
		t.Error("Expected width field in YAML")
	}
	if !strings.Contains(yamlStr, "color: auto") {
		t.Error("Expected color field in YAML")
	}
	if strings.Contains(yamlStr, "log_file") {
		t.Error("Expected empty log_file to be omitted")
	}
}

func TestDefaultBrowserCommand(t *testing.T) {
	tests := []struct {
		goos     string
		expected string
	}{
		{"linux", "xdg-open"},
		{"darwin", "open"},
		{"windows", "rundll32"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cmd := defaultBrowserCommand(tt.goos)
			if cmd[0] != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, cmd[0])
			}
		})
	}
}
