package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/gerunddev/lessonbridge/internal/lesson"
)

// Config represents the lessonbridge configuration
type Config struct {
	OutputDir      string        `json:"output_dir"`
	LogFile        string        `json:"log_file"`
	LogLevel       string        `json:"log_level,omitempty"`
	Interval       time.Duration `json:"-"` // Custom JSON handling below
	DayMatching    string        `json:"day_matching,omitempty"`
	SanitizeExport bool          `json:"sanitize_export"`
	IntroTitle     string        `json:"intro_title,omitempty"`
	ReviewTitle    string        `json:"review_title,omitempty"`
}

// fileConfig is the on-disk shape, with the interval as a duration string
type fileConfig struct {
	OutputDir      string `json:"output_dir"`
	LogFile        string `json:"log_file"`
	LogLevel       string `json:"log_level,omitempty"`
	Interval       string `json:"interval"`
	DayMatching    string `json:"day_matching,omitempty"`
	SanitizeExport *bool  `json:"sanitize_export,omitempty"`
	IntroTitle     string `json:"intro_title,omitempty"`
	ReviewTitle    string `json:"review_title,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		OutputDir:      filepath.Join(home, "lessons"),
		LogFile:        filepath.Join(os.TempDir(), "lessonbridge.log"),
		LogLevel:       "info",
		Interval:       30 * time.Second,
		DayMatching:    "positional",
		SanitizeExport: true,
		IntroTitle:     lesson.DefaultIntroTitle,
		ReviewTitle:    lesson.DefaultReviewTitle,
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(xdg.ConfigHome, "lessonbridge", "config.json")
	}
	return filepath.Join(home, ".config", "lessonbridge", "config.json")
}

// StateFilePath returns the path to the import history file
// Can be overridden for testing
var StateFilePath = func() string {
	return filepath.Join(xdg.DataHome, "lessonbridge", "state.json")
}

// Load reads configuration from the config directory, then applies .env and
// LESSONBRIDGE_* environment overrides
func Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	switch {
	case err == nil:
		if err := cfg.decode(data); err != nil {
			return nil, err
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	var raw fileConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if raw.Interval != "" {
		interval, err := time.ParseDuration(raw.Interval)
		if err != nil {
			return fmt.Errorf("invalid interval format '%s': %w", raw.Interval, err)
		}
		c.Interval = interval
	}

	setString(&c.OutputDir, raw.OutputDir)
	setString(&c.LogFile, raw.LogFile)
	setString(&c.LogLevel, raw.LogLevel)
	setString(&c.DayMatching, raw.DayMatching)
	setString(&c.IntroTitle, raw.IntroTitle)
	setString(&c.ReviewTitle, raw.ReviewTitle)
	if raw.SanitizeExport != nil {
		c.SanitizeExport = *raw.SanitizeExport
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.OutputDir, os.Getenv("LESSONBRIDGE_OUTPUT_DIR"))
	setString(&c.LogFile, os.Getenv("LESSONBRIDGE_LOG_FILE"))
	setString(&c.LogLevel, os.Getenv("LESSONBRIDGE_LOG_LEVEL"))
	setString(&c.DayMatching, os.Getenv("LESSONBRIDGE_DAY_MATCHING"))

	if v := os.Getenv("LESSONBRIDGE_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid LESSONBRIDGE_INTERVAL '%s': %w", v, err)
		}
		c.Interval = interval
	}
	if v := os.Getenv("LESSONBRIDGE_SANITIZE_EXPORT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LESSONBRIDGE_SANITIZE_EXPORT '%s': %w", v, err)
		}
		c.SanitizeExport = b
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Save writes configuration to the config directory
func (c *Config) Save() error {
	configPath := ConfigPath()
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	sanitize := c.SanitizeExport
	raw := fileConfig{
		OutputDir:      c.OutputDir,
		LogFile:        c.LogFile,
		LogLevel:       c.LogLevel,
		Interval:       c.Interval.String(),
		DayMatching:    c.DayMatching,
		SanitizeExport: &sanitize,
		IntroTitle:     c.IntroTitle,
		ReviewTitle:    c.ReviewTitle,
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	if c.LogFile == "" {
		return fmt.Errorf("log_file cannot be empty")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}

	validMatching := map[string]bool{
		"positional": true,
		"weekday":    true,
	}
	if !validMatching[c.DayMatching] {
		return fmt.Errorf("invalid day_matching '%s': must be one of: positional, weekday", c.DayMatching)
	}

	validLevels := map[string]bool{
		"":      true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level '%s': must be one of: debug, info, warn, error", c.LogLevel)
	}

	return nil
}

// Template builds the weekday template from the configured default titles
func (c *Config) Template() lesson.Template {
	return lesson.NewTemplate(c.IntroTitle, c.ReviewTitle)
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.OutputDir, err = expandPath(c.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to expand output_dir: %w", err)
	}

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
