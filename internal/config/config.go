package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Remote  RemoteConfig  `yaml:"remote"`
	Paths   PathsConfig   `yaml:"paths"`
	Whisper WhisperConfig `yaml:"whisper"`
	Claude  ClaudeConfig  `yaml:"claude"`
	Logging LoggingConfig `yaml:"logging"`
	Cleanup bool          `yaml:"cleanup"`
}

type RemoteConfig struct {
	Host     string `yaml:"host"`
	Username string `yaml:"username"`
	KeyPath  string `yaml:"key_path"`
	Dir      string `yaml:"dir"`
}

type PathsConfig struct {
	BaseDir  string `yaml:"base_dir"`
	LogDir   string `yaml:"log_dir"`
	InboxDir string `yaml:"inbox_dir"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	Language   string `yaml:"language"`
}

type ClaudeConfig struct {
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads and validates a YAML configuration file. The CLAUDE_API_KEY
// environment variable overrides claude.api_key when set.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if key := os.Getenv("CLAUDE_API_KEY"); key != "" {
		cfg.Claude.APIKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Remote.Host == "" {
		return fmt.Errorf("remote.host is required")
	}
	if c.Remote.Username == "" {
		return fmt.Errorf("remote.username is required")
	}
	if c.Remote.KeyPath == "" {
		return fmt.Errorf("remote.key_path is required")
	}
	if c.Remote.Dir == "" {
		return fmt.Errorf("remote.dir is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}

	if c.Paths.BaseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory for default base_dir: %w", err)
		}
		c.Paths.BaseDir = filepath.Join(home, "dispatch-scribe")
	}
	if c.Paths.LogDir == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.BaseDir, "logs")
	}
	if c.Paths.InboxDir == "" {
		c.Paths.InboxDir = filepath.Join(c.Paths.BaseDir, "inbox")
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Claude.Model == "" {
		c.Claude.Model = "claude-3-7-sonnet-20250219"
	}
	if c.Claude.MaxTokens == 0 {
		c.Claude.MaxTokens = 5000
	}
	if c.Claude.Temperature == 0 {
		c.Claude.Temperature = 0.7
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
