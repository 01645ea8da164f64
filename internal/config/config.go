// Package config handles configuration loading and saving for chatshell.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultEndpoint is the chat endpoint of a locally running backend.
const DefaultEndpoint = "http://localhost:8000/api/chat"

// DefaultGreeting is shown as the first assistant message of a chat
const DefaultGreeting = "Hello! How can I help you today?"

// Environment variables that override the config file
const (
	EnvEndpoint       = "CHATSHELL_ENDPOINT"
	EnvStatusEndpoint = "CHATSHELL_STATUS_ENDPOINT"
	EnvTimeout        = "CHATSHELL_TIMEOUT"
	EnvHome           = "CHATSHELL_HOME"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`              // glamour style name or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// Config represents the user configuration
type Config struct {
	// Endpoint is the URL chat messages are posted to.
	Endpoint string `json:"endpoint"`
	// StatusEndpoint is probed by `chatshell status` and /status.
	// Empty means derive it from Endpoint.
	StatusEndpoint string `json:"status_endpoint,omitempty"`
	// Greeting is the initial assistant message. Empty disables it.
	Greeting string `json:"greeting"`
	// TimeoutSeconds bounds a single request. Zero means no timeout.
	TimeoutSeconds int `json:"timeout_seconds"`
	// TLSProfile names the tls-client fingerprint used for requests.
	TLSProfile string `json:"tls_profile,omitempty"`
	// SendConversationID attaches a conversation id to every request
	// so the backend can keep per-session context.
	SendConversationID bool `json:"send_conversation_id"`
	// Verbose enables structured debug logging.
	Verbose         bool           `json:"verbose"`
	CopyToClipboard bool           `json:"copy_to_clipboard"`
	TUITheme        string         `json:"tui_theme,omitempty"`
	Markdown        MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Endpoint:           DefaultEndpoint,
		Greeting:           DefaultGreeting,
		TimeoutSeconds:     0,
		TLSProfile:         "chrome_120",
		SendConversationID: false,
		Verbose:            false,
		CopyToClipboard:    false,
		TUITheme:           "tokyonight",
		Markdown:           DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".chatshell"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the path of the debug log written in verbose mode
func GetLogPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "chatshell.log"), nil
}

// LoadConfig loads the configuration from disk and applies environment
// overrides. A missing file yields the defaults.
func LoadConfig() (Config, error) {
	cfg, err := LoadFileConfig()
	if err != nil {
		return cfg, err
	}
	return ApplyEnv(cfg, ".env")
}

// LoadFileConfig loads only the config file, without environment overrides.
// The config menu edits this view so that overrides are never written back.
func LoadFileConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overlays values from a dotenv file and the process environment.
// A non-empty process variable wins over the dotenv file. A missing dotenv
// file is not an error.
func ApplyEnv(cfg Config, dotenvPath string) (Config, error) {
	values := map[string]string{}
	if dotenvPath != "" {
		fileValues, err := godotenv.Read(dotenvPath)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to read %s: %w", dotenvPath, err)
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}
	for _, key := range []string{EnvEndpoint, EnvStatusEndpoint, EnvTimeout} {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			values[key] = v
		}
	}

	if v := values[EnvEndpoint]; v != "" {
		cfg.Endpoint = v
	}
	if v := values[EnvStatusEndpoint]; v != "" {
		cfg.StatusEndpoint = v
	}
	if v := values[EnvTimeout]; v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds < 0 {
			return cfg, fmt.Errorf("invalid %s value %q", EnvTimeout, v)
		}
		cfg.TimeoutSeconds = seconds
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// TimeoutPresets lists the request timeouts offered by the config menu
func TimeoutPresets() []int {
	return []int{0, 30, 60, 120, 300}
}
