package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL = "http://127.0.0.1:5000"
	defaultProfile = "default"
)

type Profile struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key,omitempty"`
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles"`
	ActiveProfile  string             `json:"active_profile"`
	StrictOrdering bool               `json:"strict_ordering,omitempty"`
	CatalogPath    string             `json:"catalog_path,omitempty"`
	LogPath        string             `json:"log_path,omitempty"`
	currentProfile *Profile
}

func LoadConfig() (*Config, error) {
	// .env is optional; variables already in the environment win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Load existing config or create default
	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Validate and set current profile
	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	return config, nil
}

func (c *Config) IsValid() bool {
	return c.currentProfile != nil && c.GetBaseURL() != ""
}

func (c *Config) GetAPIKey() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.APIKey
}

// GetBaseURL returns the backend base URL; RORIROAST_BASE_URL overrides the profile.
func (c *Config) GetBaseURL() string {
	if env := strings.TrimSpace(os.Getenv("RORIROAST_BASE_URL")); env != "" {
		return env
	}
	if c.currentProfile == nil {
		return DefaultBaseURL
	}
	return c.currentProfile.BaseURL
}

// GetLogPath returns where diagnostics are written while the TUI owns the terminal
func (c *Config) GetLogPath() string {
	if c.LogPath != "" {
		return c.LogPath
	}
	dir, err := getConfigDir()
	if err != nil {
		return "roriroast-debug.log"
	}
	return filepath.Join(dir, "debug.log")
}

// SwitchProfile makes name the active profile
func (c *Config) SwitchProfile(name string) error {
	profile, exists := c.Profiles[name]
	if !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	c.ActiveProfile = name
	c.currentProfile = &profile
	return nil
}

// ProfileNames returns the profile names in sorted order
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func getConfigDir() (string, error) {
	var baseDir string

	// Use RORIROAST_HOME if set, otherwise use user's home directory
	if home := os.Getenv("RORIROAST_HOME"); home != "" {
		baseDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = homeDir
	}

	return filepath.Join(baseDir, ".roriroast"), nil
}

func getConfigPath() (string, error) {
	dir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func ensureConfigDir(configPath string) error {
	configDir := filepath.Dir(configPath)
	return os.MkdirAll(configDir, 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	// If config file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func NewDefaultConfig() *Config {
	return &Config{
		Profiles: map[string]Profile{
			defaultProfile: {BaseURL: DefaultBaseURL},
		},
		ActiveProfile: defaultProfile,
	}
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := NewDefaultConfig()

	// Save default config to file
	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return saveConfig(c, configPath)
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// Fall back to the first profile by name
		c.ActiveProfile = c.ProfileNames()[0]
		profile = c.Profiles[c.ActiveProfile]
	}

	c.currentProfile = &profile
	return nil
}
