package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Feed    FeedConfig    `mapstructure:"feed"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds remote service endpoints
type APIConfig struct {
	FeedURL     string `mapstructure:"feed_url"`     // Image collection endpoint
	TrackingURL string `mapstructure:"tracking_url"` // View-tracking beacon endpoint
	ShareURL    string `mapstructure:"share_url"`    // Public page used to build share links
}

// FeedConfig holds feed presentation settings
type FeedConfig struct {
	Categories []string `mapstructure:"categories"` // Filter menu entries
}

// StorageConfig holds local persistence settings
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"` // Empty = default per-OS location
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			FeedURL:     "https://lens-b-1.onrender.com/api/images",
			TrackingURL: "https://lens-b-1.onrender.com/api/track-view",
			ShareURL:    "https://promp-ts.netlify.app",
		},
		Feed: FeedConfig{
			Categories: []string{"Portrait", "Cinematic", "Anime", "Nature", "3D"},
		},
		Storage: StorageConfig{
			DataDir: defaultDataPath(),
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "prompts", "prompts.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "prompts", "prompts.log")
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "prompts")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "prompts")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "prompts")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "prompts")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("PROMPTS")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}
