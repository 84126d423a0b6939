package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API     APIConfig     `toml:"api"`
	Catalog CatalogConfig `toml:"catalog"`
	Logging LoggingConfig `toml:"logging"`
}

// APIConfig contains backend connection settings.
type APIConfig struct {
	BaseURL      string `toml:"base_url"`      // BaseURL points at the catalog backend, e.g. http://localhost:5000
	LoginPath    string `toml:"login_path"`    // LoginPath is opened in a browser when the backend answers 401
	AdminLimit   int    `toml:"admin_limit"`   // AdminLimit caps unfiltered admin catalog loads
	CatalogLimit int    `toml:"catalog_limit"` // CatalogLimit caps customer-facing loads and searches
	PollSeconds  int    `toml:"poll_seconds"`  // PollSeconds is the status poll interval
}

// CatalogConfig contains presentation and messaging settings.
type CatalogConfig struct {
	WhatsAppNumber string `toml:"whatsapp_number"` // WhatsAppNumber receives "Pedir" deep-link messages
	QuickRefresh   int    `toml:"quick_refresh"`   // QuickRefresh is the message count for a quick scan
	FullRefresh    int    `toml:"full_refresh"`    // FullRefresh is the message count for a full scan
}

// LoggingConfig contains log output settings.
type LoggingConfig struct {
	TUIPath string `toml:"tui_path"` // TUIPath is where TUI sessions write their log file
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoginURL joins the base URL and login path for 401 redirects.
func (c *Config) LoginURL() string {
	return c.API.BaseURL + c.API.LoginPath
}
