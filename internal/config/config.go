package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// envPrefix prefixes every environment variable overriding the config file
const envPrefix = "ROSTER_"

// SheetsConfig locates the spreadsheet tabs a scenario can be imported from
type SheetsConfig struct {
	SpreadsheetID string `yaml:"spreadsheetID" env:"SPREADSHEET_ID"`
	ContractsTab  string `yaml:"contractsTab" env:"CONTRACTS_TAB"`
	NursesTab     string `yaml:"nursesTab" env:"NURSES_TAB"`
	WishesTab     string `yaml:"wishesTab" env:"WISHES_TAB"`
}

// HorizonConfig describes the horizon and skill universe of imported scenarios
type HorizonConfig struct {
	NbWeeks      int      `yaml:"nbWeeks" validate:"min=1"`
	HorizonStart string   `yaml:"horizonStart,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Skills       []string `yaml:"skills" validate:"required,min=1,unique"`
	Shifts       []string `yaml:"shifts" validate:"required,min=1,unique"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string        `yaml:"databaseURL" env:"DATABASE_URL" validate:"required"`
	Sheets      SheetsConfig  `yaml:"sheets,omitempty" envPrefix:"SHEETS_"`
	Horizon     HorizonConfig `yaml:"horizon"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from roster_config.yaml
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for an environment, e.g. env="test"
// looks for roster_config.test.yaml in the current directory, then the home directory.
// Environment variables prefixed with ROSTER_ override the file values.
func LoadWithEnv(environment string) (*Config, error) {
	configPath, err := findFile(configFileName(environment))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// ValidateSheets checks that every tab needed for a spreadsheet import is configured
func (c *Config) ValidateSheets() error {
	s := c.Sheets
	if s.SpreadsheetID == "" || s.ContractsTab == "" || s.NursesTab == "" || s.WishesTab == "" {
		return fmt.Errorf("sheets import requires spreadsheetID, contractsTab, nursesTab and wishesTab")
	}
	return nil
}

func configFileName(environment string) string {
	if environment == "" {
		return "roster_config.yaml"
	}
	return "roster_config." + environment + ".yaml"
}

// findFile searches for a file in the current directory and the home directory
func findFile(fileName string) (string, error) {
	if _, err := os.Stat(fileName); err == nil {
		return fileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, fileName)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", fileName)
}
