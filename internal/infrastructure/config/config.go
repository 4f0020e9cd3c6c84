package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for CRM Core.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Security SecurityConfig `yaml:"security"`
	Features FeatureConfig  `yaml:"features"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name string `yaml:"name"`
}

// DatabaseConfig contains relational database connection settings.
//
// The driver field selects the engine:
//   - "sqlite3": only Path (plus the pragma fields) is used
//   - "mysql": Host, Port, Name, User and Password are used
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	// Path is the filesystem path to the SQLite database file.
	// The directory will be created if it doesn't exist.
	Path string `yaml:"path"`

	// WALMode enables Write-Ahead Logging for better concurrent access (SQLite only).
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the maximum time to wait for a database lock in seconds (SQLite only).
	BusyTimeout int `yaml:"busy_timeout"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string            `yaml:"level"`
	Format string            `yaml:"format"`
	Output string            `yaml:"output"`
	File   FileLoggingConfig `yaml:"file"`
}

// FileLoggingConfig contains file-based logging settings.
// Rotation is handled by lumberjack; sizes are in megabytes.
type FileLoggingConfig struct {
	Path       string `yaml:"path"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// SecurityConfig contains security settings.
type SecurityConfig struct {
	JWT JWTConfig `yaml:"jwt"`
}

// JWTConfig contains JWT token settings. TTLs are in minutes.
type JWTConfig struct {
	Secret         string `yaml:"secret"`
	AccessTokenTTL int    `yaml:"access_token_ttl"`
	SessionTTL     int    `yaml:"session_ttl"`
}

// FeatureConfig contains flags for optional CRM modules.
// The core stores no behaviour behind these; the presentation layer reads them.
type FeatureConfig struct {
	SalesAutomation     bool `yaml:"sales_automation"`
	MarketingAutomation bool `yaml:"marketing_automation"`
	CustomerSupport     bool `yaml:"customer_support"`
	MobileAccess        bool `yaml:"mobile_access"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: CRM_SECTION_KEY
// For example: CRM_DATABASE_PASSWORD, CRM_JWT_SECRET
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name: "CRM Core",
		},
		Database: DatabaseConfig{
			Driver:      "sqlite3",
			Host:        "localhost",
			Port:        3306,
			Name:        "crm_db",
			User:        "root",
			Path:        "./data/crm.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
			File: FileLoggingConfig{
				Path:       "crm.log",
				MaxSize:    5,
				MaxBackups: 3,
				MaxAge:     28,
			},
		},
		Security: SecurityConfig{
			JWT: JWTConfig{
				AccessTokenTTL: 15,
				SessionTTL:     1440,
			},
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: CRM_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Database
	if v := os.Getenv("CRM_DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("CRM_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("CRM_DATABASE_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("CRM_DATABASE_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("CRM_DATABASE_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("CRM_DATABASE_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}

	// Logging
	if v := os.Getenv("CRM_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Security - JWT secret (IMPORTANT: always override in production)
	if v := os.Getenv("CRM_JWT_SECRET"); v != "" {
		cfg.Security.JWT.Secret = v
	}
}

// supportedDrivers is the set of database drivers the core can open.
var supportedDrivers = map[string]bool{
	"sqlite3": true,
	"mysql":   true,
}

// minJWTSecretLength is the minimum length for the JWT signing secret.
// Shorter secrets make token forgery feasible.
const minJWTSecretLength = 32

// Validate checks the configuration for errors and security issues.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Database validation
	if !supportedDrivers[c.Database.Driver] {
		errs = append(errs, fmt.Sprintf("database.driver %q is not supported (sqlite3, mysql)", c.Database.Driver))
	}
	switch c.Database.Driver {
	case "sqlite3":
		if c.Database.Path == "" {
			errs = append(errs, "database.path is required for the sqlite3 driver")
		}
	case "mysql":
		if c.Database.Host == "" {
			errs = append(errs, "database.host is required for the mysql driver")
		}
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			errs = append(errs, "database.port must be between 1 and 65535")
		}
		if c.Database.Name == "" {
			errs = append(errs, "database.name is required for the mysql driver")
		}
		if c.Database.User == "" {
			errs = append(errs, "database.user is required for the mysql driver")
		}
	}

	// Security validation - JWT secret is REQUIRED
	if c.Security.JWT.Secret == "" {
		errs = append(errs, "security.jwt.secret is required (set CRM_JWT_SECRET environment variable)")
	} else if len(c.Security.JWT.Secret) < minJWTSecretLength {
		errs = append(errs, "security.jwt.secret must be at least 32 characters for adequate security")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
