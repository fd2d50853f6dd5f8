package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// DatabaseType represents the type of database
type DatabaseType string

const (
	DatabaseTypeSQLite     DatabaseType = "sqlite"
	DatabaseTypePostgreSQL DatabaseType = "postgres"
)

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Type     DatabaseType   `json:"type"`
	SQLite   SQLiteConfig   `json:"sqlite"`
	Postgres PostgresConfig `json:"postgres"`
}

// SQLiteConfig holds SQLite specific configuration
type SQLiteConfig struct {
	Path string `json:"path"`
}

// PostgresConfig holds PostgreSQL specific configuration
type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
	SSLMode  string `json:"sslMode"`
	TimeZone string `json:"timeZone"`
}

// GetDSN returns the data source name for the database
func (c *DatabaseConfig) GetDSN() string {
	switch c.Type {
	case DatabaseTypePostgreSQL:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
			c.Postgres.Host,
			c.Postgres.Username,
			c.Postgres.Password,
			c.Postgres.Database,
			c.Postgres.Port,
			c.Postgres.SSLMode,
			c.Postgres.TimeZone,
		)
	default:
		return c.SQLite.Path + "?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"
	}
}

// GetDefaultDatabaseConfig returns default database configuration
func GetDefaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Type: DatabaseTypeSQLite,
		SQLite: SQLiteConfig{
			Path: GetDBPath(),
		},
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "bookshelf",
			Username: "bookshelf",
			Password: "",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
	}
}

// SQLiteDatabaseConfig returns a sqlite configuration for the given file.
func SQLiteDatabaseConfig(path string) *DatabaseConfig {
	c := GetDefaultDatabaseConfig()
	c.SQLite.Path = path
	return c
}

// LoadDatabaseConfig builds the database configuration from the defaults
// overridden by BOOKSHELF_DB_* and BOOKSHELF_PG_* environment variables.
func LoadDatabaseConfig() (*DatabaseConfig, error) {
	c := GetDefaultDatabaseConfig()
	if t := os.Getenv("BOOKSHELF_DB_TYPE"); t != "" {
		c.Type = DatabaseType(t)
	}
	if p := os.Getenv("BOOKSHELF_DB_PATH"); p != "" {
		c.SQLite.Path = p
	}
	if v := os.Getenv("BOOKSHELF_PG_HOST"); v != "" {
		c.Postgres.Host = v
	}
	if v := os.Getenv("BOOKSHELF_PG_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BOOKSHELF_PG_PORT %q: %w", v, err)
		}
		c.Postgres.Port = port
	}
	if v := os.Getenv("BOOKSHELF_PG_DATABASE"); v != "" {
		c.Postgres.Database = v
	}
	if v := os.Getenv("BOOKSHELF_PG_USER"); v != "" {
		c.Postgres.Username = v
	}
	if v, ok := os.LookupEnv("BOOKSHELF_PG_PASSWORD"); ok {
		c.Postgres.Password = v
	}
	if v := os.Getenv("BOOKSHELF_PG_SSLMODE"); v != "" {
		c.Postgres.SSLMode = v
	}
	if v := os.Getenv("BOOKSHELF_PG_TIMEZONE"); v != "" {
		c.Postgres.TimeZone = v
	}
	if err := c.ValidateConfig(); err != nil {
		return nil, err
	}
	return c, nil
}

// ValidateConfig validates the database configuration
func (c *DatabaseConfig) ValidateConfig() error {
	switch c.Type {
	case DatabaseTypeSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("SQLite path cannot be empty")
		}
	case DatabaseTypePostgreSQL:
		if c.Postgres.Host == "" {
			return fmt.Errorf("PostgreSQL host cannot be empty")
		}
		if c.Postgres.Database == "" {
			return fmt.Errorf("PostgreSQL database name cannot be empty")
		}
		if c.Postgres.Username == "" {
			return fmt.Errorf("PostgreSQL username cannot be empty")
		}
		if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
			return fmt.Errorf("PostgreSQL port must be between 1 and 65535")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.Type)
	}
	return nil
}

// IsPostgreSQL returns true if the database type is PostgreSQL
func (c *DatabaseConfig) IsPostgreSQL() bool {
	return c.Type == DatabaseTypePostgreSQL
}

// IsSQLite returns true if the database type is SQLite
func (c *DatabaseConfig) IsSQLite() bool {
	return c.Type == DatabaseTypeSQLite
}

// EnsureDirectoryExists ensures the directory for SQLite database exists
func (c *DatabaseConfig) EnsureDirectoryExists() error {
	if c.Type == DatabaseTypeSQLite {
		dir := filepath.Dir(c.SQLite.Path)
		return os.MkdirAll(dir, 0755)
	}
	return nil
}
