package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/syssam/pgentity/dialect"
)

// Catalog sources.
const (
	SourceQuery = "query" // information_schema query (dialect/sql)
	SourceAtlas = "atlas" // Atlas inspector (dialect/sql/schema)
	SourceFile  = "file"  // JSON row dump; URL is a file path
)

// Defaults applied by Config.Defaults.
const (
	DefaultPackage = "entity"
	DefaultWorkers = 1
)

// Config holds the configuration of a generation run.
type Config struct {
	// URL is the database connection string, or the dump path for SourceFile.
	URL string `yaml:"url"`
	// Driver is the database/sql driver name (see package dialect).
	Driver string `yaml:"driver,omitempty"`
	// Source selects the catalog collaborator.
	Source string `yaml:"source,omitempty"`
	// Dialect is the output convention name.
	Dialect string `yaml:"dialect"`
	// Target is the output file or directory.
	Target string `yaml:"out"`
	// Schema is the database schema to generate entities for.
	Schema string `yaml:"schema"`
	// Package is the package name used by dialects that need one.
	Package string `yaml:"package,omitempty"`
	// Workers bounds the number of parallel file writes.
	Workers int `yaml:"workers,omitempty"`
	// SlowQuery logs catalog queries slower than this threshold.
	SlowQuery time.Duration `yaml:"slow_query,omitempty"`
}

// Defaults fills unset optional fields.
func (c *Config) Defaults() {
	if c.Driver == "" {
		c.Driver = dialect.Postgres
	}
	if c.Source == "" {
		c.Source = SourceQuery
	}
	if c.Package == "" {
		c.Package = DefaultPackage
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
}

// Validate reports the first missing or invalid setting.
func (c *Config) Validate() error {
	required := []struct{ name, value string }{
		{"URL", c.URL},
		{"Dialect", c.Dialect},
		{"Target", c.Target},
		{"Schema", c.Schema},
	}
	for _, r := range required {
		if r.value == "" {
			return NewConfigError(r.name, nil, "required")
		}
	}
	switch c.Source {
	case "", SourceQuery, SourceAtlas, SourceFile:
	default:
		return NewConfigError("Source", c.Source, "unsupported source; use query, atlas, or file")
	}
	if c.Driver != "" && !dialect.Supported(c.Driver) {
		return NewConfigError("Driver", c.Driver, fmt.Sprintf("unsupported driver; use one of %v", dialect.Drivers))
	}
	if c.Workers < 0 {
		return NewConfigError("Workers", c.Workers, "must not be negative")
	}
	return nil
}

// LoadConfig reads a YAML configuration file. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveConfig writes cfg as YAML to path.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
