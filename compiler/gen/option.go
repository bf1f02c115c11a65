package gen

import (
	"errors"
	"time"

	"github.com/syssam/pgentity/dialect"
)

// Option configures a generation run.
type Option func(*Config) error

// WithURL sets the database connection string.
func WithURL(url string) Option {
	return func(c *Config) error {
		if url == "" {
			return NewConfigError("URL", nil, "connection string cannot be empty")
		}
		c.URL = url
		return nil
	}
}

// WithDriver sets the database driver by name.
// Supported drivers: "postgres", "pgx".
func WithDriver(driver string) Option {
	return func(c *Config) error {
		if !dialect.Supported(driver) {
			return NewConfigError("Driver", driver, "unsupported driver; use postgres or pgx")
		}
		c.Driver = driver
		return nil
	}
}

// WithSource sets the catalog source.
// Supported sources: "query", "atlas", "file".
func WithSource(source string) Option {
	return func(c *Config) error {
		switch source {
		case SourceQuery, SourceAtlas, SourceFile:
			c.Source = source
			return nil
		default:
			return NewConfigError("Source", source, "unsupported source; use query, atlas, or file")
		}
	}
}

// WithDialect sets the output dialect name. Unknown names are reported when
// the dialect is resolved, before any catalog work.
func WithDialect(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return NewConfigError("Dialect", nil, "dialect cannot be empty")
		}
		c.Dialect = name
		return nil
	}
}

// WithTarget sets the output path.
// A file for single-file dialects, a directory for per-table dialects.
func WithTarget(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("Target", nil, "output path cannot be empty")
		}
		c.Target = path
		return nil
	}
}

// WithSchema sets the database schema to read.
func WithSchema(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return NewConfigError("Schema", nil, "schema cannot be empty")
		}
		c.Schema = name
		return nil
	}
}

// WithPackage sets the package name for dialects that emit one.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithWorkers sets the number of parallel file writes.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithSlowQuery sets the slow catalog query threshold.
func WithSlowQuery(d time.Duration) Option {
	return func(c *Config) error {
		c.SlowQuery = d
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options, fills defaults and
// validates the result.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	c.Defaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
