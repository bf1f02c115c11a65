package pgentity

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for every failure kind of a generation run.
var (
	// ErrConnectionFailed is returned when the catalog cannot be reached
	// or the catalog query fails.
	ErrConnectionFailed = errors.New("pgentity: catalog connection failed")

	// ErrInvalidDump is returned when a catalog dump file cannot be decoded.
	ErrInvalidDump = errors.New("pgentity: invalid catalog dump")

	// ErrEmptySchema is returned when a schema has no eligible tables.
	ErrEmptySchema = errors.New("pgentity: schema has no tables")

	// ErrUnmappedType is returned by strict dialects for a database type
	// outside their allow-list.
	ErrUnmappedType = errors.New("pgentity: unmapped column type")

	// ErrTemplateRender is returned when an entity template fails to render.
	ErrTemplateRender = errors.New("pgentity: template render failed")

	// ErrUnknownDialect is returned when the requested dialect name is not registered.
	ErrUnknownDialect = errors.New("pgentity: unknown dialect")
)

// ConnectionError wraps a failure of the catalog collaborator.
type ConnectionError struct {
	Err error // Underlying driver or query error
}

// Error returns the error string.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("pgentity: catalog connection failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches ConnectionError.
// This allows errors.Is(connErr, ErrConnectionFailed) to return true.
func (e *ConnectionError) Is(err error) bool {
	return err == ErrConnectionFailed
}

// NewConnectionError returns a new ConnectionError wrapping err.
func NewConnectionError(err error) *ConnectionError {
	return &ConnectionError{Err: err}
}

// IsConnectionError returns true if the error is a ConnectionError.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConnectionError
	return errors.As(err, &e) || errors.Is(err, ErrConnectionFailed)
}

// DumpError represents a catalog dump file that is not a JSON array of rows.
type DumpError struct {
	Path string // Dump file path
	Err  error  // Underlying decode error
}

// Error returns the error string.
func (e *DumpError) Error() string {
	return fmt.Sprintf("pgentity: invalid catalog dump %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *DumpError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches DumpError.
func (e *DumpError) Is(err error) bool {
	return err == ErrInvalidDump
}

// NewDumpError returns a new DumpError for the dump at path.
func NewDumpError(path string, err error) *DumpError {
	return &DumpError{Path: path, Err: err}
}

// IsDumpError returns true if the error is a DumpError.
func IsDumpError(err error) bool {
	if err == nil {
		return false
	}
	var e *DumpError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidDump)
}

// EmptySchemaError represents a schema without any eligible table.
type EmptySchemaError struct {
	Schema string
}

// Error returns the error string.
func (e *EmptySchemaError) Error() string {
	return fmt.Sprintf("pgentity: no tables in schema %q", e.Schema)
}

// Is reports whether the target error matches EmptySchemaError.
func (e *EmptySchemaError) Is(err error) bool {
	return err == ErrEmptySchema
}

// NewEmptySchemaError returns a new EmptySchemaError for the given schema.
func NewEmptySchemaError(schema string) *EmptySchemaError {
	return &EmptySchemaError{Schema: schema}
}

// IsEmptySchema returns true if the error is an EmptySchemaError.
func IsEmptySchema(err error) bool {
	if err == nil {
		return false
	}
	var e *EmptySchemaError
	return errors.As(err, &e) || errors.Is(err, ErrEmptySchema)
}

// UnmappedTypeError represents a column whose database type has no
// mapping in a strict dialect.
type UnmappedTypeError struct {
	Table  string // Table name
	Column string // Column name
	Type   string // Raw database type
}

// Error returns the error string.
func (e *UnmappedTypeError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("pgentity: unhandled type %q (column %s.%s)", e.Type, e.Table, e.Column)
	}
	return fmt.Sprintf("pgentity: unhandled type %q", e.Type)
}

// Is reports whether the target error matches UnmappedTypeError.
func (e *UnmappedTypeError) Is(err error) bool {
	return err == ErrUnmappedType
}

// NewUnmappedTypeError returns a new UnmappedTypeError.
func NewUnmappedTypeError(table, column, typ string) *UnmappedTypeError {
	return &UnmappedTypeError{Table: table, Column: column, Type: typ}
}

// IsUnmappedType returns true if the error is an UnmappedTypeError.
func IsUnmappedType(err error) bool {
	if err == nil {
		return false
	}
	var e *UnmappedTypeError
	return errors.As(err, &e) || errors.Is(err, ErrUnmappedType)
}

// RenderError wraps a template failure for one entity.
type RenderError struct {
	Template string // Template name
	Table    string // Table being rendered (optional)
	Err      error  // Underlying template error
}

// Error returns the error string.
func (e *RenderError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("pgentity: render %s for table %s: %v", e.Template, e.Table, e.Err)
	}
	return fmt.Sprintf("pgentity: render %s: %v", e.Template, e.Err)
}

// Unwrap returns the underlying error.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches RenderError.
func (e *RenderError) Is(err error) bool {
	return err == ErrTemplateRender
}

// NewRenderError returns a new RenderError.
func NewRenderError(template, table string, err error) *RenderError {
	return &RenderError{Template: template, Table: table, Err: err}
}

// IsRenderError returns true if the error is a RenderError.
func IsRenderError(err error) bool {
	if err == nil {
		return false
	}
	var e *RenderError
	return errors.As(err, &e) || errors.Is(err, ErrTemplateRender)
}

// UnknownDialectError represents a dialect name that no generator handles.
type UnknownDialectError struct {
	Name      string
	Supported []string
}

// Error returns the error string.
func (e *UnknownDialectError) Error() string {
	if len(e.Supported) > 0 {
		return fmt.Sprintf("pgentity: unknown dialect %q (supported: %v)", e.Name, e.Supported)
	}
	return fmt.Sprintf("pgentity: unknown dialect %q", e.Name)
}

// Is reports whether the target error matches UnknownDialectError.
func (e *UnknownDialectError) Is(err error) bool {
	return err == ErrUnknownDialect
}

// NewUnknownDialectError returns a new UnknownDialectError.
func NewUnknownDialectError(name string, supported ...string) *UnknownDialectError {
	return &UnknownDialectError{Name: name, Supported: supported}
}

// IsUnknownDialect returns true if the error is an UnknownDialectError.
func IsUnknownDialect(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownDialectError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownDialect)
}
