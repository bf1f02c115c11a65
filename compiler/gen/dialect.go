package gen

import (
	"bytes"

	"github.com/syssam/pgentity/schema"
)

// Layout describes how a dialect lays out its artifacts on disk.
type Layout uint8

const (
	// SingleFile dialects produce exactly one artifact, written to the output path.
	SingleFile Layout = iota
	// PerTable dialects produce one artifact per table, written into the output directory.
	PerTable
)

// String implements the fmt.Stringer interface.
func (l Layout) String() string {
	switch l {
	case SingleFile:
		return "single-file"
	case PerTable:
		return "per-table"
	default:
		return "unknown"
	}
}

// Artifact is one generated output file.
type Artifact struct {
	// Name is the file name relative to the output directory.
	// It is informational for SingleFile dialects.
	Name    string
	Content []byte
}

// Dialect generates entity source code for one ORM convention.
//
// Architecture:
//
//	┌──────────────────────────────────────────────┐
//	│           compiler.Generate                  │
//	│  (load catalog, pick dialect, write files)   │
//	└──────────────────────┬───────────────────────┘
//	                       │ uses
//	                       ▼
//	┌──────────────────────────────────────────────┐
//	│                 Dialect                      │
//	│  (TypeSystem + Entity context + Renderer)    │
//	└──────────────────────┬───────────────────────┘
//	                       │ implemented by
//	      ┌──────────────┬─┴────────────┬──────────────┐
//	      ▼              ▼              ▼              ▼
//	 py-sqlalchemy   ts-typeorm     go-struct       graphql
//
// New output conventions are added by implementing Dialect; the loader and
// the writer never branch on the dialect.
type Dialect interface {
	// Name returns the dialect name (e.g., "py-sqlalchemy").
	Name() string
	// Layout reports how the artifacts are laid out.
	Layout() Layout
	// Generate renders the model into artifacts.
	Generate(m *schema.Model) ([]*Artifact, error)
}

// Combine concatenates a header and entity blocks into one file body.
func Combine(header []byte, blocks ...[]byte) []byte {
	var buf bytes.Buffer
	buf.Write(header)
	for _, b := range blocks {
		buf.Write(b)
	}
	return buf.Bytes()
}
