package spec

import _ "embed"

// DefaultJob is the job this binary runs. Its paths are fixed when the
// binary is built.
//
//go:embed job.yml
var DefaultJob []byte

type SourceSpec struct {
	Driver string `yaml:"driver"` // "csv"
	Path   string `yaml:"path"`   // "~" expands to the user's home
}

type SinkSpec struct {
	Driver string `yaml:"driver"` // "csv"
	Path   string `yaml:"path"`   // relative to the working directory
}

type DeriveSpec struct {
	Kind      string   `yaml:"kind"` // "concat"
	Column    string   `yaml:"column"`
	Columns   []string `yaml:"columns"`
	Separator string   `yaml:"separator"`
}

type TableSpec struct {
	Name   string       `yaml:"name"`
	Source SourceSpec   `yaml:"source"`
	Derive []DeriveSpec `yaml:"derive"`
	Sink   SinkSpec     `yaml:"sink"`
}

type File struct {
	SchemaVersion string `yaml:"schema_version"`

	// Header of the leading row-position column on every output.
	IndexLabel string `yaml:"index_label"`

	// Tables are read, derived and written in this order.
	Tables []TableSpec `yaml:"tables"`
}
