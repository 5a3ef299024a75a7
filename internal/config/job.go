package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"brickset/internal/spec"
)

const (
	SupportedSchema   = "v1"
	DefaultIndexLabel = "id"
)

// ParseJobSpec decodes a job document, fills defaults and validates that
// every table can be compiled.
func ParseJobSpec(raw []byte) (spec.File, error) {
	var job spec.File
	if err := yaml.Unmarshal(raw, &job); err != nil {
		return job, fmt.Errorf("job spec: %w", err)
	}
	if job.SchemaVersion == "" {
		job.SchemaVersion = SupportedSchema
	}
	if job.SchemaVersion != SupportedSchema {
		return job, fmt.Errorf("job schema_version %q not supported (want %q)", job.SchemaVersion, SupportedSchema)
	}
	if job.IndexLabel == "" {
		job.IndexLabel = DefaultIndexLabel
	}
	if err := validateTables(job.Tables); err != nil {
		return job, fmt.Errorf("job spec: %w", err)
	}
	return job, nil
}

func validateTables(tables []spec.TableSpec) error {
	if len(tables) == 0 {
		return errors.New("no tables")
	}
	seen := make(map[string]bool, len(tables))
	for i, t := range tables {
		if t.Name == "" {
			return fmt.Errorf("table %d: name required", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("table %s: duplicate name", t.Name)
		}
		seen[t.Name] = true
		if t.Source.Path == "" {
			return fmt.Errorf("table %s: source.path required", t.Name)
		}
		if t.Sink.Path == "" {
			return fmt.Errorf("table %s: sink.path required", t.Name)
		}
		for _, d := range t.Derive {
			if d.Kind != "concat" {
				return fmt.Errorf("table %s: unsupported derive kind %q", t.Name, d.Kind)
			}
			if d.Column == "" || len(d.Columns) == 0 {
				return fmt.Errorf("table %s: derive needs column and columns", t.Name)
			}
		}
	}
	return nil
}
