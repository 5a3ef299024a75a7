package table

import (
	"errors"
	"fmt"
)

// ErrNoHeader is returned for a source without a single record.
var ErrNoHeader = errors.New("no header record")

// SourceNotFoundError means an input path does not resolve to a readable file.
type SourceNotFoundError struct {
	Path string
	Err  error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("source %s not found: %v", e.Path, e.Err)
}

func (e *SourceNotFoundError) Unwrap() error { return e.Err }

// MissingColumnError means a required column is absent from a table's header.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("table %s: missing column %q", e.Table, e.Column)
}

// MalformedRowError means a data row does not fit the declared header, or
// could not be tokenized at all (Err is then the parse error).
type MalformedRowError struct {
	Path string
	Line int // 1-based line in the file
	Row  int // 1-based data row, header excluded
	Got  int
	Want int
	Err  error
}

func (e *MalformedRowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s:%d: malformed row %d: %v", e.Path, e.Line, e.Row, e.Err)
	}
	return fmt.Sprintf("%s:%d: malformed row %d: %d fields, header has %d", e.Path, e.Line, e.Row, e.Got, e.Want)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }

// OutputWriteError means a destination could not be created or written.
type OutputWriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("output %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }

// Kind names the error class of err for metrics and logs, or "other".
func Kind(err error) string {
	var (
		nf *SourceNotFoundError
		mc *MissingColumnError
		mr *MalformedRowError
		ow *OutputWriteError
	)
	switch {
	case errors.As(err, &nf):
		return "source_not_found"
	case errors.As(err, &mc):
		return "missing_column"
	case errors.As(err, &mr):
		return "malformed_row"
	case errors.As(err, &ow):
		return "output_write"
	case errors.Is(err, ErrNoHeader):
		return "no_header"
	default:
		return "other"
	}
}
