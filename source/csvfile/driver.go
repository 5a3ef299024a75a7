package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"brickset/internal/logging"
	"brickset/internal/table"
	"brickset/source"
)

const bom = "\ufeff"

type Config struct {
	Table string // name given to the loaded table
	Path  string // already expanded
}

type driver struct {
	cfg Config
}

func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("csv-source: expected Config, got %T", raw)
	}
	if c.Path == "" {
		return errors.New("csv-source: path required")
	}
	d.cfg = c
	return nil
}

func (d *driver) Read(ctx context.Context) (*table.Table, error) {
	path := d.cfg.Path
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, table.ErrNoHeader)
	}
	if err != nil {
		return nil, malformed(path, 0, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}
	t := table.New(d.cfg.Table, header)

	for row := 1; ; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed(path, row, err)
		}
		if len(rec) != len(header) {
			line, _ := r.FieldPos(0)
			return nil, &table.MalformedRowError{Path: path, Line: line, Row: row, Got: len(rec), Want: len(header)}
		}
		t.Rows = append(t.Rows, rec)
	}

	logging.ForTable(t.Name).Debug("csv-source: loaded", "path", path, "rows", t.Len(), "columns", len(t.Header))
	return t, nil
}

func (d *driver) Close() error { return nil }

func open(path string) (*os.File, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, &table.SourceNotFoundError{Path: path, Err: err}
	}
	if st.IsDir() {
		return nil, &table.SourceNotFoundError{Path: path, Err: errors.New("is a directory")}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &table.SourceNotFoundError{Path: path, Err: err}
	}
	return f, nil
}

func malformed(path string, row int, err error) error {
	var pe *csv.ParseError
	if !errors.As(err, &pe) {
		return fmt.Errorf("%s: read: %w", path, err)
	}
	return &table.MalformedRowError{Path: path, Line: pe.Line, Row: row, Err: err}
}

/* ────────── auto-register ────────── */
func init() {
	source.Register("csv", func() source.Adapter { return &driver{} })
}
