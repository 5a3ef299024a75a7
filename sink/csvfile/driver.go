package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"brickset/internal/logging"
	"brickset/internal/table"
	"brickset/sink"
)

type Config struct {
	Path       string // destination file
	IndexLabel string // header of the leading row-position column
}

type driver struct {
	cfg    Config
	staged string // temp file awaiting Commit
	rows   int
}

func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("csv-sink: expected Config, got %T", raw)
	}
	if c.Path == "" || c.IndexLabel == "" {
		return errors.New("csv-sink: path and index label required")
	}
	d.cfg = c
	return nil
}

// Push writes t into a temp file beside the destination, so rename on
// Commit stays on one filesystem.
func (d *driver) Push(ctx context.Context, t *table.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.staged != "" {
		return fmt.Errorf("csv-sink: %s already staged", d.cfg.Path)
	}
	dir, base := filepath.Split(d.cfg.Path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return d.fail("create", err)
	}
	d.staged = f.Name()

	w := csv.NewWriter(f)
	if err := w.Write(t.IndexedHeader(d.cfg.IndexLabel)); err != nil {
		f.Close()
		return d.fail("write", err)
	}
	for i := 0; i < t.Len(); i++ {
		if err := w.Write(t.IndexedRow(i)); err != nil {
			f.Close()
			return d.fail("write", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return d.fail("write", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return d.fail("sync", err)
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return d.fail("chmod", err)
	}
	if err := f.Close(); err != nil {
		return d.fail("close", err)
	}
	d.rows = t.Len()
	return nil
}

// Local marks the driver as committed after remote sinks.
func (d *driver) Local() {}

func (d *driver) Commit() error {
	if d.staged == "" {
		return nil
	}
	if err := os.Rename(d.staged, d.cfg.Path); err != nil {
		return d.fail("rename", err)
	}
	d.staged = ""
	logging.L().Info("csv-sink: committed", "path", d.cfg.Path, "rows", d.rows)
	return nil
}

func (d *driver) Close() error {
	if d.staged == "" {
		return nil
	}
	err := os.Remove(d.staged)
	d.staged = ""
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// fail drops the staged file and reports err against the destination.
func (d *driver) fail(op string, err error) error {
	_ = d.Close()
	return &table.OutputWriteError{Path: d.cfg.Path, Op: op, Err: err}
}

/* ────────── auto-register ────────── */
func init() {
	sink.Register("csv", func() sink.Adapter { return &driver{} })
}
