package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brickset/internal/logging"
	"brickset/internal/table"
	"brickset/internal/telemetry"
	"brickset/internal/transform"
	"brickset/sink"
	"brickset/source"
)

type namedSink struct {
	driver string
	sink.Adapter
}

// stage is one table: where it comes from, how it is derived, where it goes.
type stage struct {
	name       string
	source     source.Adapter
	transforms []transform.Transformer
	sinks      []namedSink
}

// Summary describes one table after a successful run.
type Summary struct {
	Table   string
	Rows    int
	Columns int
}

type Runner struct {
	stages  []*stage
	metrics *telemetry.Metrics
}

func NewRunner(m *telemetry.Metrics) *Runner {
	if m == nil {
		m = telemetry.New()
	}
	return &Runner{metrics: m}
}

func (r *Runner) AddTable(name string, s source.Adapter) { r.stage(name).source = s }

func (r *Runner) AddTransformer(table string, t transform.Transformer) {
	st := r.stage(table)
	st.transforms = append(st.transforms, t)
}

func (r *Runner) AddSink(table, driver string, s sink.Adapter) {
	st := r.stage(table)
	st.sinks = append(st.sinks, namedSink{driver: driver, Adapter: s})
}

func (r *Runner) stage(name string) *stage {
	for _, st := range r.stages {
		if st.name == name {
			return st
		}
	}
	st := &stage{name: name}
	r.stages = append(r.stages, st)
	return st
}

// Run makes the single pass: read every table, derive, stage every output,
// then commit. Nothing is committed unless every earlier step succeeded.
func (r *Runner) Run(ctx context.Context) ([]Summary, error) {
	out, err := r.run(ctx)
	if err != nil {
		r.metrics.Failures.WithLabelValues(table.Kind(err)).Inc()
		return nil, err
	}
	r.metrics.LastSuccess.Set(float64(time.Now().Unix()))
	return out, nil
}

func (r *Runner) run(ctx context.Context) ([]Summary, error) {
	if len(r.stages) == 0 {
		return nil, errors.New("runner: no tables configured")
	}

	tables := make([]*table.Table, len(r.stages))
	for i, st := range r.stages {
		if st.source == nil {
			return nil, fmt.Errorf("table %s: no source configured", st.name)
		}
		t, err := st.source.Read(ctx)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", st.name, err)
		}
		t.Name = st.name
		tables[i] = t
		r.metrics.RowsRead.WithLabelValues(st.name).Add(float64(t.Len()))
		logging.ForTable(st.name).Debug("table loaded", "rows", t.Len())
	}

	for i, st := range r.stages {
		for _, tr := range st.transforms {
			if err := tr.Apply(tables[i]); err != nil {
				return nil, fmt.Errorf("table %s: %s: %w", st.name, tr.Name(), err)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, st := range r.stages {
		if len(st.sinks) == 0 {
			return nil, fmt.Errorf("table %s: no sink configured", st.name)
		}
		for _, s := range st.sinks {
			if err := s.Push(ctx, tables[i]); err != nil {
				return nil, fmt.Errorf("table %s: %w", st.name, err)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Remote sinks publish first: a failed send then leaves no local file
	// renamed into place.
	for _, local := range []bool{false, true} {
		for i, st := range r.stages {
			for _, s := range st.sinks {
				if isLocal(s) != local {
					continue
				}
				if err := s.Commit(); err != nil {
					return nil, fmt.Errorf("table %s: %w", st.name, err)
				}
				r.metrics.RowsWritten.WithLabelValues(st.name, s.driver).Add(float64(tables[i].Len()))
			}
		}
	}

	summaries := make([]Summary, len(r.stages))
	for i, st := range r.stages {
		summaries[i] = Summary{Table: st.name, Rows: tables[i].Len(), Columns: len(tables[i].Header) + 1}
		logging.ForTable(st.name).Debug("table committed", "sinks", len(st.sinks))
	}
	return summaries, nil
}

func isLocal(s namedSink) bool {
	_, ok := s.Adapter.(sink.Local)
	return ok
}

// Close releases every adapter and drops output that was staged but not
// committed.
func (r *Runner) Close() error {
	var errs []error
	for _, st := range r.stages {
		if st.source != nil {
			errs = append(errs, st.source.Close())
		}
		for _, s := range st.sinks {
			errs = append(errs, s.Close())
		}
	}
	return errors.Join(errs...)
}
