package pipeline

import (
	"fmt"

	"brickset/internal/config"
	"brickset/internal/spec"
	"brickset/internal/telemetry"
	"brickset/internal/transform"
	"brickset/sink"
	csvsink "brickset/sink/csvfile"
	kafkasink "brickset/sink/kafka"
	"brickset/source"
	csvsource "brickset/source/csvfile"
)

// Compile turns a parsed job into a Runner. The kafka mirror is attached to
// every table when settings name at least one broker.
func Compile(job spec.File, s config.Settings, m *telemetry.Metrics) (*Runner, error) {
	r := NewRunner(m)
	if err := compile(job, s, r); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

func compile(job spec.File, s config.Settings, r *Runner) error {
	for _, t := range job.Tables {
		src, err := newSource(t)
		if err != nil {
			return fmt.Errorf("table %s: %w", t.Name, err)
		}
		r.AddTable(t.Name, src)

		for _, d := range t.Derive {
			switch d.Kind {
			case "concat":
				r.AddTransformer(t.Name, transform.Concat{Column: d.Column, Columns: d.Columns, Separator: d.Separator})
			default:
				return fmt.Errorf("table %s: unsupported derive kind %q", t.Name, d.Kind)
			}
		}

		out, err := newSink(t.Sink.Driver, t.Sink.Path, job.IndexLabel)
		if err != nil {
			return fmt.Errorf("table %s: %w", t.Name, err)
		}
		r.AddSink(t.Name, t.Sink.Driver, out)

		if len(s.Kafka.Brokers) > 0 {
			mirror, err := sink.NewAdapter("kafka")
			if err != nil {
				return err
			}
			err = mirror.Configure(kafkasink.Config{
				Brokers:    s.Kafka.Brokers,
				Topic:      s.Kafka.TopicPrefix + t.Name,
				Acks:       s.Kafka.RequiredAcks,
				Version:    s.Kafka.Version,
				IndexLabel: job.IndexLabel,
			})
			if err != nil {
				return fmt.Errorf("table %s: kafka mirror: %w", t.Name, err)
			}
			r.AddSink(t.Name, "kafka", mirror)
		}
	}
	return nil
}

func newSource(t spec.TableSpec) (source.Adapter, error) {
	driver := t.Source.Driver
	if driver == "" {
		driver = "csv"
	}
	src, err := source.NewAdapter(driver)
	if err != nil {
		return nil, err
	}
	path, err := config.ExpandHome(t.Source.Path)
	if err != nil {
		return nil, err
	}
	switch driver {
	case "csv":
		err = src.Configure(csvsource.Config{Table: t.Name, Path: path})
	default:
		err = fmt.Errorf("no config block for source %q", driver)
	}
	if err != nil {
		return nil, err
	}
	return src, nil
}

func newSink(driver, path, indexLabel string) (sink.Adapter, error) {
	if driver == "" {
		driver = "csv"
	}
	out, err := sink.NewAdapter(driver)
	if err != nil {
		return nil, err
	}
	switch driver {
	case "csv":
		err = out.Configure(csvsink.Config{Path: path, IndexLabel: indexLabel})
	default:
		err = fmt.Errorf("no config block for sink %q", driver)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
