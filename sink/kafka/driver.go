package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/IBM/sarama"

	"brickset/internal/logging"
	"brickset/internal/table"
	"brickset/sink"
)

type Config struct {
	Brokers    []string `yaml:"brokers"`
	Topic      string   `yaml:"topic"`
	Acks       int16    `yaml:"required_acks"` // 1,-1
	Version    string   `yaml:"version"`
	IndexLabel string   `yaml:"index_label"`
}

// NewProducer dials the brokers. Tests swap it for a sarama mock.
var NewProducer = sarama.NewSyncProducer

type driver struct {
	cfg    Config
	p      sarama.SyncProducer
	staged []*sarama.ProducerMessage
}

func (d *driver) Configure(c any) error {
	cfg, ok := c.(Config)
	if !ok {
		return fmt.Errorf("kafka-sink: want Config, got %T", c)
	}
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return fmt.Errorf("kafka-sink: brokers and topic required")
	}
	d.cfg = cfg

	sc := sarama.NewConfig()
	sc.Producer.RequiredAcks = sarama.RequiredAcks(cfg.Acks)
	sc.Producer.Return.Successes = true
	if cfg.Version != "" {
		ver, err := sarama.ParseKafkaVersion(cfg.Version)
		if err != nil {
			return err
		}
		sc.Version = ver
	}
	var err error
	d.p, err = NewProducer(cfg.Brokers, sc)
	return err
}

// Push turns every row into one message keyed by its position. Nothing is
// sent until Commit.
func (d *driver) Push(ctx context.Context, t *table.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msgs := make([]*sarama.ProducerMessage, 0, t.Len())
	for i, row := range t.Rows {
		rec := make(map[string]string, len(row)+1)
		for j, col := range t.Header {
			rec[col] = row[j]
		}
		rec[d.cfg.IndexLabel] = strconv.Itoa(i)
		val, err := json.Marshal(rec)
		if err != nil {
			return d.fail("encode", err)
		}
		msgs = append(msgs, &sarama.ProducerMessage{
			Topic: d.cfg.Topic,
			Key:   sarama.StringEncoder(strconv.Itoa(i)),
			Value: sarama.ByteEncoder(val),
		})
	}
	d.staged = msgs
	return nil
}

func (d *driver) Commit() error {
	if len(d.staged) == 0 {
		return nil
	}
	if err := d.p.SendMessages(d.staged); err != nil {
		return d.fail("send", err)
	}
	logging.L().Info("kafka-sink: published", "topic", d.cfg.Topic, "messages", len(d.staged))
	d.staged = nil
	return nil
}

func (d *driver) Close() error {
	d.staged = nil
	if d.p == nil {
		return nil
	}
	p := d.p
	d.p = nil
	return p.Close()
}

func (d *driver) fail(op string, err error) error {
	return &table.OutputWriteError{Path: "kafka://" + d.cfg.Topic, Op: op, Err: err}
}

func init() { sink.Register("kafka", func() sink.Adapter { return &driver{} }) }
