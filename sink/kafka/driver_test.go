package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"

	"brickset/internal/table"
)

func makeSets() *table.Table {
	t := table.New("sets", []string{"Number", "Variant", "SetNumber"})
	t.Rows = [][]string{
		{"75192", "1", "75192-1"},
		{"10", "2", "10-2"},
	}
	return t
}

func newDriver(t *testing.T, mp *mocks.SyncProducer) *driver {
	t.Helper()
	orig := NewProducer
	NewProducer = func([]string, *sarama.Config) (sarama.SyncProducer, error) { return mp, nil }
	t.Cleanup(func() { NewProducer = orig })
	d := &driver{}
	err := d.Configure(Config{Brokers: []string{"localhost:9092"}, Topic: "brickset.sets", Acks: 1, IndexLabel: "id"})
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	return d
}

func expectRow(index int, setNumber string) mocks.ValueChecker {
	return func(val []byte) error {
		var rec map[string]string
		if err := json.Unmarshal(val, &rec); err != nil {
			return err
		}
		if rec["id"] != fmt.Sprint(index) || rec["SetNumber"] != setNumber {
			return fmt.Errorf("unexpected record %v", rec)
		}
		return nil
	}
}

func TestCommit_PublishesOneMessagePerRow(t *testing.T) {
	mp := mocks.NewSyncProducer(t, nil)
	mp.ExpectSendMessageWithCheckerFunctionAndSucceed(expectRow(0, "75192-1"))
	mp.ExpectSendMessageWithCheckerFunctionAndSucceed(expectRow(1, "10-2"))

	d := newDriver(t, mp)
	if err := d.Push(context.Background(), makeSets()); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if len(d.staged) != 2 {
		t.Fatalf("want 2 staged messages, got %d", len(d.staged))
	}
	if k, _ := d.staged[1].Key.Encode(); string(k) != "1" {
		t.Fatalf("want key 1, got %q", k)
	}
	if err := d.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestClose_BeforeCommitSendsNothing(t *testing.T) {
	mp := mocks.NewSyncProducer(t, nil)
	d := newDriver(t, mp)
	if err := d.Push(context.Background(), makeSets()); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestCommit_SendFailure(t *testing.T) {
	mp := mocks.NewSyncProducer(t, nil)
	mp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	mp.ExpectSendMessageAndSucceed()

	d := newDriver(t, mp)
	defer d.Close()
	if err := d.Push(context.Background(), makeSets()); err != nil {
		t.Fatalf("Push: %v", err)
	}
	err := d.Commit()
	var ow *table.OutputWriteError
	if !errors.As(err, &ow) || ow.Path != "kafka://brickset.sets" {
		t.Fatalf("want OutputWriteError, got %v", err)
	}
}

func TestConfigure_Validation(t *testing.T) {
	d := &driver{}
	if err := d.Configure(Config{Topic: "t"}); err == nil {
		t.Fatal("expected error without brokers")
	}
	if err := d.Configure("kafka"); err == nil {
		t.Fatal("expected error for non-Config value")
	}
}
