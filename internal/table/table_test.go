package table

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func makeSets() *Table {
	t := New("sets", []string{"Number", "Variant", "Theme"})
	t.Rows = [][]string{
		{"75192", "1", "Star Wars"},
		{"10", "2", "Star Wars"},
	}
	return t
}

func TestColumnIndex_Missing(t *testing.T) {
	tbl := makeSets()
	if idx, err := tbl.ColumnIndex("Variant"); err != nil || idx != 1 {
		t.Fatalf("want 1, got %d (%v)", idx, err)
	}
	_, err := tbl.ColumnIndex("variant")
	var mc *MissingColumnError
	if !errors.As(err, &mc) {
		t.Fatalf("want MissingColumnError, got %v", err)
	}
	if mc.Table != "sets" || mc.Column != "variant" {
		t.Fatalf("unexpected error fields: %+v", mc)
	}
}

func TestSetColumn_AppendsLast(t *testing.T) {
	tbl := makeSets()
	if err := tbl.SetColumn("SetNumber", []string{"a", "b"}); err != nil {
		t.Fatalf("SetColumn: %v", err)
	}
	want := []string{"Number", "Variant", "Theme", "SetNumber"}
	if !reflect.DeepEqual(tbl.Header, want) {
		t.Fatalf("header: want %v, got %v", want, tbl.Header)
	}
	if tbl.Rows[1][3] != "b" {
		t.Fatalf("unexpected value %q", tbl.Rows[1][3])
	}
}

func TestSetColumn_ReplacesExisting(t *testing.T) {
	tbl := makeSets()
	if err := tbl.SetColumn("Theme", []string{"x", "y"}); err != nil {
		t.Fatalf("SetColumn: %v", err)
	}
	if len(tbl.Header) != 3 {
		t.Fatalf("want 3 columns, got %d", len(tbl.Header))
	}
	if tbl.Rows[0][2] != "x" || tbl.Rows[1][2] != "y" {
		t.Fatalf("values not replaced: %v", tbl.Rows)
	}
}

func TestSetColumn_LengthMismatch(t *testing.T) {
	tbl := makeSets()
	if err := tbl.SetColumn("SetNumber", []string{"only-one"}); err == nil {
		t.Fatal("expected error for short column")
	}
}

func TestIndexedView(t *testing.T) {
	tbl := makeSets()
	h := tbl.IndexedHeader("id")
	if !reflect.DeepEqual(h, []string{"id", "Number", "Variant", "Theme"}) {
		t.Fatalf("unexpected header %v", h)
	}
	for i := 0; i < tbl.Len(); i++ {
		row := tbl.IndexedRow(i)
		if row[0] != fmt.Sprint(i) {
			t.Fatalf("row %d: index %q", i, row[0])
		}
		if !reflect.DeepEqual(row[1:], tbl.Rows[i]) {
			t.Fatalf("row %d: columns changed: %v", i, row)
		}
	}
}

func TestKind(t *testing.T) {
	cases := map[string]error{
		"source_not_found": &SourceNotFoundError{Path: "x"},
		"missing_column":   fmt.Errorf("wrap: %w", &MissingColumnError{Table: "sets", Column: "Variant"}),
		"malformed_row":    &MalformedRowError{Path: "x", Row: 1},
		"output_write":     &OutputWriteError{Path: "x", Op: "rename", Err: errors.New("boom")},
		"no_header":        fmt.Errorf("x: %w", ErrNoHeader),
		"other":            errors.New("boom"),
	}
	for want, err := range cases {
		if got := Kind(err); got != want {
			t.Fatalf("Kind(%v): want %s, got %s", err, want, got)
		}
	}
}
