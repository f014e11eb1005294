package sheets

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"rhodlsync/internal/model"
)

type fakeWorksheet struct {
	rows       [][]interface{} // data region below the header
	failWrite  bool
	appendOps  int
	rewriteOps int
}

func (f *fakeWorksheet) DateColumn() ([]string, error) {
	dates := make([]string, 0, len(f.rows))
	for _, row := range f.rows {
		dates = append(dates, fmt.Sprint(row[0]))
	}
	return dates, nil
}

func (f *fakeWorksheet) Rewrite(rows [][]interface{}) error {
	if f.failWrite {
		return &WriteError{Op: "write rows", Err: errors.New("quota exceeded")}
	}
	f.rewriteOps++
	f.rows = append([][]interface{}(nil), rows...)
	return nil
}

func (f *fakeWorksheet) Append(rows [][]interface{}) error {
	if f.failWrite {
		return &WriteError{Op: "append rows", Err: errors.New("quota exceeded")}
	}
	f.appendOps++
	f.rows = append(f.rows, rows...)
	return nil
}

type fakeCursor struct {
	mark string
}

func (c *fakeCursor) LastSynced() (string, error) { return c.mark, nil }

func (c *fakeCursor) SetLastSynced(date string) error {
	c.mark = date
	return nil
}

var testSeries = model.Series{
	{Date: "2024-03-10", Value: 1.1},
	{Date: "2024-03-11", Value: 1.2},
	{Date: "2024-03-12", Value: 1.3},
}

func TestRewrite_Idempotent(t *testing.T) {
	ws := &fakeWorksheet{}
	s := NewSyncer(ws, &fakeCursor{})

	n1, err := s.Sync(model.ModeRewrite, testSeries)
	if err != nil {
		t.Fatal(err)
	}
	first := append([][]interface{}(nil), ws.rows...)

	n2, err := s.Sync(model.ModeRewrite, testSeries)
	if err != nil {
		t.Fatal(err)
	}
	if n1 != len(testSeries) || n2 != len(testSeries) {
		t.Errorf("row counts = %d, %d; want %d twice", n1, n2, len(testSeries))
	}
	if !reflect.DeepEqual(ws.rows, first) {
		t.Fatalf("second rewrite changed the sheet: %v != %v", ws.rows, first)
	}
}

func TestRewrite_AdvancesCursor(t *testing.T) {
	cur := &fakeCursor{}
	s := NewSyncer(&fakeWorksheet{}, cur)
	if _, err := s.Sync(model.ModeRewrite, testSeries); err != nil {
		t.Fatal(err)
	}
	if cur.mark != "2024-03-12" {
		t.Fatalf("cursor = %q, want 2024-03-12", cur.mark)
	}
}

func TestAppend_EmptySheetEqualsRewrite(t *testing.T) {
	rewritten := &fakeWorksheet{}
	if _, err := NewSyncer(rewritten, &fakeCursor{}).Sync(model.ModeRewrite, testSeries); err != nil {
		t.Fatal(err)
	}

	appended := &fakeWorksheet{}
	n, err := NewSyncer(appended, &fakeCursor{}).Sync(model.ModeAppend, testSeries)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(testSeries) {
		t.Errorf("append on empty sheet wrote %d rows, want %d", n, len(testSeries))
	}
	if !reflect.DeepEqual(appended.rows, rewritten.rows) {
		t.Fatalf("append on empty sheet differs from rewrite: %v != %v", appended.rows, rewritten.rows)
	}
}

func TestAppend_NoNewData(t *testing.T) {
	ws := &fakeWorksheet{}
	cur := &fakeCursor{mark: "2024-03-12"}
	n, err := NewSyncer(ws, cur).Sync(model.ModeAppend, testSeries)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 || ws.appendOps != 0 {
		t.Fatalf("expected no writes, got %d rows in %d append calls", n, ws.appendOps)
	}
}

func TestAppend_SheetFallbackWritesOnlyNewRows(t *testing.T) {
	ws := &fakeWorksheet{rows: [][]interface{}{
		{"2024-03-09", 1.0},
		{"2024-03-10", 1.1},
	}}
	n, err := NewSyncer(ws, &fakeCursor{}).Sync(model.ModeAppend, testSeries)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("wrote %d rows, want 2", n)
	}
	tail := ws.rows[len(ws.rows)-2:]
	want := [][]interface{}{{"2024-03-11", 1.2}, {"2024-03-12", 1.3}}
	if !reflect.DeepEqual(tail, want) {
		t.Fatalf("appended %v, want %v", tail, want)
	}
}

func TestAppend_CursorPreferredOverSheet(t *testing.T) {
	// Sheet trails the cursor (rows were removed by hand); the durable
	// cursor wins and nothing is re-appended below it.
	ws := &fakeWorksheet{rows: [][]interface{}{{"2024-03-09", 1.0}}}
	cur := &fakeCursor{mark: "2024-03-11"}
	n, err := NewSyncer(ws, cur).Sync(model.ModeAppend, testSeries)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("wrote %d rows, want 1", n)
	}
	last := ws.rows[len(ws.rows)-1]
	if fmt.Sprint(last[0]) != "2024-03-12" {
		t.Fatalf("appended %v, want the 2024-03-12 row only", last)
	}
}

func TestAppend_MalformedLastRow(t *testing.T) {
	ws := &fakeWorksheet{rows: [][]interface{}{{"not a date", 1.0}}}
	_, err := NewSyncer(ws, &fakeCursor{}).Sync(model.ModeAppend, testSeries)
	var ae *AccessError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *AccessError for a non-date last row, got %v", err)
	}
}

func TestSync_WriteFailure(t *testing.T) {
	ws := &fakeWorksheet{failWrite: true}
	cur := &fakeCursor{}
	_, err := NewSyncer(ws, cur).Sync(model.ModeRewrite, testSeries)
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("expected *WriteError, got %v", err)
	}
	if cur.mark != "" {
		t.Errorf("cursor advanced despite a failed write: %q", cur.mark)
	}
}

func TestSync_UnknownMode(t *testing.T) {
	if _, err := NewSyncer(&fakeWorksheet{}, &fakeCursor{}).Sync("BOGUS", testSeries); err == nil {
		t.Fatal("expected an error for an unknown mode")
	}
}
