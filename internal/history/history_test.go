package history

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestAppendAndList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := Open(ctx, Options{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	first, err := store.Append(ctx, Record{
		Program:      "frob",
		OutputPath:   "frob.go",
		Args:         []string{"x.csv", "y:"},
		Capabilities: []string{"csv"},
	})
	if err != nil {
		t.Fatalf("append first: %v", err)
	}
	if first.Seq == 0 {
		t.Fatal("expected sequence > 0")
	}
	if first.CreatedAt.IsZero() {
		t.Fatal("expected timestamp to be filled in")
	}

	second, err := store.Append(ctx, Record{Program: "wrangle", OutputPath: "wrangle.go"})
	if err != nil {
		t.Fatalf("append second: %v", err)
	}
	if second.Seq <= first.Seq {
		t.Fatalf("expected increasing sequence (first=%d second=%d)", first.Seq, second.Seq)
	}

	recs, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Program != "wrangle" || recs[1].Program != "frob" {
		t.Fatalf("expected newest first, got %s then %s", recs[0].Program, recs[1].Program)
	}
	if !reflect.DeepEqual(recs[1].Args, []string{"x.csv", "y:"}) {
		t.Fatalf("args round-trip failed: %v", recs[1].Args)
	}
	if !reflect.DeepEqual(recs[1].Capabilities, []string{"csv"}) {
		t.Fatalf("capabilities round-trip failed: %v", recs[1].Capabilities)
	}

	limited, err := store.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].Program != "wrangle" {
		t.Fatalf("limit ignored: %v", limited)
	}
}

func TestAppendEmptyRecord(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := Open(ctx, Options{DataDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	if _, err := store.Append(ctx, Record{}); !errors.Is(err, ErrEmptyRecord) {
		t.Fatalf("expected ErrEmptyRecord, got %v", err)
	}
}
